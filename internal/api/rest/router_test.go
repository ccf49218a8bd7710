package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leganyst/provider-catalog/internal/catalog"
	"github.com/Leganyst/provider-catalog/internal/config"
	"github.com/Leganyst/provider-catalog/internal/db"
	"github.com/Leganyst/provider-catalog/internal/dto"
	"github.com/Leganyst/provider-catalog/internal/metrics"
	"github.com/Leganyst/provider-catalog/internal/model"
	"github.com/Leganyst/provider-catalog/internal/repository"
	"github.com/Leganyst/provider-catalog/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router http.Handler
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	gormDB, err := db.NewGormDB(&config.DBConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"}, nil)
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(gormDB))
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store, err := catalog.NewStaticAccountStore("admin", "s3cret", catalog.RoleAdmin)
	require.NoError(t, err)
	auth := service.NewAuthService(store, config.JWTConfig{
		Key:       "rest-test-key",
		Issuer:    "provider-catalog",
		Audience:  "provider-catalog-client",
		ExpiresIn: time.Hour,
	})

	router := NewRouter(Deps{
		Countries:         service.NewCountryService(repository.NewGormCountryRepository(gormDB), nil),
		Services:          service.NewServiceService(repository.NewGormServiceRepository(gormDB), nil),
		Providers:         service.NewProviderService(repository.NewGormProviderRepository(gormDB), nil),
		Reports:           service.NewReportService(repository.NewGormReportRepository(gormDB)),
		Events:            service.NewEventService(repository.NewGormEventRepository(gormDB)),
		Auth:              auth,
		ExternalCountries: service.StaticCountrySource{},
		Metrics:           metrics.New(),
		Ping:              func(ctx context.Context) error { return db.Ping(ctx, gormDB) },
	})

	srv := &testServer{router: router}
	rec := srv.do(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Username: "admin", Password: "s3cret"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	srv.token = login.Token
	return srv
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestRouter_AuthRequired(t *testing.T) {
	srv := newTestServer(t)
	srv.token = ""

	rec := srv.do(t, http.MethodGet, "/api/countries", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Username: "admin", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, dto.CodeUnauthorized, decode[dto.ErrorResponse](t, rec).Code)

	// отчёт и health доступны без токена
	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/api/reports/summary", nil).Code)
	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/health", nil).Code)
}

func TestRouter_CountryLifecycle(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/countries", dto.CountryRequest{Name: "Colombia", IsoCode: "CO"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	co := decode[dto.CountryResponse](t, rec)

	rec = srv.do(t, http.MethodGet, "/api/countries?page=0&pageSize=-1&search=colo", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[catalog.Page[dto.CountryResponse]](t, rec)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.PageSize)
	assert.EqualValues(t, 1, page.TotalCount)

	rec = srv.do(t, http.MethodPut, "/api/countries/999", dto.CountryRequest{Name: "X", IsoCode: "X"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/providers", dto.ProviderRequest{Nit: "1", Name: "Acme", CountryID: co.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	p := decode[dto.ProviderResponse](t, rec)

	rec = srv.do(t, http.MethodDelete, "/api/countries/"+itoa(co.ID), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, dto.CodeConflict, decode[dto.ErrorResponse](t, rec).Code)

	assert.Equal(t, http.StatusNoContent, srv.do(t, http.MethodDelete, "/api/providers/"+itoa(p.ID), nil).Code)
	assert.Equal(t, http.StatusNoContent, srv.do(t, http.MethodDelete, "/api/countries/"+itoa(co.ID), nil).Code)
	assert.Equal(t, http.StatusNotFound, srv.do(t, http.MethodDelete, "/api/countries/"+itoa(co.ID), nil).Code)
	assert.Equal(t, http.StatusNotFound, srv.do(t, http.MethodGet, "/api/countries/"+itoa(co.ID), nil).Code)
}

func TestRouter_ValidationErrors(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/countries", map[string]string{"name": "  ", "isoCode": "CO"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[dto.ErrorResponse](t, rec)
	assert.Equal(t, dto.CodeValidation, body.Code)
	assert.Contains(t, body.Message, "name")

	rec = srv.do(t, http.MethodPost, "/api/services", map[string]any{"name": "Audit", "hourlyRate": -5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/providers?page=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/providers/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/providers", dto.ProviderRequest{Nit: "1", Name: "Ghost", CountryID: 77})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_ProviderAndReport(t *testing.T) {
	srv := newTestServer(t)

	co := decode[dto.CountryResponse](t, srv.do(t, http.MethodPost, "/api/countries", dto.CountryRequest{Name: "Peru", IsoCode: "PE"}))
	svc := decode[dto.ServiceResponse](t, srv.do(t, http.MethodPost, "/api/services", map[string]any{"name": "Design", "hourlyRate": "45.50"}))

	for _, nit := range []string{"1", "2"} {
		rec := srv.do(t, http.MethodPost, "/api/providers", dto.ProviderRequest{
			Nit:          nit,
			Name:         "Provider " + nit,
			CountryID:    co.ID,
			ServiceIDs:   []int64{svc.ID, 4040},
			CustomFields: map[string]string{"tier": "gold"},
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		p := decode[dto.ProviderResponse](t, rec)
		assert.Equal(t, []int64{svc.ID}, p.ServiceIDs)
		assert.Equal(t, "Peru", p.CountryName)
		assert.Equal(t, "gold", p.CustomFields["tier"])
	}

	report := decode[dto.SummaryReport](t, srv.do(t, http.MethodGet, "/api/reports/summary", nil))
	require.Len(t, report.ProvidersByCountry, 1)
	assert.EqualValues(t, 2, report.ProvidersByCountry[0].ProviderCount)
	require.Len(t, report.ServicesByCountry, 1)
	assert.EqualValues(t, 1, report.ServicesByCountry[0].ServiceCount)

	external := decode[[]dto.ExternalCountry](t, srv.do(t, http.MethodGet, "/api/countries/external", nil))
	assert.Len(t, external, 5)

	events := decode[[]dto.EventResponse](t, srv.do(t, http.MethodGet, "/api/events?limit=2", nil))
	assert.Len(t, events, 2)
	assert.Equal(t, "provider", events[0].EntityType)

	metricsRec := srv.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, metricsRec.Code)
	assert.Contains(t, metricsRec.Body.String(), `route="/api/providers"`)
}

func TestRouter_EventsForEntity(t *testing.T) {
	srv := newTestServer(t)

	co := decode[dto.CountryResponse](t, srv.do(t, http.MethodPost, "/api/countries", dto.CountryRequest{Name: "Chile", IsoCode: "CL"}))
	rec := srv.do(t, http.MethodPost, "/api/providers", dto.ProviderRequest{Nit: "9", Name: "Andes", CountryID: co.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	p := decode[dto.ProviderResponse](t, rec)

	rec = srv.do(t, http.MethodPut, "/api/providers/"+itoa(p.ID), dto.ProviderRequest{Nit: "9", Name: "Andes SA", CountryID: co.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, http.StatusNoContent, srv.do(t, http.MethodDelete, "/api/providers/"+itoa(p.ID), nil).Code)

	rec = srv.do(t, http.MethodGet, "/api/events?entityType=provider&entityId="+itoa(p.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	history := decode[[]dto.EventResponse](t, rec)
	require.Len(t, history, 3)
	for i, want := range []string{"created", "updated", "deleted"} {
		assert.Equal(t, want, history[i].EventType)
		assert.Equal(t, "provider", history[i].EntityType)
		assert.Equal(t, p.ID, history[i].EntityID)
	}

	countryHistory := decode[[]dto.EventResponse](t, srv.do(t, http.MethodGet, "/api/events?entityType=country&entityId="+itoa(co.ID), nil))
	require.Len(t, countryHistory, 1)
	assert.Equal(t, "created", countryHistory[0].EventType)

	for _, path := range []string{
		"/api/events?entityType=booking&entityId=1",
		"/api/events?entityType=provider",
		"/api/events?entityType=provider&entityId=abc",
		"/api/events?limit=abc",
	} {
		rec = srv.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Equal(t, dto.CodeValidation, decode[dto.ErrorResponse](t, rec).Code, path)
	}
}

func TestRouter_PageNavigationAndHugePage(t *testing.T) {
	srv := newTestServer(t)
	for _, c := range []dto.CountryRequest{{Name: "Chile", IsoCode: "CL"}, {Name: "Peru", IsoCode: "PE"}, {Name: "Mexico", IsoCode: "MX"}} {
		require.Equal(t, http.StatusCreated, srv.do(t, http.MethodPost, "/api/countries", c).Code)
	}

	rec := srv.do(t, http.MethodGet, "/api/countries?page=1&pageSize=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	nav := decode[map[string]any](t, rec)
	assert.Equal(t, true, nav["hasNext"])
	assert.Equal(t, false, nav["hasPrev"])

	rec = srv.do(t, http.MethodGet, "/api/countries?page=9223372036854775807&pageSize=2", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page := decode[catalog.Page[dto.CountryResponse]](t, rec)
	assert.Empty(t, page.Items)
	assert.EqualValues(t, 3, page.TotalCount)
	nav = decode[map[string]any](t, rec)
	assert.Equal(t, false, nav["hasNext"])
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{catalog.ErrNotFound, http.StatusNotFound},
		{catalog.NewValidationError("x", "bad"), http.StatusBadRequest},
		{catalog.ErrConstraintViolation, http.StatusConflict},
		{catalog.ErrInvalidCredentials, http.StatusUnauthorized},
		{context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		status, _ := statusFor(tc.err)
		assert.Equal(t, tc.status, status, "error %v", tc.err)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
