package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/Leganyst/provider-catalog/internal/catalog"
	"github.com/Leganyst/provider-catalog/internal/dto"
	"github.com/Leganyst/provider-catalog/internal/metrics"
	"github.com/Leganyst/provider-catalog/internal/middleware"
	"github.com/Leganyst/provider-catalog/internal/service"
	"github.com/Leganyst/provider-catalog/internal/validation"
)

type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*dto.LoginResponse, error)
	middleware.TokenParser
}

type ReportAPI interface {
	Summary(ctx context.Context) (*dto.SummaryReport, error)
}

type EventAPI interface {
	Recent(ctx context.Context, limit int) ([]dto.EventResponse, error)
	ForEntity(ctx context.Context, entityType string, id int64) ([]dto.EventResponse, error)
}

// Deps: всё, что нужно HTTP-слою. Поля с nil-значением отключают соответствующие маршруты.
type Deps struct {
	Countries         service.CountryAPI
	Services          service.ServiceAPI
	Providers         service.ProviderAPI
	Reports           ReportAPI
	Events            EventAPI
	Auth              AuthAPI
	ExternalCountries service.ExternalCountrySource
	Metrics           *metrics.Metrics
	Ping              func(ctx context.Context) error
	Logger            *slog.Logger
	RateLimitRPS      float64
	RateLimitBurst    int
}

func init() {
	binding.Validator = validation.GinValidator{}
}

func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.CustomRecovery(func(c *gin.Context, rec any) {
		logger.ErrorContext(c.Request.Context(), "panic recovered",
			"request_id", middleware.GetRequestID(c),
			"panic", rec,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   http.StatusText(http.StatusInternalServerError),
			Code:    dto.CodeInternal,
			Message: "internal server error",
		})
	}))
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	r.GET("/health", healthHandler(d.Ping))

	api := r.Group("/api")
	if d.RateLimitRPS > 0 {
		api.Use(middleware.RateLimit(d.RateLimitRPS, d.RateLimitBurst, logger))
	}

	api.POST("/auth/login", loginHandler(d.Auth))

	// отчёт открыт без токена
	if d.Reports != nil {
		api.GET("/reports/summary", summaryHandler(d.Reports))
	}

	private := api.Group("")
	private.Use(middleware.RequireAuth(d.Auth))

	if d.ExternalCountries != nil {
		private.GET("/countries/external", externalCountriesHandler(d.ExternalCountries))
	}
	if d.Countries != nil {
		crudHandler[dto.CountryRequest, dto.CountryResponse]{svc: d.Countries}.register(private.Group("/countries"))
	}
	if d.Services != nil {
		crudHandler[dto.ServiceRequest, dto.ServiceResponse]{svc: d.Services}.register(private.Group("/services"))
	}
	if d.Providers != nil {
		crudHandler[dto.ProviderRequest, dto.ProviderResponse]{svc: d.Providers}.register(private.Group("/providers"))
	}
	if d.Events != nil {
		private.GET("/events", eventsHandler(d.Events))
	}

	return r
}

func loginHandler(auth AuthAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.LoginRequest
		if !bindJSON(c, &req) {
			return
		}
		resp, err := auth.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func summaryHandler(reports ReportAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := reports.Summary(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func externalCountriesHandler(src service.ExternalCountrySource) gin.HandlerFunc {
	return func(c *gin.Context) {
		countries, err := src.Countries(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, countries)
	}
}

// eventsHandler: без фильтра последние события, с entityType и entityId
// история одной сущности.
func eventsHandler(events EventAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			list []dto.EventResponse
			err  error
		)
		entityType, byEntity := c.GetQuery("entityType")
		if _, ok := c.GetQuery("entityId"); ok {
			byEntity = true
		}

		if byEntity {
			id, perr := strconv.ParseInt(c.Query("entityId"), 10, 64)
			if perr != nil {
				respondError(c, catalog.NewValidationError("entityId", "must be an integer"))
				return
			}
			list, err = events.ForEntity(c.Request.Context(), entityType, id)
		} else {
			limit, ok := queryInt(c, "limit")
			if !ok {
				return
			}
			list, err = events.Recent(c.Request.Context(), limit)
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func healthHandler(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		if err := ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "db": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "ok"})
	}
}
