package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leganyst/provider-catalog/internal/catalog"
	"github.com/Leganyst/provider-catalog/internal/model"
)

func TestCountryRepository_CRUD(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewGormCountryRepository(gormDB)
	ctx := context.Background()

	c := model.Country{Name: "Peru", IsoCode: "PE"}
	require.NoError(t, repo.Create(ctx, &c))
	require.NotZero(t, c.ID)

	c.Name = "Perú"
	require.NoError(t, repo.Update(ctx, &c))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Perú", got.Name)
	assert.Equal(t, "PE", got.IsoCode)

	missing := model.Country{ID: 999, Name: "x", IsoCode: "x"}
	assert.ErrorIs(t, repo.Update(ctx, &missing), catalog.ErrNotFound)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	events, err := NewGormEventRepository(gormDB).ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, model.EventTypeUpdated, events[0].EventType)
}

func TestCountryRepository_DeleteReferencedIsConstraintViolation(t *testing.T) {
	gormDB := newTestDB(t)
	co := seedCountry(t, gormDB, "Colombia", "CO")
	seedProvider(t, NewGormProviderRepository(gormDB), model.Provider{Nit: "1", Name: "Acme", CountryID: co.ID})

	ok, err := NewGormCountryRepository(gormDB).Delete(context.Background(), co.ID)
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrConstraintViolation), "got %v", err)
}

func TestServiceRepository_DeleteRemovesOnlyLinks(t *testing.T) {
	gormDB := newTestDB(t)
	co := seedCountry(t, gormDB, "Colombia", "CO")
	svc := seedService(t, gormDB, "Consulting", nil, "80")
	providers := NewGormProviderRepository(gormDB)
	p := seedProvider(t, providers, model.Provider{Nit: "1", Name: "Acme", CountryID: co.ID}, svc.ID)

	ok, err := NewGormServiceRepository(gormDB).Delete(context.Background(), svc.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := providers.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Services)
}

func TestServiceRepository_UpdateAndFindByIDs(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewGormServiceRepository(gormDB)
	ctx := context.Background()

	s := model.Service{Name: "Hosting", HourlyRate: decimal.RequireFromString("10.25")}
	require.NoError(t, repo.Create(ctx, &s))

	s.Description = strPtr("Managed")
	s.HourlyRate = decimal.RequireFromString("12.5")
	require.NoError(t, repo.Update(ctx, &s))

	found, err := findServicesByIDs(gormDB.WithContext(ctx), []int64{s.ID, s.ID + 100})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Managed", *found[0].Description)
	assert.True(t, decimal.RequireFromString("12.5").Equal(found[0].HourlyRate))

	empty, err := findServicesByIDs(gormDB.WithContext(ctx), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
