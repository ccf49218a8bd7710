package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Leganyst/provider-catalog/internal/config"
	"github.com/Leganyst/provider-catalog/internal/db"
	"github.com/Leganyst/provider-catalog/internal/model"
)

// newTestDB открывает отдельную in-memory SQLite с включёнными внешними ключами.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := db.NewGormDB(&config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: ":memory:",
	}, nil)
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(gormDB))

	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gormDB
}

func seedCountry(t *testing.T, gormDB *gorm.DB, name, iso string) model.Country {
	t.Helper()
	c := model.Country{Name: name, IsoCode: iso}
	require.NoError(t, gormDB.Create(&c).Error)
	return c
}

func seedService(t *testing.T, gormDB *gorm.DB, name string, description *string, rate string) model.Service {
	t.Helper()
	s := model.Service{Name: name, Description: description, HourlyRate: decimal.RequireFromString(rate)}
	require.NoError(t, gormDB.Create(&s).Error)
	return s
}

func seedProvider(t *testing.T, repo *GormProviderRepository, p model.Provider, serviceIDs ...int64) model.Provider {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &p, serviceIDs))
	return p
}

func strPtr(s string) *string { return &s }
