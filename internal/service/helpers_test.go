package service

import (
	"testing"

	"gorm.io/gorm"

	"github.com/Leganyst/provider-catalog/internal/config"
	"github.com/Leganyst/provider-catalog/internal/db"
	"github.com/Leganyst/provider-catalog/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := db.NewGormDB(&config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: ":memory:",
	}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := model.AutoMigrate(gormDB); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gormDB
}
