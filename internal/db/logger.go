package db

import (
	"log/slog"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

// NewLogger направляет логи GORM в slog.
func NewLogger(logger *slog.Logger, level gormlogger.LogLevel) gormlogger.Interface {
	if logger == nil {
		logger = slog.Default()
	}
	writer := slog.NewLogLogger(logger.With("component", "gorm").Handler(), slog.LevelWarn)
	return gormlogger.New(writer, gormlogger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
