package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Leganyst/provider-catalog/internal/catalog"
)

// SQLSTATE нарушения внешнего ключа в Postgres.
const pgForeignKeyViolation = "23503"

// translateError приводит ошибки хранилища к ошибкам каталога.
// Исходная ошибка сохраняется в цепочке, чтобы её было видно в логах.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, catalog.ErrNotFound) || errors.Is(err, catalog.ErrConstraintViolation) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalog.ErrNotFound
	}
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: %w", catalog.ErrConstraintViolation, err)
	}
	return err
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	// драйвер sqlite не всегда даёт код, остаётся текст
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
