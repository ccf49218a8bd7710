package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Leganyst/provider-catalog/internal/catalog"
	"github.com/Leganyst/provider-catalog/internal/dto"
	"github.com/Leganyst/provider-catalog/internal/middleware"
)

// statusFor переводит ошибку каталога в HTTP-статус и код ответа.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound, dto.CodeNotFound
	case catalog.IsValidation(err):
		return http.StatusBadRequest, dto.CodeValidation
	case errors.Is(err, catalog.ErrConstraintViolation):
		return http.StatusConflict, dto.CodeConflict
	case errors.Is(err, catalog.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.CodeUnauthorized
	default:
		return http.StatusInternalServerError, dto.CodeInternal
	}
}

func respondError(c *gin.Context, err error) {
	status, code := statusFor(err)
	message := err.Error()

	switch {
	case status >= 500:
		slog.ErrorContext(c.Request.Context(), "request failed",
			"request_id", middleware.GetRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		// детали хранилища наружу не отдаём
		message = "internal server error"
	case status == http.StatusConflict:
		message = "operation violates a data integrity constraint"
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Error:   http.StatusText(status),
		Code:    code,
		Message: message,
	})
}

// bindJSON читает тело и валидирует его. При ошибке ответ уже отправлен.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		if !catalog.IsValidation(err) {
			err = catalog.NewValidationError("body", err.Error())
		}
		respondError(c, err)
		return false
	}
	return true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, catalog.NewValidationError("id", "must be an integer"))
		return 0, false
	}
	return id, true
}

// pageRequest читает page, pageSize, search, sortField, sortDir из query.
// Значения <= 0 допустимы: их нормализует конвейер листинга.
func pageRequest(c *gin.Context) (catalog.PageRequest, bool) {
	req := catalog.PageRequest{
		Search:    c.Query("search"),
		SortField: c.Query("sortField"),
		SortDir:   c.Query("sortDir"),
	}
	var ok bool
	if req.Page, ok = queryInt(c, "page"); !ok {
		return req, false
	}
	if req.PageSize, ok = queryInt(c, "pageSize"); !ok {
		return req, false
	}
	return req, true
}

func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		respondError(c, catalog.NewValidationError(name, "must be an integer"))
		return 0, false
	}
	return v, true
}

// respondDeleted: 204 при удалении, 404 если строки не было.
func respondDeleted(c *gin.Context, deleted bool, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondError(c, catalog.ErrNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
