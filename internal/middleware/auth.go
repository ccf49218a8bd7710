package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Leganyst/provider-catalog/internal/dto"
	"github.com/Leganyst/provider-catalog/internal/service"
)

const ctxClaims = "claims"

type TokenParser interface {
	ParseToken(token string) (*service.Claims, error)
}

// RequireAuth пропускает запрос только с валидным Bearer-токеном.
func RequireAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "no authorization token provided")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := parser.ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(ctxClaims, claims)
		c.Next()
	}
}

// GetClaims возвращает claims, положенные RequireAuth.
func GetClaims(c *gin.Context) (*service.Claims, bool) {
	v, ok := c.Get(ctxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*service.Claims)
	return claims, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error:   http.StatusText(http.StatusUnauthorized),
		Code:    dto.CodeUnauthorized,
		Message: message,
	})
}
