package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Leganyst/provider-catalog/internal/catalog"
	"github.com/Leganyst/provider-catalog/internal/config"
	"github.com/Leganyst/provider-catalog/internal/dto"
)

// Claims: содержимое access-токена.
type Claims struct {
	Name string       `json:"name"`
	Role catalog.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthService выдаёт и проверяет JWT (HS256).
type AuthService struct {
	accounts catalog.AccountStore
	cfg      config.JWTConfig
	now      func() time.Time
}

func NewAuthService(accounts catalog.AccountStore, cfg config.JWTConfig) *AuthService {
	return &AuthService{
		accounts: accounts,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*dto.LoginResponse, error) {
	principal, err := catalog.ValidateCredentials(ctx, s.accounts, username, password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.cfg.ExpiresIn)
	claims := Claims{
		Name: principal.Username,
		Role: principal.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.Username,
			ID:        uuid.NewString(),
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Key))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &dto.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// ParseToken проверяет подпись, издателя, аудиторию и срок действия.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return []byte(s.cfg.Key), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrInvalidCredentials, err)
	}
	return claims, nil
}
