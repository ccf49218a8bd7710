package catalog

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Роль учётной записи API.
type Role string

const (
	RoleAdmin Role = "Admin"
)

// Account: учётная запись, которой разрешено получать токен.
type Account struct {
	Username     string
	PasswordHash []byte
	Role         Role
}

// Результат успешной проверки учётных данных.
type Principal struct {
	Username string
	Role     Role
}

// Источник учётных записей.
// Сейчас это один пользователь из конфига, в тестах: заглушка.
type AccountStore interface {
	FindByUsername(ctx context.Context, username string) (*Account, error)
}

// ValidateCredentials:
//   - отбрасывает пустые логин и пароль;
//   - ищет учётную запись в хранилище;
//   - сверяет пароль с bcrypt-хешем;
//   - возвращает нормализованного принципала или ErrInvalidCredentials.
func ValidateCredentials(
	ctx context.Context,
	store AccountStore,
	username, password string,
) (*Principal, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	acc, err := store.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &Principal{
		Username: acc.Username,
		Role:     acc.Role,
	}, nil
}

// StaticAccountStore хранит единственного пользователя.
// Логин сравнивается без учёта регистра.
type StaticAccountStore struct {
	account Account
}

// NewStaticAccountStore хеширует пароль один раз при старте.
func NewStaticAccountStore(username, password string, role Role) (*StaticAccountStore, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &StaticAccountStore{account: Account{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}}, nil
}

func (s *StaticAccountStore) FindByUsername(_ context.Context, username string) (*Account, error) {
	if s.account.Username == "" || !strings.EqualFold(s.account.Username, username) {
		return nil, nil
	}
	acc := s.account
	return &acc, nil
}
