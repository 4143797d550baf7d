// Package auth проверяет учётные данные администратора.
//
// Сессий и токенов нет: успешная проверка лишь подтверждает пару логин-пароль,
// а признак входа хранит клиент.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/barbershop/internal/lib/password"
	"github.com/magabrotheeeer/barbershop/internal/lib/sl"
	"github.com/magabrotheeeer/barbershop/internal/models"
	"github.com/magabrotheeeer/barbershop/internal/storage"
)

// ErrInvalidCredentials возвращается при неизвестном пользователе или неверном пароле.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Verifier — политика проверки учётных данных.
type Verifier interface {
	Verify(ctx context.Context, creds models.Credentials) (*models.User, error)
}

// UserRepository описывает доступ к пользователям.
type UserRepository interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// StoreVerifier сверяет пароль с хешем пользователя из хранилища.
type StoreVerifier struct {
	users UserRepository
	log   *slog.Logger
}

// NewStoreVerifier создаёт Verifier поверх хранилища пользователей.
func NewStoreVerifier(users UserRepository, log *slog.Logger) *StoreVerifier {
	return &StoreVerifier{
		users: users,
		log:   log,
	}
}

// Verify возвращает пользователя без пароля при совпадении учётных данных.
func (v *StoreVerifier) Verify(ctx context.Context, creds models.Credentials) (*models.User, error) {
	const op = "services.auth.Verify"

	user, err := v.users.GetUserByUsername(ctx, creds.Username)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(user.Password, creds.Password); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			v.log.Warn("stored password hash is unusable", slog.String("username", user.Username), sl.Err(err))
		}
		return nil, ErrInvalidCredentials
	}

	return &models.User{ID: user.ID, Username: user.Username}, nil
}
