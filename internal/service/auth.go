package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/linemk/shop-dashboard/internal/domain/models"
	security "github.com/linemk/shop-dashboard/internal/jwt-new"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, username, password string) (string, error)
	Enabled() bool
}

// AuthService выдаёт токен единственному администратору из конфигурации.
// Пустой секрет или хэш пароля отключают аутентификацию.
type AuthService struct {
	log      *slog.Logger
	admin    *models.User
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(log *slog.Logger, username, passwordHash, secret string, tokenTTL time.Duration) *AuthService {
	var admin *models.User
	if username != "" && passwordHash != "" {
		admin = &models.User{Username: username, PassHash: []byte(passwordHash), Role: models.RoleAdmin}
	}
	return &AuthService{
		log:      log,
		admin:    admin,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (a *AuthService) Enabled() bool {
	return a.secret != "" && a.admin != nil
}

// Login сверяет пароль с bcrypt-хэшем и выдаёт JWT-токен.
func (a *AuthService) Login(_ context.Context, username, password string) (string, error) {
	const op = "service.AuthService.Login"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("username", username),
	)

	if !a.Enabled() {
		return "", fmt.Errorf("%s: %w", op, ErrAuthDisabled)
	}
	if username != a.admin.Username {
		logger.Info("unknown user")
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword(a.admin.PassHash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			logger.Info("invalid password")
			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		logger.Error("failed to compare password hash", slog.Any("error", err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := security.NewToken(a.admin, a.secret, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return "", fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("admin logged in")
	return token, nil
}
