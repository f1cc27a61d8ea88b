package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/shop_orders/internal/auth"
	"github.com/Skotchmaster/shop_orders/internal/hash"
	"github.com/Skotchmaster/shop_orders/internal/logging"
	"github.com/Skotchmaster/shop_orders/internal/models"
	"github.com/Skotchmaster/shop_orders/internal/repo"
)

type AuthService struct {
	Repo *repo.GormRepo
	Auth *auth.Authenticator
}

type LoginResult struct {
	User   *models.User
	Token  string
	Expiry time.Time
}

func (svc *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrValidation)
	}

	l := logging.FromContext(ctx).With("svc", "auth.register")

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: pwHash,
		Role:         "user",
	}

	if err := svc.Repo.CreateUserIfNotExists(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			return nil, fmt.Errorf("%w: username taken", ErrConflict)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	l.Info("user_registered", "user_id", user.ID)
	return user, nil
}

func (svc *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrValidation)
	}

	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := svc.Repo.UserByCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidCredentials) {
			l.Warn("login_failed", "username", username)
			return nil, repo.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	token, exp, err := svc.Auth.Issue(user.ID, user.Role)
	if err != nil {
		l.Error("login_error", "reason", "cannot sign token", "error", err)
		return nil, err
	}

	l.Info("login_success", "user_id", user.ID)
	return &LoginResult{User: user, Token: token, Expiry: exp}, nil
}
