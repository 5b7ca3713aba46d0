package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BuzzLyutic/household-api/internal/model"
	"github.com/BuzzLyutic/household-api/internal/repo"
)

var (
	// ErrInvalidCredentials одинаков для неизвестного email и неверного
	// пароля - наружу не утекает, существует ли учётная запись
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrValidation = errors.New("validation error")
)

const minPasswordLen = 6

type Identity struct {
	users repo.UserRepository
}

func NewIdentity(users repo.UserRepository) *Identity {
	return &Identity{users: users}
}

func (s *Identity) Register(ctx context.Context, email, password string) (model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return model.User{}, ErrValidation
	}
	if len(password) < minPasswordLen {
		return model.User{}, ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, err
	}

	return s.users.Insert(ctx, model.User{
		Email:        email,
		PasswordHash: string(hash),
	})
}

func (s *Identity) Authenticate(ctx context.Context, email, password string) (model.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return model.User{}, ErrInvalidCredentials
	}
	return u, nil
}
