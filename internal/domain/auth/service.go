package auth

import (
	"context"
	"errors"
	"time"
)

type UserStore interface {
	FindUserByUsername(ctx context.Context, username string) (User, error)
	UserExists(ctx context.Context, userID int64) (bool, error)
}

type Service struct {
	store  UserStore
	secret string
	ttl    time.Duration
}

func NewService(store UserStore, secret string, ttl time.Duration) *Service {
	return &Service{store: store, secret: secret, ttl: ttl}
}

// Login checks the password and issues a signed token. Unknown users and
// wrong passwords both report ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (string, User, error) {
	user, err := s.store.FindUserByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return "", User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", User{}, err
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateToken(s.secret, Claims{
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role,
		EmployeeID: user.EmployeeID,
	}, s.ttl)
	if err != nil {
		return "", User{}, err
	}
	return token, user, nil
}

func (s *Service) UserExists(ctx context.Context, userID int64) (bool, error) {
	return s.store.UserExists(ctx, userID)
}
