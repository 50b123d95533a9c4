package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Skotchmaster/cyberacademy/internal/hash"
	"github.com/Skotchmaster/cyberacademy/internal/logging"
	"github.com/Skotchmaster/cyberacademy/internal/models"
	"github.com/Skotchmaster/cyberacademy/internal/repo"
	"github.com/Skotchmaster/cyberacademy/internal/tokens"
)

type AuthService struct {
	Users     repo.UserStore
	JWTSecret []byte
	AccessTTL time.Duration
}

type Principal struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

type LoginResult struct {
	User        Principal
	AccessToken string
	AccessExp   time.Time
}

// Authenticate succeeds only for an existing admin whose password matches.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*Principal, error) {
	l := logging.FromContext(ctx).With("svc", "auth.authenticate")

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrValidation)
	}

	user, err := s.Users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("authenticate_failed", "reason", "unknown user")
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("authenticate_failed", "reason", "wrong password", "user_id", user.ID)
		return nil, ErrUnauthorized
	}
	if !user.IsAdmin {
		l.Warn("authenticate_failed", "reason", "not an admin", "user_id", user.ID)
		return nil, ErrUnauthorized
	}

	return &Principal{ID: user.ID, Username: user.Username, IsAdmin: user.IsAdmin}, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	p, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = tokens.AccessTTL
	}
	exp := time.Now().Add(ttl).UTC()
	tok, err := tokens.NewAccessToken(s.JWTSecret, p.ID, p.Username, p.IsAdmin, exp)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	return &LoginResult{User: *p, AccessToken: tok, AccessExp: exp}, nil
}

func (s *AuthService) VerifyToken(token string) (*Principal, error) {
	claims, err := tokens.AccessClaimsFromToken(token, s.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if !claims.IsAdmin {
		return nil, ErrUnauthorized
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrUnauthorized)
	}
	return &Principal{ID: uint(id), Username: claims.Username, IsAdmin: true}, nil
}

func (s *AuthService) CreateAdmin(ctx context.Context, username, password string, email *string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrValidation)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Username: username, PasswordHash: pwHash, Email: email, IsAdmin: true}
	if err := s.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, fmt.Errorf("%w: username %s taken", ErrConflict, username)
		}
		return nil, err
	}
	return user, nil
}
