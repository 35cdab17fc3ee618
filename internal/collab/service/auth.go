package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/innosync/internal/collab/domain"
	"github.com/aussiebroadwan/innosync/internal/collab/metrics"
	"github.com/aussiebroadwan/innosync/internal/collab/store"
	"github.com/aussiebroadwan/innosync/pkg/cryptox"
	"github.com/aussiebroadwan/innosync/pkg/idx"
	"github.com/aussiebroadwan/innosync/pkg/slogx"
)

// AuthService is the account entry point: signup, login and session
// teardown on top of SessionService.
type AuthService struct {
	Store    store.Store
	Hasher   *cryptox.PasswordHasher
	Sessions *SessionService
}

// NormalizeEmail is applied to every email before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Signup(ctx context.Context, email, password, fullName string) (pair *domain.TokenPair, err error) {
	ctx, span := startSpan(ctx, "AuthService.Signup")
	defer endSpan(span, &err)
	defer func() { countAuth("signup", err) }()

	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidArgument)
	}

	// 1. Cheap duplicate check; the unique index is authoritative
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	// 2. Hash and persist
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(fullName),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	slogx.FromContext(ctx).Info("user signed up", slog.String("user_id", user.ID))

	// 3. Open the first session
	return s.Sessions.Issue(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (pair *domain.TokenPair, err error) {
	ctx, span := startSpan(ctx, "AuthService.Login")
	defer endSpan(span, &err)
	defer func() { countAuth("login", err) }()

	user, err := s.Store.Users().GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.Hasher.Verify(password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			slogx.FromContext(ctx).Warn("stored password hash unreadable",
				slog.String("user_id", user.ID), slog.Any("error", err))
		}
		return nil, ErrInvalidCredentials
	}

	return s.Sessions.Issue(ctx, user)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (pair *domain.TokenPair, err error) {
	defer func() { countAuth("refresh", err) }()
	return s.Sessions.Rotate(ctx, refreshToken)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) (err error) {
	defer func() { countAuth("logout", err) }()
	return s.Sessions.Revoke(ctx, refreshToken)
}

// LogoutAll ends every session of the user behind email.
func (s *AuthService) LogoutAll(ctx context.Context, email string) (err error) {
	defer func() { countAuth("logout_all", err) }()

	user, err := s.Me(ctx, email)
	if err != nil {
		return err
	}
	return s.Sessions.RevokeAll(ctx, user.ID)
}

// Me returns the account behind email.
func (s *AuthService) Me(ctx context.Context, email string) (domain.User, error) {
	return resolveUser(ctx, s.Store, email)
}

func resolveUser(ctx context.Context, st store.Store, email string) (domain.User, error) {
	if email == "" {
		return domain.User{}, ErrUserNotFound
	}
	u, err := st.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

func countAuth(event string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = reason(err)
	}
	metrics.AuthEventsTotal.WithLabelValues(event, outcome).Inc()
}
