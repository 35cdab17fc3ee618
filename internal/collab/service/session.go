package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/innosync/internal/collab/domain"
	"github.com/aussiebroadwan/innosync/internal/collab/metrics"
	"github.com/aussiebroadwan/innosync/internal/collab/store"
	"github.com/aussiebroadwan/innosync/pkg/cryptox"
	"github.com/aussiebroadwan/innosync/pkg/idx"
	"github.com/aussiebroadwan/innosync/pkg/jwtx"
	"github.com/aussiebroadwan/innosync/pkg/slogx"
)

// SessionService owns refresh tokens: it persists them, exchanges them for
// access tokens and deletes them.
type SessionService struct {
	Store      store.Store
	Issuer     jwtx.Issuer
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// RotateOnUse replaces the refresh token on every Rotate call. When
	// false the presented token stays valid until it expires or is revoked.
	RotateOnUse bool

	// Now defaults to time.Now in UTC.
	Now func() time.Time
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *SessionService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}

func (s *SessionService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

// Create persists a fresh refresh token for user.
func (s *SessionService) Create(ctx context.Context, user domain.User) (domain.IssuedRefreshToken, error) {
	return s.create(ctx, s.Store.RefreshTokens(), user)
}

func (s *SessionService) create(
	ctx context.Context,
	repo store.RefreshTokens,
	user domain.User,
) (domain.IssuedRefreshToken, error) {
	if user.ID == "" {
		return domain.IssuedRefreshToken{}, fmt.Errorf("%w: user is required", ErrInvalidArgument)
	}

	opaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.IssuedRefreshToken{}, err
	}

	now := s.now()
	rec := domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TokenHash: cryptox.FingerprintToken(opaque),
		ExpiresAt: now.Add(s.refreshTTL()),
		CreatedAt: now,
	}
	if err := repo.CreateRefreshToken(ctx, rec); err != nil {
		return domain.IssuedRefreshToken{}, err
	}
	return domain.IssuedRefreshToken{Token: opaque, Record: rec}, nil
}

// Issue starts a session for user: a new refresh token plus an access token.
func (s *SessionService) Issue(ctx context.Context, user domain.User) (*domain.TokenPair, error) {
	refresh, err := s.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.pair(user, refresh.Token)
}

func (s *SessionService) pair(user domain.User, refresh string) (*domain.TokenPair, error) {
	access, err := s.Issuer.Issue(user.Email)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    s.accessTTL(),
	}, nil
}

// Rotate exchanges a refresh token for a new access token. Unknown and
// expired tokens yield ErrInvalidRefresh; an expired token is deleted on
// the way out.
func (s *SessionService) Rotate(ctx context.Context, raw string) (pair *domain.TokenPair, err error) {
	ctx, span := startSpan(ctx, "SessionService.Rotate")
	defer endSpan(span, &err)

	if raw == "" {
		return nil, ErrInvalidRefresh
	}
	hash := cryptox.FingerprintToken(raw)

	if s.RotateOnUse {
		return s.rotateReplacing(ctx, hash)
	}

	tok, err := s.lookup(ctx, s.Store, hash)
	if err != nil {
		return nil, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, tok.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}
	return s.pair(user, raw)
}

// lookup finds a live token by fingerprint, deleting it when expired.
func (s *SessionService) lookup(ctx context.Context, st store.Store, hash string) (domain.RefreshToken, error) {
	tok, err := st.RefreshTokens().GetRefreshTokenByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.RefreshToken{}, ErrInvalidRefresh
		}
		return domain.RefreshToken{}, err
	}

	if tok.Expired(s.now()) {
		deleted, err := st.RefreshTokens().DeleteRefreshToken(ctx, hash)
		if err != nil {
			return domain.RefreshToken{}, err
		}
		if deleted {
			metrics.ExpiredRefreshTokensDeletedTotal.Inc()
		}
		slogx.FromContext(ctx).Info("expired refresh token presented", slog.String("user_id", tok.UserID))
		return domain.RefreshToken{}, ErrInvalidRefresh
	}
	return tok, nil
}

// rotateReplacing deletes the presented token and issues a replacement in
// one transaction. Of two concurrent calls with the same token only the one
// whose delete removes the row succeeds.
func (s *SessionService) rotateReplacing(ctx context.Context, hash string) (*domain.TokenPair, error) {
	var (
		result  *domain.TokenPair
		invalid bool
	)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		tok, err := s.lookup(ctx, tx, hash)
		if err != nil {
			if errors.Is(err, ErrInvalidRefresh) {
				// Commit so an expired row stays deleted
				invalid = true
				return nil
			}
			return err
		}

		deleted, err := tx.RefreshTokens().DeleteRefreshToken(ctx, hash)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrInvalidRefresh
		}

		user, err := tx.Users().GetUserByID(ctx, tok.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidRefresh
			}
			return err
		}

		next, err := s.create(ctx, tx.RefreshTokens(), user)
		if err != nil {
			return err
		}

		result, err = s.pair(user, next.Token)
		return err
	})
	if err != nil {
		return nil, err
	}
	if invalid {
		return nil, ErrInvalidRefresh
	}
	return result, nil
}

// Revoke deletes a refresh token. Unknown tokens are not an error.
func (s *SessionService) Revoke(ctx context.Context, raw string) error {
	if raw == "" {
		return nil
	}
	_, err := s.Store.RefreshTokens().DeleteRefreshToken(ctx, cryptox.FingerprintToken(raw))
	return err
}

// RevokeAll deletes every refresh token of a user.
func (s *SessionService) RevokeAll(ctx context.Context, userID string) error {
	n, err := s.Store.RefreshTokens().DeleteUserRefreshTokens(ctx, userID)
	if err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("revoked all sessions", slog.String("user_id", userID), slog.Int64("count", n))
	return nil
}
