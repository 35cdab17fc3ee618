package httpx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/innosync/pkg/httpx"
	"github.com/aussiebroadwan/innosync/pkg/jwtx"
	"github.com/aussiebroadwan/innosync/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler, mark("outer"), mark("inner"))
	serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"outer", "inner"}, order)
}

func TestAuthnMiddleware(t *testing.T) {
	iss, err := jwtx.NewEphemeralHS256Issuer(jwtx.DefaultAccessTokenTTL)
	require.NoError(t, err)

	var gotEmail string
	h := httpx.AuthnMiddleware(iss)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEmail, _ = httpx.EmailFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("missing header", func(t *testing.T) {
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.True(t, strings.HasPrefix(rec.Header().Get("WWW-Authenticate"), "Bearer "))
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		require.Equal(t, http.StatusUnauthorized, serve(h, req).Code)
	})

	t.Run("valid token", func(t *testing.T) {
		tok, err := iss.Issue("alice@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		require.Equal(t, http.StatusOK, serve(h, req).Code)
		require.Equal(t, "alice@example.com", gotEmail)
	})
}

func TestAuthnMiddlewareTagsLogger(t *testing.T) {
	iss, err := jwtx.NewEphemeralHS256Issuer(jwtx.DefaultAccessTokenTTL)
	require.NoError(t, err)

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	h := httpx.AuthnMiddleware(iss)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slogx.FromContext(r.Context()).Info("inside")
		w.WriteHeader(http.StatusOK)
	}))

	tok, err := iss.Issue("alice@example.com")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(slogx.WithLogger(context.Background(), base))
	req.Header.Set("Authorization", "Bearer "+tok)
	require.Equal(t, http.StatusOK, serve(h, req).Code)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "inside", line["msg"])
	require.Equal(t, "alice@example.com", line["user"])
}

type signupBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestDecodeJSON(t *testing.T) {
	decode := func(body string) error {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		var dst signupBody
		return httpx.DecodeJSON(req, &dst)
	}

	require.NoError(t, decode(`{"email":"a@x.io","password":"longenough"}`))

	err := decode(`{"email":"nope","password":"short"}`)
	require.ErrorIs(t, err, httpx.ErrBadRequest)
	require.Contains(t, err.Error(), "email must be a valid email")
	require.Contains(t, err.Error(), "password must be at least 8 characters")

	require.ErrorIs(t, decode(`{"email":"a@x.io","password":"longenough","extra":1}`), httpx.ErrBadRequest)
	require.ErrorIs(t, decode(`not json`), httpx.ErrBadRequest)
}
