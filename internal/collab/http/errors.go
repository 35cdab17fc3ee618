package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/innosync/internal/collab/service"
	"github.com/aussiebroadwan/innosync/pkg/collabsdk"
	"github.com/aussiebroadwan/innosync/pkg/httpx"
	"github.com/aussiebroadwan/innosync/pkg/slogx"
)

// writeServiceError maps a service error onto its HTTP form. Errors
// without a kind are logged and reported as a bare 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		collabsdk.ErrInvalidCredentials.WriteError(w)
		return
	case errors.Is(err, service.ErrInvalidRefresh):
		collabsdk.ErrInvalidGrant.WriteError(w)
		return
	}

	kind := service.Kind(err)
	var apiErr *collabsdk.APIError
	switch kind {
	case service.ErrNotFound:
		apiErr = collabsdk.ErrNotFound
	case service.ErrForbidden:
		apiErr = collabsdk.ErrForbidden
	case service.ErrConflict:
		apiErr = collabsdk.ErrConflict
	case service.ErrInvalidArgument:
		apiErr = collabsdk.ErrInvalidRequest
	case service.ErrUnauthorized:
		apiErr = collabsdk.ErrInvalidToken
	default:
		slogx.FromContext(r.Context()).Error("request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		collabsdk.ErrServerError.WriteError(w)
		return
	}

	apiErr.WithDescription(describe(err, kind)).WriteError(w)
}

// describe strips the kind prefix from err's message.
func describe(err, kind error) string {
	return strings.TrimPrefix(err.Error(), kind.Error()+": ")
}

// writeBadRequest reports a body that failed to decode or validate.
func writeBadRequest(w http.ResponseWriter, err error) {
	msg := strings.TrimPrefix(err.Error(), httpx.ErrBadRequest.Error()+": ")
	collabsdk.ErrInvalidRequest.WithDescription(msg).WriteError(w)
}

// callerEmail returns the authenticated email, writing a 401 when there is
// none.
func callerEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	email, ok := httpx.EmailFromContext(r.Context())
	if !ok {
		collabsdk.ErrInvalidToken.WriteError(w)
		return "", false
	}
	return email, true
}
