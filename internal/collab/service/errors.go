package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every error a service returns to a caller either is one of
// these or wraps one, so the transport maps them with errors.Is.
var (
	ErrNotFound        = errors.New("not_found")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrInvalidArgument = errors.New("invalid_argument")
	ErrUnauthorized    = errors.New("unauthorized")
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	ErrInvalidRefresh     = fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)

	ErrEmailTaken = fmt.Errorf("%w: email already registered", ErrConflict)

	ErrUserNotFound        = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrProjectNotFound     = fmt.Errorf("%w: project not found", ErrNotFound)
	ErrProjectRoleNotFound = fmt.Errorf("%w: project role not found", ErrNotFound)
	ErrInvitationNotFound  = fmt.Errorf("%w: invitation not found", ErrNotFound)
	ErrApplicationNotFound = fmt.Errorf("%w: application not found", ErrNotFound)

	ErrNotProjectOwner = fmt.Errorf("%w: only the project owner may perform this action", ErrForbidden)
	ErrNotRecipient    = fmt.Errorf("%w: only the recipient may respond to this invitation", ErrForbidden)
	ErrNotSender       = fmt.Errorf("%w: only the sender may revoke this invitation", ErrForbidden)

	ErrInvitationExists   = fmt.Errorf("%w: an open invitation already exists for this user and role", ErrConflict)
	ErrInvitationClosed   = fmt.Errorf("%w: invitation already responded", ErrConflict)
	ErrAlreadyApplied     = fmt.Errorf("%w: already applied to this role", ErrConflict)
	ErrInvalidStatus      = fmt.Errorf("%w: unsupported status", ErrInvalidArgument)
	ErrMissingIdentifiers = fmt.Errorf("%w: missing required identifiers", ErrInvalidArgument)
)

// Kind returns the error kind err belongs to, or nil for unexpected errors.
func Kind(err error) error {
	for _, k := range []error{ErrNotFound, ErrForbidden, ErrConflict, ErrInvalidArgument, ErrUnauthorized} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// reason is the metric label for a rejected workflow request.
func reason(err error) string {
	if k := Kind(err); k != nil {
		return k.Error()
	}
	return "error"
}
