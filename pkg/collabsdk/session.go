package collabsdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Session is an authenticated caller. It refreshes the access token
// shortly before it expires, and once more if the server rejects it.
// Sessions are safe for concurrent use.
type Session struct {
	client *Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

// refreshBuffer is how long before expiry the access token is renewed.
const refreshBuffer = 30 * time.Second

func newSession(c *Client, tok *TokenResponse) *Session {
	s := &Session{client: c}
	s.store(tok)
	return s
}

func (s *Session) store(tok *TokenResponse) {
	s.accessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		s.refreshToken = tok.RefreshToken
	}
	s.expiresAt = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - refreshBuffer)
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Refresh renews the access token now. The server may hand back a new
// refresh token, which replaces the old one.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

func (s *Session) refreshLocked(ctx context.Context) error {
	if s.refreshToken == "" {
		return fmt.Errorf("access token expired and no refresh token available")
	}
	tok, err := s.client.Refresh(ctx, s.refreshToken)
	if err != nil {
		return fmt.Errorf("failed to refresh token: %w", err)
	}
	s.store(tok)
	return nil
}

func (s *Session) validToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have refreshed meanwhile
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}
	if err := s.refreshLocked(ctx); err != nil {
		return "", err
	}
	return s.accessToken, nil
}

// call performs an authenticated request and decodes the response. A 401
// triggers a single refresh and retry.
func (s *Session) call(ctx context.Context, method, path string, body, out any) error {
	token, err := s.validToken(ctx)
	if err != nil {
		return err
	}

	resp, err := s.client.do(ctx, method, path, token, body)
	if err != nil {
		return err
	}
	err = decodeJSON(resp, out, http.StatusOK)
	if !errors.Is(err, ErrInvalidToken) {
		return err
	}

	if rerr := s.Refresh(ctx); rerr != nil {
		return err
	}
	resp, err = s.client.do(ctx, method, path, s.AccessToken(), body)
	if err != nil {
		return err
	}
	return decodeJSON(resp, out, http.StatusOK)
}

// Logout revokes this session's refresh token.
func (s *Session) Logout(ctx context.Context) error {
	return s.client.Logout(ctx, s.RefreshToken())
}

// LogoutAll revokes every refresh token of the account.
func (s *Session) LogoutAll(ctx context.Context) error {
	return s.call(ctx, http.MethodPost, "/v1/auth/logout-all", nil, nil)
}

func (s *Session) Me(ctx context.Context) (*UserResponse, error) {
	var out UserResponse
	if err := s.call(ctx, http.MethodGet, "/v1/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Projects
// ============================================================================

func (s *Session) CreateProject(ctx context.Context, title string) (*ProjectResponse, error) {
	var out ProjectResponse
	if err := s.call(ctx, http.MethodPost, "/v1/projects", CreateProjectRequest{Title: title}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) AddRole(ctx context.Context, projectID string, req CreateRoleRequest) (*RoleResponse, error) {
	var out RoleResponse
	path := "/v1/projects/" + url.PathEscape(projectID) + "/roles"
	if err := s.call(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListRoles(ctx context.Context, projectID string) ([]RoleResponse, error) {
	var out []RoleResponse
	path := "/v1/projects/" + url.PathEscape(projectID) + "/roles"
	if err := s.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) ListTeam(ctx context.Context, projectID string) ([]TeamMemberResponse, error) {
	var out []TeamMemberResponse
	path := "/v1/projects/" + url.PathEscape(projectID) + "/team"
	if err := s.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMyTeams returns every team the session's user belongs to.
func (s *Session) ListMyTeams(ctx context.Context) ([]TeamMemberResponse, error) {
	var out []TeamMemberResponse
	if err := s.call(ctx, http.MethodGet, "/v1/users/me/teams", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ============================================================================
// Invitations
// ============================================================================

// Invite offers a role to recipientID. The caller must own the role's project.
func (s *Session) Invite(ctx context.Context, projectRoleID, recipientID string) (*InvitationResponse, error) {
	var out InvitationResponse
	req := InvitationRequest{ProjectRoleID: projectRoleID, RecipientID: recipientID}
	if err := s.call(ctx, http.MethodPost, "/v1/invitations", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RespondInvitation accepts or declines an invitation addressed to the caller.
func (s *Session) RespondInvitation(ctx context.Context, invitationID, response string) (*InvitationResponse, error) {
	var out InvitationResponse
	path := "/v1/invitations/" + url.PathEscape(invitationID) + "/respond?response=" + url.QueryEscape(response)
	if err := s.call(ctx, http.MethodPatch, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeInvitation withdraws an open invitation the caller sent.
func (s *Session) RevokeInvitation(ctx context.Context, invitationID string) (*InvitationResponse, error) {
	var out InvitationResponse
	path := "/v1/invitations/" + url.PathEscape(invitationID) + "/revoke"
	if err := s.call(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListSentInvitations(ctx context.Context) ([]InvitationResponse, error) {
	var out []InvitationResponse
	if err := s.call(ctx, http.MethodGet, "/v1/invitations/sent", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListReceivedInvitations returns invitations addressed to the caller,
// newest first.
func (s *Session) ListReceivedInvitations(ctx context.Context) ([]InvitationResponse, error) {
	var out []InvitationResponse
	if err := s.call(ctx, http.MethodGet, "/v1/invitations/received", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ============================================================================
// Applications
// ============================================================================

func (s *Session) Apply(ctx context.Context, projectRoleID string) (*ApplicationResponse, error) {
	var out ApplicationResponse
	path := "/v1/applications/project-roles/" + url.PathEscape(projectRoleID)
	if err := s.call(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DecideApplication sets an application's status. The caller must own the
// role's project.
func (s *Session) DecideApplication(ctx context.Context, applicationID, status string) (*ApplicationResponse, error) {
	var out ApplicationResponse
	path := "/v1/applications/" + url.PathEscape(applicationID) + "/status?status=" + url.QueryEscape(status)
	if err := s.call(ctx, http.MethodPatch, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListRoleApplications(ctx context.Context, projectRoleID string) ([]ApplicationResponse, error) {
	var out []ApplicationResponse
	path := "/v1/applications/project-roles/" + url.PathEscape(projectRoleID)
	if err := s.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) ListMyApplications(ctx context.Context) ([]ApplicationResponse, error) {
	var out []ApplicationResponse
	if err := s.call(ctx, http.MethodGet, "/v1/applications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
