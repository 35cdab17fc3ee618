package collabsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client talks to the collaboration service. It covers the public
// endpoints and opens authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Signup registers an account and returns a session for it.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*Session, error) {
	tok, err := c.postTokens(ctx, "/v1/auth/signup", req)
	if err != nil {
		return nil, err
	}
	return newSession(c, tok), nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	tok, err := c.postTokens(ctx, "/v1/auth/login", LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return newSession(c, tok), nil
}

// Refresh exchanges a refresh token for a new access token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	return c.postTokens(ctx, "/v1/auth/refresh", RefreshRequest{RefreshToken: refreshToken})
}

// Logout revokes a refresh token. Unknown tokens are accepted.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	resp, err := c.do(ctx, http.MethodPost, "/v1/auth/logout", "", RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// SessionFromTokens resumes a session from stored tokens.
func (c *Client) SessionFromTokens(accessToken, refreshToken string, expiresIn int) *Session {
	return newSession(c, &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
	})
}

func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) postTokens(ctx context.Context, path string, body any) (*TokenResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, path, "", body)
	if err != nil {
		return nil, err
	}
	var out TokenResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
