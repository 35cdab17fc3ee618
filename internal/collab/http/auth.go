package http

import (
	"net/http"

	"github.com/aussiebroadwan/innosync/internal/collab/service"
	"github.com/aussiebroadwan/innosync/pkg/collabsdk"
	"github.com/aussiebroadwan/innosync/pkg/httpx"
	"github.com/aussiebroadwan/innosync/pkg/slogx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleSignup registers an account.
//
//	@Summary		Sign up
//	@Description	Creates an account and opens its first session.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		collabsdk.SignupRequest	true	"Account details"
//	@Success		200		{object}	collabsdk.TokenResponse
//	@Failure		400		{object}	collabsdk.ErrorResponse	"Invalid request body"
//	@Failure		409		{object}	collabsdk.ErrorResponse	"Email already registered"
//	@Failure		429		{object}	collabsdk.ErrorResponse	"Rate limit exceeded"
//	@Router			/v1/auth/signup [post].
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req collabsdk.SignupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	pair, err := h.AuthService.Signup(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
}

// HandleLogin authenticates with email and password.
//
//	@Summary		Log in
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		collabsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	collabsdk.TokenResponse
//	@Failure		400		{object}	collabsdk.ErrorResponse	"Invalid request body"
//	@Failure		401		{object}	collabsdk.ErrorResponse	"Invalid email or password"
//	@Failure		429		{object}	collabsdk.ErrorResponse	"Rate limit exceeded"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req collabsdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	pair, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
}

// HandleRefresh exchanges a refresh token for a new access token.
//
//	@Summary		Refresh
//	@Description	Returns a new access token. The refresh token is returned unchanged unless
//	@Description	rotation on use is enabled, in which case the presented token stops working.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		collabsdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	collabsdk.TokenResponse
//	@Failure		400		{object}	collabsdk.ErrorResponse	"Invalid request body"
//	@Failure		401		{object}	collabsdk.ErrorResponse	"Unknown or expired refresh token"
//	@Router			/v1/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req collabsdk.RefreshRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	pair, err := h.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
}

// HandleLogout revokes a refresh token.
//
//	@Summary		Log out
//	@Description	Deletes the refresh token. Unknown tokens are accepted, so retries are safe.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		collabsdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	collabsdk.EmptyResponse
//	@Failure		400		{object}	collabsdk.ErrorResponse	"Invalid request body"
//	@Failure		500		{object}	collabsdk.ErrorResponse	"Logout failed"
//	@Router			/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var req collabsdk.RefreshRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	if err := h.AuthService.Logout(r.Context(), req.RefreshToken); err != nil {
		slogx.FromContext(r.Context()).Error("logout failed", "err", err)
		collabsdk.ErrServerError.WithDescription("logout failed").WriteError(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, collabsdk.EmptyResponse{})
}

// HandleLogoutAll revokes every session of the caller.
//
//	@Summary		Log out everywhere
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	collabsdk.EmptyResponse
//	@Failure		401	{object}	collabsdk.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/auth/logout-all [post].
func (h *AuthHandler) HandleLogoutAll(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	if err := h.AuthService.LogoutAll(r.Context(), email); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, collabsdk.EmptyResponse{})
}

// HandleMe returns the caller's account.
//
//	@Summary		Current user
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	collabsdk.UserResponse
//	@Failure		401	{object}	collabsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		404	{object}	collabsdk.ErrorResponse	"Account no longer exists"
//	@Router			/v1/users/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	user, err := h.AuthService.Me(r.Context(), email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}
