package http

import (
	"net/http"

	"github.com/aussiebroadwan/innosync/internal/collab/domain"
	"github.com/aussiebroadwan/innosync/internal/collab/service"
	"github.com/aussiebroadwan/innosync/pkg/collabsdk"
	"github.com/aussiebroadwan/innosync/pkg/httpx"
)

type InvitationsHandler struct {
	InvitationService *service.InvitationService
}

// HandleCreate invites a user to a project role.
//
//	@Summary		Send invitation
//	@Description	The caller must own the role's project. At most one open invitation
//	@Description	may exist per recipient and role.
//	@Tags			Invitations
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		collabsdk.InvitationRequest	true	"Role and recipient"
//	@Success		200		{object}	collabsdk.InvitationResponse
//	@Failure		400		{object}	collabsdk.ErrorResponse	"Missing identifiers"
//	@Failure		403		{object}	collabsdk.ErrorResponse	"Caller does not own the project"
//	@Failure		404		{object}	collabsdk.ErrorResponse	"Role or user not found"
//	@Failure		409		{object}	collabsdk.ErrorResponse	"Open invitation already exists"
//	@Router			/v1/invitations [post].
func (h *InvitationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	var req collabsdk.InvitationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	inv, err := h.InvitationService.Create(r.Context(), req.ProjectRoleID, req.RecipientID, email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toInvitationResponse(inv))
}

// HandleRespond accepts or declines an invitation.
//
//	@Summary		Respond to invitation
//	@Description	Only the recipient may respond, and only while the invitation is INVITED.
//	@Description	Accepting adds the recipient to the project team.
//	@Tags			Invitations
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id			path		string	true	"Invitation ID"
//	@Param			response	query		string	true	"ACCEPTED or DECLINED"	Enums(ACCEPTED, DECLINED)
//	@Success		200			{object}	collabsdk.InvitationResponse
//	@Failure		400			{object}	collabsdk.ErrorResponse	"Unsupported response"
//	@Failure		403			{object}	collabsdk.ErrorResponse	"Caller is not the recipient"
//	@Failure		404			{object}	collabsdk.ErrorResponse	"Invitation not found"
//	@Failure		409			{object}	collabsdk.ErrorResponse	"Already responded"
//	@Router			/v1/invitations/{id}/respond [patch].
func (h *InvitationsHandler) HandleRespond(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	status := domain.InvitationStatus(r.URL.Query().Get("response"))
	inv, err := h.InvitationService.Respond(r.Context(), r.PathValue("id"), status, email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toInvitationResponse(inv))
}

// HandleRevoke withdraws an open invitation.
//
//	@Summary		Revoke invitation
//	@Tags			Invitations
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Invitation ID"
//	@Success		200	{object}	collabsdk.InvitationResponse
//	@Failure		403	{object}	collabsdk.ErrorResponse	"Caller is not the sender"
//	@Failure		404	{object}	collabsdk.ErrorResponse	"Invitation not found"
//	@Failure		409	{object}	collabsdk.ErrorResponse	"Invitation no longer open"
//	@Router			/v1/invitations/{id}/revoke [post].
func (h *InvitationsHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	inv, err := h.InvitationService.Revoke(r.Context(), r.PathValue("id"), email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toInvitationResponse(inv))
}

// HandleListSent lists invitations the caller sent.
//
//	@Summary		Sent invitations
//	@Tags			Invitations
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}	collabsdk.InvitationResponse
//	@Router			/v1/invitations/sent [get].
func (h *InvitationsHandler) HandleListSent(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	invs, err := h.InvitationService.ListSent(r.Context(), email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(invs, toInvitationResponse))
}

// HandleListReceived lists invitations addressed to the caller, newest first.
//
//	@Summary		Received invitations
//	@Tags			Invitations
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}	collabsdk.InvitationResponse
//	@Router			/v1/invitations/received [get].
func (h *InvitationsHandler) HandleListReceived(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	invs, err := h.InvitationService.ListReceived(r.Context(), email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(invs, toInvitationResponse))
}
