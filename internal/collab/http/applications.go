package http

import (
	"net/http"

	"github.com/aussiebroadwan/innosync/internal/collab/domain"
	"github.com/aussiebroadwan/innosync/internal/collab/service"
	"github.com/aussiebroadwan/innosync/pkg/httpx"
)

type ApplicationsHandler struct {
	ApplicationService *service.ApplicationService
}

// HandleApply files an application for a role.
//
//	@Summary		Apply to role
//	@Description	A user may apply to a role once, whatever happened to an earlier application.
//	@Tags			Applications
//	@Security		BearerAuth
//	@Produce		json
//	@Param			roleId	path		string	true	"Project role ID"
//	@Success		200		{object}	collabsdk.ApplicationResponse
//	@Failure		404		{object}	collabsdk.ErrorResponse	"Role or user not found"
//	@Failure		409		{object}	collabsdk.ErrorResponse	"Already applied"
//	@Router			/v1/applications/project-roles/{roleId} [post].
func (h *ApplicationsHandler) HandleApply(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	app, err := h.ApplicationService.Apply(r.Context(), r.PathValue("roleId"), email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toApplicationResponse(app))
}

// HandleDecide sets an application's status.
//
//	@Summary		Decide application
//	@Description	Only the owner of the role's project may decide. Decisions may be changed later.
//	@Tags			Applications
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id		path		string	true	"Application ID"
//	@Param			status	query		string	true	"ACCEPTED or REJECTED"	Enums(ACCEPTED, REJECTED)
//	@Success		200		{object}	collabsdk.ApplicationResponse
//	@Failure		400		{object}	collabsdk.ErrorResponse	"Unsupported status"
//	@Failure		403		{object}	collabsdk.ErrorResponse	"Caller does not own the project"
//	@Failure		404		{object}	collabsdk.ErrorResponse	"Application not found"
//	@Router			/v1/applications/{id}/status [patch].
func (h *ApplicationsHandler) HandleDecide(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	status := domain.ApplicationStatus(r.URL.Query().Get("status"))
	app, err := h.ApplicationService.Decide(r.Context(), r.PathValue("id"), status, email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toApplicationResponse(app))
}

// HandleListForRole lists a role's applications for its owner.
//
//	@Summary		Role applications
//	@Tags			Applications
//	@Security		BearerAuth
//	@Produce		json
//	@Param			roleId	path		string	true	"Project role ID"
//	@Success		200		{array}		collabsdk.ApplicationResponse
//	@Failure		403		{object}	collabsdk.ErrorResponse	"Caller does not own the project"
//	@Failure		404		{object}	collabsdk.ErrorResponse	"Role not found"
//	@Router			/v1/applications/project-roles/{roleId} [get].
func (h *ApplicationsHandler) HandleListForRole(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	apps, err := h.ApplicationService.ListForRole(r.Context(), r.PathValue("roleId"), email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(apps, toApplicationResponse))
}

// HandleListMine lists the caller's applications.
//
//	@Summary		My applications
//	@Tags			Applications
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}	collabsdk.ApplicationResponse
//	@Router			/v1/applications [get].
func (h *ApplicationsHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	apps, err := h.ApplicationService.ListForUser(r.Context(), email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(apps, toApplicationResponse))
}
