package http

import (
	"net/http"

	"github.com/aussiebroadwan/innosync/internal/collab/domain"
	"github.com/aussiebroadwan/innosync/internal/collab/service"
	"github.com/aussiebroadwan/innosync/pkg/collabsdk"
	"github.com/aussiebroadwan/innosync/pkg/httpx"
)

type ProjectsHandler struct {
	ProjectService *service.ProjectService
	TeamService    *service.TeamService
}

// HandleCreate creates a project owned by the caller.
//
//	@Summary		Create project
//	@Tags			Projects
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		collabsdk.CreateProjectRequest	true	"Project"
//	@Success		200		{object}	collabsdk.ProjectResponse
//	@Failure		400		{object}	collabsdk.ErrorResponse
//	@Failure		401		{object}	collabsdk.ErrorResponse
//	@Router			/v1/projects [post].
func (h *ProjectsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	var req collabsdk.CreateProjectRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	p, err := h.ProjectService.CreateProject(r.Context(), email, req.Title)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProjectResponse(p))
}

// HandleAddRole opens a role on a project.
//
//	@Summary		Add role
//	@Description	Only the project owner may add roles.
//	@Tags			Projects
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Project ID"
//	@Param			request	body		collabsdk.CreateRoleRequest	true	"Role"
//	@Success		200		{object}	collabsdk.RoleResponse
//	@Failure		400		{object}	collabsdk.ErrorResponse
//	@Failure		403		{object}	collabsdk.ErrorResponse	"Caller does not own the project"
//	@Failure		404		{object}	collabsdk.ErrorResponse	"Project not found"
//	@Router			/v1/projects/{id}/roles [post].
func (h *ProjectsHandler) HandleAddRole(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	var req collabsdk.CreateRoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	role, err := h.ProjectService.AddRole(r.Context(), r.PathValue("id"), email, service.RoleInput{
		RoleName:       req.RoleName,
		ExpertiseLevel: domain.ExpertiseLevel(req.ExpertiseLevel),
		Technologies:   req.Technologies,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRoleResponse(role))
}

// HandleListRoles lists a project's roles.
//
//	@Summary		List roles
//	@Tags			Projects
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{array}		collabsdk.RoleResponse
//	@Failure		404	{object}	collabsdk.ErrorResponse	"Project not found"
//	@Router			/v1/projects/{id}/roles [get].
func (h *ProjectsHandler) HandleListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.ProjectService.ListRoles(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(roles, toRoleResponse))
}

// HandleListTeam lists the members a project gained through accepted
// invitations and applications.
//
//	@Summary		List team
//	@Tags			Projects
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{array}		collabsdk.TeamMemberResponse
//	@Failure		404	{object}	collabsdk.ErrorResponse	"Project not found"
//	@Router			/v1/projects/{id}/team [get].
func (h *ProjectsHandler) HandleListTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.TeamService.ListByProject(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(team, toTeamMemberResponse))
}

// HandleListMyTeams lists the caller's memberships across projects.
//
//	@Summary		My teams
//	@Tags			Projects
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}	collabsdk.TeamMemberResponse
//	@Router			/v1/users/me/teams [get].
func (h *ProjectsHandler) HandleListMyTeams(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	team, err := h.TeamService.ListByUser(r.Context(), email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(team, toTeamMemberResponse))
}
