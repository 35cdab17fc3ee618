package http

import (
	"github.com/aussiebroadwan/innosync/internal/collab/domain"
	"github.com/aussiebroadwan/innosync/pkg/collabsdk"
)

func toTokenResponse(p *domain.TokenPair) collabsdk.TokenResponse {
	return collabsdk.TokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    p.TokenType,
		ExpiresIn:    int(p.ExpiresIn.Seconds()),
	}
}

func toUserResponse(u domain.User) collabsdk.UserResponse {
	return collabsdk.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
}

func toProjectResponse(p domain.Project) collabsdk.ProjectResponse {
	return collabsdk.ProjectResponse{
		ID:        p.ID,
		Title:     p.Title,
		OwnerID:   p.OwnerID,
		CreatedAt: p.CreatedAt,
	}
}

func toRoleResponse(r domain.ProjectRole) collabsdk.RoleResponse {
	tech := r.Technologies
	if tech == nil {
		tech = []string{}
	}
	return collabsdk.RoleResponse{
		ID:             r.ID,
		ProjectID:      r.ProjectID,
		ProjectTitle:   r.ProjectTitle,
		OwnerEmail:     r.OwnerEmail,
		RoleName:       r.RoleName,
		ExpertiseLevel: string(r.ExpertiseLevel),
		Technologies:   tech,
		CreatedAt:      r.CreatedAt,
	}
}

func toTeamMemberResponse(m domain.TeamMember) collabsdk.TeamMemberResponse {
	return collabsdk.TeamMemberResponse{
		ID:            m.ID,
		ProjectID:     m.ProjectID,
		ProjectRoleID: m.ProjectRoleID,
		RoleName:      m.RoleName,
		UserID:        m.UserID,
		UserEmail:     m.UserEmail,
		JoinedAt:      m.JoinedAt,
		JoinedVia:     string(m.JoinedVia),
	}
}

func toInvitationResponse(i domain.Invitation) collabsdk.InvitationResponse {
	return collabsdk.InvitationResponse{
		ID:             i.ID,
		ProjectRoleID:  i.ProjectRoleID,
		ProjectID:      i.ProjectID,
		RoleName:       i.RoleName,
		SenderID:       i.SenderID,
		SenderEmail:    i.SenderEmail,
		RecipientID:    i.RecipientID,
		RecipientEmail: i.RecipientEmail,
		Status:         string(i.Status),
		SentAt:         i.SentAt,
		RespondedAt:    i.RespondedAt,
	}
}

func toApplicationResponse(a domain.RoleApplication) collabsdk.ApplicationResponse {
	return collabsdk.ApplicationResponse{
		ID:            a.ID,
		UserID:        a.UserID,
		UserEmail:     a.UserEmail,
		ProjectRoleID: a.ProjectRoleID,
		ProjectID:     a.ProjectID,
		RoleName:      a.RoleName,
		Status:        string(a.Status),
		AppliedAt:     a.AppliedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// mapSlice converts a list, never returning nil so JSON renders [].
func mapSlice[T, R any](in []T, f func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
