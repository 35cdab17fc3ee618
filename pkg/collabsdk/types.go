package collabsdk

import "time"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// EmptyResponse is returned by endpoints with nothing to report.
type EmptyResponse struct{}

// ============================================================================
// Auth
// ============================================================================

type SignupRequest struct {
	Email    string `json:"email"     validate:"required,email,max=254"`
	Password string `json:"password"  validate:"required,min=8,max=128"`
	FullName string `json:"full_name" validate:"max=200"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

// RefreshRequest carries an opaque refresh token for /refresh and /logout.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required,max=512"`
}

// TokenResponse is returned by signup, login and refresh.
type TokenResponse struct {
	// AccessToken is the HS256 JWT to send as a bearer token
	AccessToken string `json:"access_token"`

	// RefreshToken is the opaque token used to obtain new access tokens
	RefreshToken string `json:"refresh_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the access token lifetime in seconds
	ExpiresIn int `json:"expires_in"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

// ============================================================================
// Projects
// ============================================================================

type CreateProjectRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

type ProjectResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateRoleRequest struct {
	RoleName       string   `json:"role_name"       validate:"required,max=120"`
	ExpertiseLevel string   `json:"expertise_level" validate:"required,oneof=ENTRY JUNIOR MIDDLE SENIOR LEAD"`
	Technologies   []string `json:"technologies"    validate:"max=50,dive,max=64"`
}

type RoleResponse struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"project_id"`
	ProjectTitle   string    `json:"project_title"`
	OwnerEmail     string    `json:"owner_email"`
	RoleName       string    `json:"role_name"`
	ExpertiseLevel string    `json:"expertise_level"`
	Technologies   []string  `json:"technologies"`
	CreatedAt      time.Time `json:"created_at"`
}

type TeamMemberResponse struct {
	ID            string    `json:"id"`
	ProjectID     string    `json:"project_id"`
	ProjectRoleID string    `json:"project_role_id"`
	RoleName      string    `json:"role_name"`
	UserID        string    `json:"user_id"`
	UserEmail     string    `json:"user_email"`
	JoinedAt      time.Time `json:"joined_at"`
	JoinedVia     string    `json:"joined_via"`
}

// ============================================================================
// Invitations
// ============================================================================

type InvitationRequest struct {
	ProjectRoleID string `json:"project_role_id" validate:"required,ulid"`
	RecipientID   string `json:"recipient_id"    validate:"required,ulid"`
}

type InvitationResponse struct {
	ID             string     `json:"id"`
	ProjectRoleID  string     `json:"project_role_id"`
	ProjectID      string     `json:"project_id"`
	RoleName       string     `json:"role_name"`
	SenderID       string     `json:"sender_id"`
	SenderEmail    string     `json:"sender_email"`
	RecipientID    string     `json:"recipient_id"`
	RecipientEmail string     `json:"recipient_email"`
	Status         string     `json:"status"`
	SentAt         time.Time  `json:"sent_at"`
	RespondedAt    *time.Time `json:"responded_at"`
}

// ============================================================================
// Applications
// ============================================================================

type ApplicationResponse struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	UserEmail     string     `json:"user_email"`
	ProjectRoleID string     `json:"project_role_id"`
	ProjectID     string     `json:"project_id"`
	RoleName      string     `json:"role_name"`
	Status        string     `json:"status"`
	AppliedAt     time.Time  `json:"applied_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

// ============================================================================
// Health
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
