package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/innosync/internal/collab/metrics"
	"github.com/aussiebroadwan/innosync/internal/collab/service"
	"github.com/aussiebroadwan/innosync/internal/collab/store"
	"github.com/aussiebroadwan/innosync/pkg/httpx"
	"github.com/aussiebroadwan/innosync/pkg/jwtx"
	"github.com/aussiebroadwan/innosync/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/aussiebroadwan/innosync/api/collab" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	signer       jwtx.Issuer
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store              store.Store
	AuthService        *service.AuthService
	ProjectService     *service.ProjectService
	TeamService        *service.TeamService
	InvitationService  *service.InvitationService
	ApplicationService *service.ApplicationService
}

func NewRouter(
	verifier jwtx.Verifier,
	signer jwtx.Issuer,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		signer:       signer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProjects()
	r.registerInvitations()
	r.registerApplications()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			InnoSync Collaboration API
//	@version		0.1.0
//	@description	Accounts, sessions, projects and the invitation and application workflows
//	@description	that staff project roles.
//	@description
//	@description				Access tokens are HS256 JWTs. Refresh tokens are opaque and stored only as fingerprints.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/innosync
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// limit attaches the rejection counter to a rate limit profile.
func limit(cfg httpx.RateLimitConfig) httpx.RateLimitConfig {
	cfg.OnReject = metrics.RateLimitRejected
	return cfg
}

// secured wraps h with bearer authentication and a per-user rate limit.
func (r *Router) secured(h http.HandlerFunc, cfg httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(limit(cfg)),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Credential endpoints are public and limited by IP
	strict := httpx.RateLimitByIP(limit(httpx.StrictLimit))
	r.Mux.Handle("POST /v1/auth/signup", httpx.Chain(http.HandlerFunc(h.HandleSignup), strict))
	r.Mux.Handle("POST /v1/auth/login", httpx.Chain(http.HandlerFunc(h.HandleLogin), strict))
	r.Mux.Handle("POST /v1/auth/refresh", httpx.Chain(http.HandlerFunc(h.HandleRefresh), strict))
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(limit(httpx.ModerateLimit)),
		),
	)

	r.Mux.Handle("POST /v1/auth/logout-all", r.secured(h.HandleLogoutAll, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/users/me", r.secured(h.HandleMe, httpx.LenientLimit))
}

func (r *Router) registerProjects() {
	h := &ProjectsHandler{
		ProjectService: r.ProjectService,
		TeamService:    r.TeamService,
	}

	r.Mux.Handle("POST /v1/projects", r.secured(h.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/projects/{id}/roles", r.secured(h.HandleAddRole, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/projects/{id}/roles", r.secured(h.HandleListRoles, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/projects/{id}/team", r.secured(h.HandleListTeam, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/users/me/teams", r.secured(h.HandleListMyTeams, httpx.LenientLimit))
}

func (r *Router) registerInvitations() {
	h := &InvitationsHandler{InvitationService: r.InvitationService}

	r.Mux.Handle("POST /v1/invitations", r.secured(h.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("PATCH /v1/invitations/{id}/respond", r.secured(h.HandleRespond, httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/invitations/{id}/revoke", r.secured(h.HandleRevoke, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/invitations/sent", r.secured(h.HandleListSent, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/invitations/received", r.secured(h.HandleListReceived, httpx.LenientLimit))
}

func (r *Router) registerApplications() {
	h := &ApplicationsHandler{ApplicationService: r.ApplicationService}

	r.Mux.Handle("POST /v1/applications/project-roles/{roleId}", r.secured(h.HandleApply, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/applications/project-roles/{roleId}", r.secured(h.HandleListForRole, httpx.LenientLimit))
	r.Mux.Handle("PATCH /v1/applications/{id}/status", r.secured(h.HandleDecide, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/applications", r.secured(h.HandleListMine, httpx.LenientLimit))
}

func (r *Router) registerSystem() {
	// Monitoring systems may poll frequently
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(limit(httpx.LenientLimit)),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer),
			httpx.RateLimitByIP(limit(httpx.LenientLimit)),
		),
	)
	r.Mux.Handle("GET /metrics", promhttp.Handler())
}
