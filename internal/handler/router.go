package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hackhub/teamhub/internal/config"
	"hackhub/teamhub/internal/handler/middleware"
	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/internal/repository"
	jwtpkg "hackhub/teamhub/pkg/jwt"
)

// Handlers bundles the HTTP handlers mounted by SetupRouter.
type Handlers struct {
	Auth       *AuthHandler
	User       *UserHandler
	Hackathon  *HackathonHandler
	Team       *TeamHandler
	Invitation *InvitationHandler
}

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	jwtManager *jwtpkg.Manager,
	tokens repository.TokenStore,
	h Handlers,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	healthz := func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	}
	r.GET("/healthz", healthz)

	api := r.Group("/api/v1")
	api.GET("/healthz", healthz)

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.JWTAuth(jwtManager, tokens))
	{
		protected.POST("/auth/logout", h.Auth.Logout)
		protected.GET("/auth/me", h.Auth.Me)

		// Profile
		protected.GET("/profile", h.User.GetProfile)
		protected.PATCH("/profile", h.User.UpdateProfile)
		protected.GET("/profile/skills", h.User.ListSkills)
		protected.POST("/profile/skills", h.User.AddSkill)
		protected.DELETE("/profile/skills/:skill", h.User.RemoveSkill)

		// Users
		protected.GET("/users/search", h.User.Search)
		protected.GET("/users/:id", h.User.GetUser)

		// Hackathons
		protected.GET("/hackathons", h.Hackathon.List)
		protected.GET("/hackathons/registrations/my", h.Hackathon.MyRegistrations)
		protected.GET("/hackathons/:id", h.Hackathon.Get)
		protected.GET("/hackathons/:id/skills", h.Hackathon.ListSkills)
		protected.GET("/hackathons/:id/teams", h.Hackathon.ListTeams)
		protected.POST("/hackathons/:id/register", h.Hackathon.Register)
		protected.DELETE("/hackathons/:id/register", h.Hackathon.Unregister)

		// Teams
		protected.POST("/teams", h.Team.Create)
		protected.GET("/teams/my", h.Team.My)
		protected.GET("/teams/:id", h.Team.Get)
		protected.PATCH("/teams/:id", h.Team.Update)
		protected.DELETE("/teams/:id", h.Team.Delete)
		protected.POST("/teams/:id/members/:user_id", h.Team.AddMember)
		protected.DELETE("/teams/:id/members/:user_id", h.Team.RemoveMember)
		protected.POST("/teams/:id/invitations", h.Team.Invite)
		protected.GET("/teams/:id/invitations", h.Team.ListInvitations)

		// Invitations
		protected.GET("/invitations/my", h.Invitation.My)
		protected.PATCH("/invitations/:id", h.Invitation.Resolve)
	}

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuth(jwtManager, tokens), middleware.RequireRole(model.RoleAdmin))
	{
		admin.POST("/hackathons", h.Hackathon.Create)
		admin.PATCH("/hackathons/:id", h.Hackathon.Update)
		admin.DELETE("/hackathons/:id", h.Hackathon.Delete)
		admin.POST("/hackathons/:id/skills", h.Hackathon.AddSkill)
		admin.DELETE("/hackathons/:id/skills/:skill_id", h.Hackathon.RemoveSkill)
		admin.GET("/hackathons/:id/registrations", h.Hackathon.ListRegistrations)

		admin.GET("/users", h.User.ListUsers)
		admin.PATCH("/users/:id/role", h.User.SetRole)
	}

	return r
}
