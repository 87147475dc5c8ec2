package server

import (
	"github.com/gin-gonic/gin"

	"resume-parser/internal/account"
	googleauth "resume-parser/internal/auth"
	"resume-parser/internal/resumes"
	"resume-parser/internal/services/health"
	"resume-parser/internal/shared/config"
	"resume-parser/internal/shared/metrics"
	"resume-parser/internal/shared/server/middleware"
	"resume-parser/internal/uploads"
	"resume-parser/internal/users"
)

// RouterDeps carries the handlers mounted by NewRouter. Nil handlers are skipped.
type RouterDeps struct {
	Config         config.Config
	Verifier       middleware.Verifier
	ResumeHandler  *resumes.Handler
	UserHandler    *users.Handler
	AccountHandler *account.Handler
	UploadHandler  *uploads.Handler
	Health         *health.Service
	GoogleAuth     *googleauth.GoogleService
	RateLimiter    *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.MaxMultipartMemory = 8 << 20

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	limiter := deps.RateLimiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(nil)
	}
	rateLimit := middleware.RateLimit(middleware.RateLimitConfig{
		Rules:    middleware.DefaultRateLimitRules(),
		GroupFor: middleware.UploadGroup,
		Limiter:  limiter,
	})

	r.GET("/metrics", metrics.Handler())

	public := r.Group("/api/v1", middleware.OptionalAuth(deps.Verifier), rateLimit)
	if deps.Health != nil {
		deps.Health.RegisterRoutes(public)
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(public)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterPublicRoutes(public)
	}

	protected := r.Group("/api/v1", middleware.Auth(deps.Verifier), rateLimit)
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(protected)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(protected)
	}
	if deps.AccountHandler != nil {
		deps.AccountHandler.RegisterRoutes(protected)
	}
	if deps.UploadHandler != nil {
		deps.UploadHandler.RegisterRoutes(protected)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
