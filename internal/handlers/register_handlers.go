package handlers

import (
	"github.com/finbuckets/envelope_budget_app/cmd/docs"
	portssvc "github.com/finbuckets/envelope_budget_app/internal/core/ports/services"
	"github.com/finbuckets/envelope_budget_app/internal/middleware"
	"github.com/finbuckets/envelope_budget_app/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", GetHome)

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// registerAuthRoutes sets up the public authentication endpoints with IP rate
// limiting.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.AuthSvc, services.UserSvc)
	oauthHandler := newGoogleOAuthHandler(services.GoogleOAuthSvc)

	rate, err := limiter.NewRateFromFormatted(cfg.AuthRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("20-M")
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	auth := r.Group("/api/v1/auth", limitMiddleware)
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/refresh", h.refresh)
		auth.POST("/google/callback", oauthHandler.googleCallback)
	}

	// Logout needs the caller's identity, so it sits behind auth middleware
	r.POST("/api/v1/auth/logout", middleware.AuthMiddleware(cfg.JWTSecret), h.logout)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Delegate route registration to specific handlers, passing required services
	registerUserRoutes(v1, services.UserSvc)
	registerAccountRoutes(v1, services.AccountSvc, services.TransactionSvc)
	registerCategoryRoutes(v1, services.CategorySvc, services.AllocationSvc)
	registerAllocationRoutes(v1, services.AllocationSvc, services.SplitSvc)
	registerTransactionRoutes(v1, services.TransactionSvc, services.SplitSvc)
	registerSplitRoutes(v1, services.SplitSvc)
	registerBudgetRoutes(v1, services.SnapshotSvc)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
