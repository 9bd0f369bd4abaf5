package routes

import (
	"net/http"
	"time"

	"fixly/handlers"
	"fixly/middleware"
	"fixly/models"
	"fixly/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account registration and login endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)

		// Protected routes (Require Authentication)
		api.DELETE("/revoke", middleware.JWTAuthMiddleware(hb.AccountRepo, false), hb.Auth.RevokeHandler)
	}
}

// RegisterAccessRoutes registers the navigation guard endpoint. Optional
// authentication: anonymous callers are routed to the landing screen.
func RegisterAccessRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/access")
	{
		api.POST("/route", middleware.JWTAuthMiddleware(hb.AccountRepo, true), hb.Access.RouteHandler)
	}
}

// RegisterJobRoutes sets up the job lifecycle endpoints.
func RegisterJobRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/jobs")
	api.Use(middleware.JWTAuthMiddleware(hb.AccountRepo, false))
	{
		// Shared by all authenticated principals; party checks happen in the
		// services.
		api.GET("", hb.Jobs.ListJobsHandler)
		api.GET("/:id", hb.Jobs.GetJobHandler)
		api.GET("/:id/cancel", hb.Cancel.PreviewCancellationHandler)
		api.POST("/:id/cancel", hb.Cancel.ConfirmCancellationHandler)

		// Customer-only.
		customer := api.Group("")
		customer.Use(middleware.RequireRole(models.RoleCustomer))
		customer.POST("", hb.Jobs.CreateJobHandler)

		// Professional-only.
		professional := api.Group("")
		professional.Use(middleware.RequireRole(models.RoleProfessional))
		professional.GET("/open", hb.Jobs.ListOpenJobsHandler)
		professional.POST("/:id/accept", hb.Jobs.AcceptJobHandler)
		professional.POST("/:id/start", hb.Jobs.StartJobHandler)
		professional.POST("/:id/complete", hb.Jobs.CompleteJobHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AdminAuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
		adminGroup.GET("/accounts", hb.Admin.GetAllAccountsHandler)
		adminGroup.GET("/jobs", hb.Admin.GetAllJobsHandler)
		adminGroup.GET("/review-queue", hb.Admin.GetReviewQueueHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterAccessRoutes(r, hb)
	RegisterJobRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
