package router

import (
	"github.com/gin-gonic/gin"
	swaggoFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "taxmitra/docs"
	"taxmitra/internal/domain"
	"taxmitra/internal/handler"
	"taxmitra/internal/middleware"
	"taxmitra/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	taxH *handler.TaxHandler,
	documentH *handler.DocumentHandler,
	updateH *handler.UpdateHandler,
	chatH *handler.ChatHandler,
	exportH *handler.ExportHandler,
	healthH *handler.HealthHandler,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggoFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Public tax routes - stateless calculations need no account
	tax := v1.Group("/tax")
	tax.POST("/compare", taxH.Compare)
	tax.POST("/suggest", taxH.Suggest)
	tax.POST("/reconcile", taxH.Reconcile)
	tax.GET("/schedules", taxH.ListYears)
	tax.GET("/schedules/:year/:regime", taxH.GetSchedule)

	// Public regulatory updates feed
	updates := v1.Group("/updates")
	updates.GET("", updateH.ListPublished)
	updates.GET("/:id", updateH.Get)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Calculations persisted against the caller's account
	ptax := protected.Group("/tax")
	ptax.POST("/calculate", taxH.Calculate)
	ptax.GET("/history", taxH.History)
	ptax.GET("/history/:year", taxH.GetCalculation)
	ptax.DELETE("/history/:year", taxH.DeleteCalculation)

	// Document routes
	documents := protected.Group("/documents")
	documents.POST("", documentH.Upload)
	documents.GET("", documentH.List)
	documents.GET("/:id", documentH.Get)
	documents.GET("/:id/download", documentH.DownloadURL)
	documents.DELETE("/:id", documentH.Delete)

	// Advisor chat routes
	chat := protected.Group("/chat")
	chat.POST("/sessions", chatH.CreateSession)
	chat.GET("/sessions", chatH.ListSessions)
	chat.GET("/sessions/:id", chatH.GetSession)
	chat.DELETE("/sessions/:id", chatH.DeleteSession)
	chat.POST("/sessions/:id/messages", chatH.SendMessage)

	// Export routes
	export := protected.Group("/export")
	export.GET("/history.csv", exportH.HistoryCSV)
	export.GET("/report/:year", exportH.ReportXLSX)

	// Admin routes - regulatory update management
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authSvc))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/updates", updateH.ListDrafts)
	admin.POST("/updates", updateH.Create)
	admin.PUT("/updates/:id", updateH.Edit)
	admin.POST("/updates/:id/publish", updateH.Publish)
	admin.DELETE("/updates/:id", updateH.Delete)

	return r
}
