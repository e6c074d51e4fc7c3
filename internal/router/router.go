package router

import (
	"github.com/gin-gonic/gin"

	"github.com/dealerlist/dealerlist-backend/config"
	"github.com/dealerlist/dealerlist-backend/internal/app/controller"
	"github.com/dealerlist/dealerlist-backend/internal/middleware"
)

type Router struct {
	dealerController       *controller.DealerController
	importController       *controller.ImportController
	verificationController *controller.VerificationController
	config                 *config.Config
}

func NewRouter(
	dealerController *controller.DealerController,
	importController *controller.ImportController,
	verificationController *controller.VerificationController,
	cfg *config.Config,
) *Router {
	return &Router{
		dealerController:       dealerController,
		importController:       importController,
		verificationController: verificationController,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "DealerList API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		dealers := v1.Group("/dealers")
		{
			dealers.GET("", r.dealerController.ListDealers)
			dealers.GET("/export", r.dealerController.ExportDealers)
			dealers.GET("/summary", r.dealerController.GetSummary)
			dealers.GET("/:id", r.dealerController.GetDealerByID)
			dealers.POST("", r.dealerController.CreateDealer)
			dealers.POST("/import", r.importController.ImportDealers)
			dealers.PUT("/:id", r.dealerController.UpdateDealer)
			dealers.DELETE("/:id", r.dealerController.DeleteDealer)
		}

		verification := v1.Group("/verification")
		{
			verification.GET("/pending", r.verificationController.PendingVerification)
			verification.POST("/:id", r.verificationController.Verify)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
