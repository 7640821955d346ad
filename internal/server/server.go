package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sparkbytes/backend/config"
	"github.com/sparkbytes/backend/internal/handlers"
	"github.com/sparkbytes/backend/internal/middleware"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	authCfg, err := config.LoadAuthConfig()
	if err != nil {
		return fmt.Errorf("failed to load auth config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	r := gin.Default()

	SetupRoutes(r, db, authCfg)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, authCfg *config.AuthConfig) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.AuthConfigMiddleware(authCfg))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		public.GET("/tags", handlers.ListTags)

		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", handlers.ListEvents)
			eventPublic.GET("/:id", handlers.GetEvent)
			eventPublic.GET("/:id/reviews", handlers.ListEventReviews)
		}
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware(authCfg))
	{
		eventProtected := protected.Group("/events")
		{
			eventProtected.POST("", handlers.CreateEvent)
			eventProtected.PUT("/:id", handlers.UpdateEvent)
			eventProtected.DELETE("/:id", handlers.DeleteEvent)
			eventProtected.GET("/:id/rsvps", handlers.ListEventRSVPs)
		}

		userViews := protected.Group("/users/:id")
		{
			userViews.GET("/events", handlers.ListUserEvents)
			userViews.GET("/rsvps", handlers.ListUserRSVPs)
			userViews.GET("/favorites", handlers.ListUserFavorites)
		}

		protected.POST("/rsvps", handlers.CreateRSVP)
		protected.POST("/favorites", handlers.CreateFavorite)
		protected.POST("/reviews", handlers.CreateReview)

		profile := protected.Group("/profile")
		{
			profile.GET("", handlers.GetProfile)
			profile.PUT("", handlers.UpdateProfile)
			profile.GET("/status", handlers.ProfileStatus)
		}
	}
}
