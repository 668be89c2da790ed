package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Durganjali-sidda/CBTS/internal/handlers"
	"github.com/Durganjali-sidda/CBTS/internal/middleware"
	"github.com/Durganjali-sidda/CBTS/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		api.POST("/token", handlers.Login)
		api.POST("/token/refresh", handlers.RefreshToken)
		api.POST("/password-reset", handlers.PasswordReset)

		auth := api.Group("/auth", middleware.AuthMiddleware())
		{
			auth.GET("/user", handlers.Me)
		}

		bugs := api.Group("/bugs", middleware.AuthMiddleware())
		{
			bugs.GET("", handlers.ListBugs)
			bugs.POST("", handlers.CreateBug)
			bugs.GET("/:id", handlers.GetBug)
			bugs.PUT("/:id", handlers.UpdateBug)
			bugs.PATCH("/:id", handlers.UpdateBug)
			bugs.DELETE("/:id", handlers.DeleteBug)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.GET("", handlers.ListProjects)
			projects.POST("", handlers.CreateProject)
			projects.GET("/:id", handlers.GetProject)
			projects.PUT("/:id", handlers.UpdateProject)
			projects.PATCH("/:id", handlers.UpdateProject)
			projects.DELETE("/:id", handlers.DeleteProject)
		}

		teams := api.Group("/teams", middleware.AuthMiddleware())
		{
			teams.GET("", handlers.ListTeams)
			teams.POST("", handlers.CreateTeam)
			teams.GET("/:id", handlers.GetTeam)
			teams.PUT("/:id", handlers.UpdateTeam)
			teams.PATCH("/:id", handlers.UpdateTeam)
			teams.DELETE("/:id", handlers.DeleteTeam)
		}

		users := api.Group("/users", middleware.AuthMiddleware())
		{
			users.GET("", handlers.ListUsers)
			users.POST("", handlers.CreateUser)
			users.GET("/:id", handlers.GetUser)
			users.PUT("/:id", handlers.UpdateUser)
			users.PATCH("/:id", handlers.UpdateUser)
			users.DELETE("/:id", handlers.DeleteUser)
			users.GET("/:id/bugs", handlers.ListUserBugs)
		}
	}

	return r
}
