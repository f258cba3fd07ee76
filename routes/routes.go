package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"socialfeed/handlers"
	"socialfeed/middleware"
	"socialfeed/services"
)

// SetupRouter wires the HTTP surface: public auth and feed reads,
// token-guarded writes.
func SetupRouter(identity *services.Identity, auth *handlers.Auth, posts *handlers.Posts, corsOrigins []string) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "Social Feed API running 🚀",
			"service": "healthy",
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	requireAuth := middleware.Auth(identity)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", auth.Register)
		authGroup.POST("/login", auth.Login)
		authGroup.GET("/me", requireAuth, auth.Me)
	}

	postGroup := router.Group("/posts")
	{
		// Feed reads are public; everything that mutates or targets a
		// single post requires a token.
		postGroup.GET("", posts.List)
		postGroup.POST("", requireAuth, posts.Create)
		postGroup.GET("/:id", requireAuth, posts.Get)
		postGroup.PUT("/:id/like", requireAuth, posts.Like)
		postGroup.POST("/:id/comment", requireAuth, posts.Comment)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"message": "Endpoint not found"})
	})

	return router
}
