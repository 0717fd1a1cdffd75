package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	appsvc "kpione/internal/app"
	"kpione/internal/bootstrap"
	"kpione/internal/repository"
	"kpione/internal/transport/http/handler"
	"kpione/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     app.Config.OriginList(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	userRepo := repository.NewUserRepository(app.DB)
	postRepo := repository.NewPostRepository(app.DB)
	voteRepo := repository.NewVoteRepository(app.DB)

	authService := appsvc.NewAuthService(userRepo, app.Tokens)
	postService := appsvc.NewPostService(postRepo)
	voteService := appsvc.NewVoteService(voteRepo, postRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	postHandler := handler.NewPostHandler(postService)
	voteHandler := handler.NewVoteHandler(voteService)
	healthHandler := handler.NewHealthHandler(app)

	requireAuth := middleware.Auth(app.Tokens, userRepo)

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"Hello": "Welcome to KPI One"})
	})
	router.GET("/healthz", healthHandler.Check)

	auth := router.Group("/auth")
	auth.POST("/login", authHandler.Login)

	users := router.Group("/users")
	users.POST("", userHandler.Register)
	users.GET("/:id", requireAuth, userHandler.Get)

	posts := router.Group("/posts")
	posts.GET("", postHandler.List)
	posts.GET("/:id", postHandler.Get)
	posts.POST("", requireAuth, postHandler.Create)
	posts.PUT("/:id", requireAuth, postHandler.Update)
	posts.DELETE("/:id", requireAuth, postHandler.Delete)

	votes := router.Group("/votes")
	votes.POST("", requireAuth, voteHandler.Create)

	return router
}
