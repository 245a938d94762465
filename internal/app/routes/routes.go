package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/edutube/internal/app/controllers"
	"github.com/yigit/edutube/internal/middleware"
)

// APIPrefix is the path every JSON endpoint is mounted under
const APIPrefix = "/api"

// Controllers groups the handlers SetupRouter mounts
type Controllers struct {
	System *controllers.SystemController
	Auth   *controllers.AuthController
	Video  *controllers.VideoController
	Note   *controllers.NoteController
	Quiz   *controllers.QuizController
	Admin  *controllers.AdminController
}

// SetupRouter configures all application routes. Role checks happen in the
// services, so every authenticated route shares one middleware chain.
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group(APIPrefix)

	// --- Public routes ---
	api.GET("/", c.System.Root)
	api.GET("/health", c.System.Health)

	auth := api.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
	}

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.GET("/auth/me", c.Auth.Me)

	videos := authenticated.Group("/videos")
	{
		videos.GET("", c.Video.ListVideos)
		videos.POST("", c.Video.UploadVideo)
		videos.GET("/:id", c.Video.GetVideo)
	}

	notes := authenticated.Group("/notes")
	{
		notes.GET("", c.Note.ListNotes)
		notes.POST("", c.Note.UploadNote)
		notes.GET("/:id", c.Note.GetNote)
	}

	quizzes := authenticated.Group("/quizzes")
	{
		quizzes.GET("", c.Quiz.ListQuizzes)
		quizzes.POST("", c.Quiz.CreateQuiz)
		quizzes.GET("/:id", c.Quiz.GetQuiz)
	}

	admin := authenticated.Group("/admin")
	{
		admin.GET("/users", c.Admin.ListUsers)
		admin.GET("/users/export", c.Admin.ExportUsers)
		admin.PATCH("/users/:id/status", c.Admin.UpdateUserStatus)
	}
}
