package router

import (
	"devboard/internal/handlers"
	"devboard/internal/middleware"
	"devboard/internal/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, images *services.ImageStore) {
	authHandler := handlers.NewAuthHandler()
	userHandler := handlers.NewUserHandler()
	postHandler := handlers.NewPostHandler(images)
	commentHandler := handlers.NewCommentHandler()
	voteHandler := handlers.NewVoteHandler()
	uploadHandler := handlers.NewUploadHandler(images)

	api := r.Group("/api")

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/users/:username", userHandler.Profile)
	api.GET("/posts", postHandler.List)
	api.GET("/posts/:pid", postHandler.Detail)
	api.GET("/posts/:pid/views", postHandler.Views)
	api.GET("/comments", commentHandler.List)

	// Protected routes
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/auth/me", authHandler.Me)
		authorized.POST("/posts", postHandler.Create)
		authorized.PUT("/posts/:pid", postHandler.Update)
		authorized.DELETE("/posts/:pid", postHandler.Delete)
		authorized.POST("/posts/:pid/view", postHandler.RecordView)
		authorized.POST("/comments", commentHandler.Create)
		authorized.DELETE("/comments/:cid", commentHandler.Delete)
		authorized.POST("/votes", voteHandler.Cast)
		authorized.POST("/uploads", uploadHandler.Image)
	}
}
