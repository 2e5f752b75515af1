package routes

import (
	"github.com/gin-gonic/gin"

	"eventgallery/auth"
	"eventgallery/comments"
	"eventgallery/events"
	"eventgallery/gallery"
	"eventgallery/images"
	"eventgallery/search"
)

func SetupAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", auth.HandleLogin)
			authGroup.POST("/register", auth.HandleRegister)
			authGroup.POST("/logout", auth.Middleware(), auth.HandleLogout)
			authGroup.GET("/me", auth.Middleware(), auth.HandleMe)
			authGroup.GET("/validate-session", auth.Middleware(), auth.HandleValidateSession)
		}

		galleryGroup := api.Group("/gallery")
		{
			galleryGroup.GET("/featured", gallery.HandleFeatured)
			galleryGroup.GET("/recent", gallery.HandleRecent)
			galleryGroup.GET("/popular", gallery.HandlePopular)
			galleryGroup.GET("/stats", gallery.HandleStats)
		}

		eventGroup := api.Group("/events")
		{
			eventGroup.GET("", auth.OptionalMiddleware(), events.HandleList)
			eventGroup.POST("", auth.Middleware(), events.HandleCreate)
			eventGroup.POST("/join-by-code", auth.Middleware(), events.HandleJoinByCode)
			eventGroup.GET("/:id", auth.OptionalMiddleware(), events.HandleGet)
			eventGroup.PATCH("/:id", auth.Middleware(), events.HandleUpdate)
			eventGroup.DELETE("/:id", auth.Middleware(), events.HandleDelete)
			eventGroup.POST("/:id/join", auth.Middleware(), events.HandleJoin)
			eventGroup.DELETE("/:id/leave", auth.Middleware(), events.HandleLeave)
			eventGroup.GET("/:id/participants", auth.OptionalMiddleware(), events.HandleParticipants)
			eventGroup.GET("/:id/statistics", auth.OptionalMiddleware(), events.HandleStatistics)
		}

		imageGroup := api.Group("/images")
		{
			imageGroup.GET("", auth.OptionalMiddleware(), images.HandleList)
			imageGroup.POST("", auth.Middleware(), images.HandleUpload)
			imageGroup.GET("/:id", auth.OptionalMiddleware(), images.HandleGet)
			imageGroup.PATCH("/:id", auth.Middleware(), images.HandleUpdate)
			imageGroup.DELETE("/:id", auth.Middleware(), images.HandleDelete)
			imageGroup.POST("/:id/like", auth.Middleware(), images.HandleLike)
			imageGroup.DELETE("/:id/unlike", auth.Middleware(), images.HandleUnlike)
		}

		commentGroup := api.Group("/comments")
		{
			commentGroup.POST("", auth.Middleware(), comments.HandleCreate)
			commentGroup.PATCH("/:id", auth.Middleware(), comments.HandleUpdate)
			commentGroup.DELETE("/:id", auth.Middleware(), comments.HandleDelete)
		}

		api.GET("/search", auth.OptionalMiddleware(), search.HandleSearch)
	}
}
