package router

import (
	"net/http"
	"storyhive/internal/handlers"
	"storyhive/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the full API surface. Rate limits are tiered per
// route group: public reads 60/min, auth attempts 5/min, authenticated
// reads 120/min, content writes 30/min, social actions 60/min.
func RegisterRoutes(r *gin.Engine) {
	authHandler := handlers.NewAuthHandler()
	storyHandler := handlers.NewStoryHandler()
	commentHandler := handlers.NewCommentHandler()
	likeHandler := handlers.NewLikeHandler()
	followerHandler := handlers.NewFollowerHandler()
	notificationHandler := handlers.NewNotificationHandler()
	adminHandler := handlers.NewAdminHandler()

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "ok"})
	})

	public := api.Group("", middleware.RateLimit(60))
	{
		public.GET("/stories", storyHandler.List)
		public.GET("/stories/:id", storyHandler.Detail)
		public.GET("/stories/:id/comments", commentHandler.List)
		public.GET("/users/:id/followers", followerHandler.Followers)
		public.GET("/users/:id/following", followerHandler.Following)
		public.GET("/users/:id/follow-counts", followerHandler.Counts)
		public.GET("/users/:id/follow-status", followerHandler.Status)
	}

	auth := api.Group("/auth", middleware.RateLimit(5))
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	authed := api.Group("", middleware.AuthRequired())
	{
		reads := authed.Group("", middleware.RateLimit(120))
		{
			reads.POST("/auth/logout", authHandler.Logout)
			reads.GET("/auth/me", authHandler.Me)
			reads.GET("/notifications", notificationHandler.List)
			reads.GET("/notifications/unread-count", notificationHandler.UnreadCount)
			reads.PUT("/notifications/:id/read", notificationHandler.Read)
			reads.POST("/notifications/read-all", notificationHandler.ReadAll)
			reads.DELETE("/notifications/:id", notificationHandler.Delete)
		}

		content := authed.Group("", middleware.RateLimit(30))
		{
			content.POST("/stories", storyHandler.Create)
			content.PUT("/stories/:id", storyHandler.Update)
			content.DELETE("/stories/:id", storyHandler.Delete)
			content.POST("/stories/:id/comments", commentHandler.Create)
			content.POST("/stories/:id/comments/:commentID/reply", commentHandler.Reply)
		}

		social := authed.Group("", middleware.RateLimit(60))
		{
			social.POST("/stories/:id/likes/toggle", likeHandler.Toggle)
			social.POST("/users/:id/follow", followerHandler.Follow)
			social.DELETE("/users/:id/follow", followerHandler.Unfollow)
		}

		admin := authed.Group("/admin", middleware.RoleRequired("admin"))
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/users/:id", adminHandler.ShowUser)
			admin.PATCH("/users/:id/role", adminHandler.UpdateRole)
			admin.POST("/users/:id/suspend", adminHandler.ToggleSuspend)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)

			admin.GET("/stories/trashed", adminHandler.TrashedStories)
			admin.POST("/stories/:id/restore", adminHandler.RestoreStory)
			admin.DELETE("/stories/:id/force-delete", adminHandler.ForceDeleteStory)
		}

		moderation := authed.Group("/admin/stories", middleware.RoleRequired("admin", "moderator"))
		{
			moderation.GET("", adminHandler.ListStories)
			moderation.GET("/:id", adminHandler.ShowStory)
			moderation.PATCH("/:id/status", adminHandler.UpdateStoryStatus)
			moderation.DELETE("/:id", adminHandler.DeleteStory)
		}
	}
}
