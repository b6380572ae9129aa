package handler

import (
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Search   *SearchHandler
	Trigger  *TriggerHandler
	News     *NewsHandler
	Settings *SettingsHandler
	Health   *HealthHandler
}

// Register mounts every route on r.
func Register(r *gin.Engine, h Handlers) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(MethodNotAllowed)

	r.GET("/health", h.Health.GetHealth)

	api := r.Group("/api")
	api.POST("/search", h.Search.Search)

	api.GET("/cron", h.Trigger.Cron)
	api.POST("/cron", h.Trigger.Cron)
	api.GET("/daily-check", h.Trigger.DailyCheck)
	api.POST("/daily-check", h.Trigger.DailyCheck)

	api.GET("/news", h.News.GetNews)
	api.DELETE("/news", h.News.ClearArchive)
	api.GET("/news/search", h.News.SearchNews)
	api.GET("/news/feed.rss", h.News.GetFeedRSS)
	api.POST("/news/refresh", h.News.Refresh)
	api.GET("/news/:id", h.News.GetNewsItem)
	api.POST("/news/:id/seen", h.News.MarkSeen)

	api.GET("/settings", h.Settings.GetSettings)
	api.PUT("/settings", h.Settings.UpdateSettings)
}
