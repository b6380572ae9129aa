package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"donkinwatch/internal/tracker"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"
)

type NewsService interface {
	Feed() tracker.Feed
	Open(ctx context.Context, id int64) (tracker.NewsView, error)
	MarkSeen(ctx context.Context, id int64) int
	Search(query string) tracker.SearchView
	Refresh(ctx context.Context) (*tracker.RefreshResult, error)
	RefreshIfStale(ctx context.Context) (*tracker.RefreshResult, error)
	ClearArchive(ctx context.Context)
}

type NewsHandler struct {
	service NewsService
}

func NewNewsHandler(service NewsService) *NewsHandler {
	return &NewsHandler{service: service}
}

func toNewsItemResponse(v tracker.NewsView) NewsItemResponse {
	sources := make([]SourceResponse, len(v.Sources))
	for i, s := range v.Sources {
		sources[i] = SourceResponse{Name: s.Name, URL: s.URL}
	}

	return NewsItemResponse{
		ID:          v.ID,
		Title:       v.Title,
		Summary:     v.Summary,
		Content:     v.Content,
		Category:    v.Category,
		Timestamp:   v.Timestamp,
		PublishedAt: v.Time().Format(time.RFC3339),
		Sources:     sources,
		IsNew:       v.IsNew,
	}
}

func toNewsItemResponses(views []tracker.NewsView) []NewsItemResponse {
	res := make([]NewsItemResponse, len(views))
	for i, v := range views {
		res[i] = toNewsItemResponse(v)
	}
	return res
}

func (h *NewsHandler) GetNews(c *gin.Context) {
	feed := h.service.Feed()

	c.JSON(http.StatusOK, FeedResponse{
		Items:  toNewsItemResponses(feed.Items),
		Total:  feed.Total,
		Unseen: feed.Unseen,
	})
}

func (h *NewsHandler) GetNewsItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.service.Open(c.Request.Context(), id)
	if errors.Is(err, tracker.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "News item not found"})
		return
	}
	if err != nil {
		slog.Error("error opening news item", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, toNewsItemResponse(item))
}

func (h *NewsHandler) MarkSeen(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	unseen := h.service.MarkSeen(c.Request.Context(), id)
	c.JSON(http.StatusOK, SeenResponse{ID: id, Unseen: unseen})
}

func (h *NewsHandler) SearchNews(c *gin.Context) {
	view := h.service.Search(c.Query("q"))

	res := NewsSearchResponse{
		Query:  view.Query,
		Prompt: view.Prompt,
		Items:  toNewsItemResponses(view.Items),
	}

	switch {
	case view.Prompt:
		res.Message = "Start typing to search"
	case view.Empty():
		res.Message = "No results found"
	}

	c.JSON(http.StatusOK, res)
}

// Refresh runs a search now. With ifStale=true it only runs when the last
// refresh is old enough, which is what the app does when it regains focus.
func (h *NewsHandler) Refresh(c *gin.Context) {
	var (
		result *tracker.RefreshResult
		err    error
	)

	if ifStale, _ := strconv.ParseBool(c.Query("ifStale")); ifStale {
		result, err = h.service.RefreshIfStale(c.Request.Context())
	} else {
		result, err = h.service.Refresh(c.Request.Context())
	}

	if errors.Is(err, tracker.ErrRefreshInProgress) {
		c.JSON(http.StatusConflict, gin.H{"error": "Refresh already in progress"})
		return
	}
	if err != nil {
		slog.Error("error refreshing news", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh news"})
		return
	}

	if result == nil {
		c.JSON(http.StatusOK, RefreshResponse{Refreshed: false})
		return
	}

	c.JSON(http.StatusOK, RefreshResponse{
		Refreshed: true,
		Added:     result.Added,
		Results:   result.Results,
		Failures:  result.Failures,
		Timestamp: formatTimestamp(result.Refreshed),
	})
}

func (h *NewsHandler) ClearArchive(c *gin.Context) {
	h.service.ClearArchive(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Archive cleared"})
}

func (h *NewsHandler) GetFeedRSS(c *gin.Context) {
	items := h.service.Feed().Items

	feed := &feeds.Feed{
		Title:       "Donkin Mine News",
		Link:        &feeds.Link{Href: requestBaseURL(c)},
		Description: "News about the ownership of the Donkin coal mine",
		Created:     time.Now(),
	}

	for _, v := range items {
		link := ""
		if len(v.Sources) > 0 {
			link = v.Sources[0].URL
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          strconv.FormatInt(v.ID, 10),
			Title:       v.Title,
			Link:        &feeds.Link{Href: link},
			Description: v.Summary,
			Content:     v.Content,
			Created:     v.Time(),
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		slog.Error("error rendering rss feed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

func requestBaseURL(c *gin.Context) string {
	scheme := c.GetHeader("X-Forwarded-Proto")
	if scheme == "" {
		scheme = "https"
	}
	host := c.GetHeader("X-Forwarded-Host")
	if host == "" {
		host = c.Request.Host
	}
	return scheme + "://" + host
}
