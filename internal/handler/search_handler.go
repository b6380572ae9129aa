package handler

import (
	"log/slog"
	"net/http"

	"donkinwatch/internal/model"
	"donkinwatch/internal/pipeline"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	runner     pipeline.Runner
	configured bool
}

// NewSearchHandler serves POST /api/search. configured is false when no
// search API key is set.
func NewSearchHandler(runner pipeline.Runner, configured bool) *SearchHandler {
	return &SearchHandler{runner: runner, configured: configured}
}

func (h *SearchHandler) Search(c *gin.Context) {
	if !h.configured {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API key not configured"})
		return
	}

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "searchTerms must be a list of strings"})
		return
	}

	outcome, err := h.runner.Run(c.Request.Context(), req.SearchTerms)
	if err != nil {
		slog.Error("search error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	results := outcome.Results
	if results == nil {
		results = []model.SearchResult{}
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
}
