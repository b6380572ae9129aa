package handler

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"donkinwatch/internal/model"
	"donkinwatch/internal/tracker"
	"donkinwatch/internal/trigger"

	"github.com/gin-gonic/gin"
)

const dailyCheckSummaryLen = 200

type TriggerService interface {
	Run(ctx context.Context) (*trigger.Report, error)
}

type TriggerHandler struct {
	service TriggerService
	secret  string
}

func NewTriggerHandler(service TriggerService, secret string) *TriggerHandler {
	return &TriggerHandler{service: service, secret: secret}
}

// Cron is the authenticated trigger. The request is rejected before any
// search when the bearer token does not match.
func (h *TriggerHandler) Cron(c *gin.Context) {
	if !h.authorized(c.GetHeader("Authorization")) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, err := h.service.Run(c.Request.Context())
	if errors.Is(err, trigger.ErrRunInProgress) {
		c.JSON(http.StatusConflict, gin.H{"error": "Run already in progress"})
		return
	}
	if err != nil {
		slog.Error("cron job error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cron job failed"})
		return
	}

	c.JSON(http.StatusOK, CronResponse{
		Success:    true,
		HasUpdates: report.HasUpdates,
		Timestamp:  formatTimestamp(report.Timestamp),
	})
}

// DailyCheck is the platform cron trigger and carries no auth.
func (h *TriggerHandler) DailyCheck(c *gin.Context) {
	slog.Info("daily check triggered")

	report, err := h.service.Run(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, trigger.ErrRunInProgress) {
			status = http.StatusConflict
		}
		slog.Error("daily check error", "error", err)
		c.JSON(status, FailureResponse{
			Error:     "Daily check failed",
			Message:   err.Error(),
			Timestamp: formatTimestamp(time.Now()),
		})
		return
	}

	results := make([]DailyCheckResult, len(report.Updates))
	for i, r := range report.Updates {
		results[i] = DailyCheckResult{
			SearchTerm: r.SearchTerm,
			Summary:    tracker.Truncate(r.Summary, dailyCheckSummaryLen),
		}
	}

	c.JSON(http.StatusOK, DailyCheckResponse{
		Success:    true,
		HasUpdates: report.HasUpdates,
		NewsCount:  report.NewsCount,
		Timestamp:  formatTimestamp(report.Timestamp),
		Results:    results,
	})
}

func (h *TriggerHandler) authorized(header string) bool {
	if h.secret == "" {
		return false
	}
	expected := "Bearer " + h.secret
	return subtle.ConstantTimeCompare([]byte(header), []byte(expected)) == 1
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(model.TimestampLayout)
}
