package handler

import (
	"context"
	"errors"
	"net/http"

	"donkinwatch/internal/model"

	"github.com/gin-gonic/gin"
)

type SettingsService interface {
	Settings() model.Settings
	SaveSettings(ctx context.Context, s model.Settings) error
}

type SettingsHandler struct {
	service SettingsService
}

func NewSettingsHandler(service SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

func toSettingsPayload(s model.Settings) SettingsPayload {
	return SettingsPayload{
		Email:             s.Email,
		Frequency:         string(s.Frequency),
		Theme:             string(s.Theme),
		PushNotifications: s.PushNotifications,
	}
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, toSettingsPayload(h.service.Settings()))
}

// UpdateSettings replaces the whole settings record.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req SettingsPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings payload"})
		return
	}

	settings := model.Settings{
		Email:             req.Email,
		Frequency:         model.Frequency(req.Frequency),
		Theme:             model.Theme(req.Theme),
		PushNotifications: req.PushNotifications,
	}

	err := h.service.SaveSettings(c.Request.Context(), settings)
	switch {
	case errors.Is(err, model.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid email address"})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toSettingsPayload(settings))
}
