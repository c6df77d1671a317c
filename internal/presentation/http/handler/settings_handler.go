package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/veloclub/clubhouse-api/internal/application/service"
	"github.com/veloclub/clubhouse-api/internal/presentation/http/dto/request"
	"github.com/veloclub/clubhouse-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles application settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// List handles listing all settings
func (h *SettingsHandler) List(c *gin.Context) {
	settings, err := h.settingsService.ListSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// Get handles retrieving a single setting
func (h *SettingsHandler) Get(c *gin.Context) {
	setting, err := h.settingsService.GetSetting(c.Request.Context(), c.Param("key"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Setting retrieved successfully", setting)
}

// Set handles upserting a setting value
func (h *SettingsHandler) Set(c *gin.Context) {
	var req request.SetSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	setting, err := h.settingsService.SetSetting(c.Request.Context(), c.Param("key"), req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Setting saved successfully", setting)
}

// Delete handles removing a setting
func (h *SettingsHandler) Delete(c *gin.Context) {
	if err := h.settingsService.DeleteSetting(c.Request.Context(), c.Param("key")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Setting deleted successfully", nil)
}

// SetPin handles updating the shared cashier PIN. Only the bcrypt hash is
// stored; the PIN never comes back out.
func (h *SettingsHandler) SetPin(c *gin.Context) {
	var req request.SetPinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.settingsService.SetCashierPin(c.Request.Context(), req.Pin); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cashier PIN updated successfully", nil)
}
