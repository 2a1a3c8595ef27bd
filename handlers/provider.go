package handlers

import (
	"errors"
	"net/http"
	"time"

	providerRepo "medibook/database/repository/provider"
	"medibook/middleware"
	"medibook/models"
	"medibook/services/provider"
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// ProviderHandler exposes provider profile and calendar management.
type ProviderHandler struct {
	Service provider.ProviderService
}

func NewProviderHandler(svc provider.ProviderService) *ProviderHandler {
	return &ProviderHandler{Service: svc}
}

// GetProviderByID returns a provider's public profile.
func (h *ProviderHandler) GetProviderByID(c *gin.Context) {
	profile, err := h.Service.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "provider not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load provider", err.Error())
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SetupAvailability replaces the calling provider's weekly windows.
func (h *ProviderHandler) SetupAvailability(c *gin.Context) {
	var req models.SetupAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	providerID := c.GetString(middleware.ContextActorID)

	updated, err := h.Service.SetupAvailability(c.Request.Context(), providerID, req.Availability, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, provider.ErrInvalidAvailability):
			utils.JSONError(c, http.StatusBadRequest, "invalid availability", err.Error())
		case errors.Is(err, providerRepo.ErrNotFound):
			utils.JSONError(c, http.StatusNotFound, "provider not found", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to update availability", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Availability updated successfully",
		"availability": updated.Availability,
	})
}
