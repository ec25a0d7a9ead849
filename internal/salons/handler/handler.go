package handler

import (
	"net/http"

	"salon_backend/internal/salons/service"
	"salon_backend/internal/salons/transport"
	"salon_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgInvalidRequest = "invalid request"

// Handler handles HTTP requests for the salon profile and opening hours.
type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func mustGetTenantID(c *gin.Context) (uuid.UUID, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return uuid.UUID{}, false
	}
	tenantID := identity.TenantID()
	if tenantID == nil {
		httpkit.Error(c, http.StatusBadRequest, "salon ID is required", nil)
		return uuid.UUID{}, false
	}
	return *tenantID, true
}

// Get handles GET /api/v1/salon
func (h *Handler) Get(c *gin.Context) {
	salonID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	result, err := h.svc.Get(c.Request.Context(), salonID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Update handles PUT /api/v1/admin/salon
func (h *Handler) Update(c *gin.Context) {
	salonID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	var req transport.UpdateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.Update(c.Request.Context(), salonID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// GetOpeningHours handles GET /api/v1/salon/opening-hours
func (h *Handler) GetOpeningHours(c *gin.Context) {
	salonID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	result, err := h.svc.GetOpeningHours(c.Request.Context(), salonID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// UpdateOpeningHours handles PUT /api/v1/admin/salon/opening-hours
func (h *Handler) UpdateOpeningHours(c *gin.Context) {
	salonID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	var req transport.UpdateOpeningHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.UpdateOpeningHours(c.Request.Context(), salonID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}
