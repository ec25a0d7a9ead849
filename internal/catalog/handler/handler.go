package handler

import (
	"net/http"

	"salon_backend/internal/catalog/service"
	"salon_backend/internal/catalog/transport"
	"salon_backend/platform/httpkit"
	"salon_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for the service catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
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

// List handles GET /api/v1/services
func (h *Handler) List(c *gin.Context) {
	salonID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	activeOnly := c.Query("active") == "true"
	result, err := h.svc.List(c.Request.Context(), salonID, activeOnly)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// GetByID handles GET /api/v1/services/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	salonID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), salonID, id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Create handles POST /api/v1/admin/services
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	salonID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	result, err := h.svc.Create(c.Request.Context(), salonID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, result)
}

// Update handles PUT /api/v1/admin/services/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	salonID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	result, err := h.svc.Update(c.Request.Context(), salonID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Deactivate handles DELETE /api/v1/admin/services/:id
func (h *Handler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	salonID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	if err := h.svc.Deactivate(c.Request.Context(), salonID, id); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"message": "service deactivated"})
}

// ListPublic handles GET /api/v1/public/salons/:salonId/services
func (h *Handler) ListPublic(c *gin.Context) {
	salonID, err := uuid.Parse(c.Param("salonId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid salon ID", nil)
		return
	}

	result, err := h.svc.ListPublic(c.Request.Context(), salonID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}
