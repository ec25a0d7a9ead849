package handler

import (
	"net/http"

	"salon_backend/internal/employees/service"
	"salon_backend/internal/employees/transport"
	"salon_backend/platform/httpkit"
	"salon_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for staff management.
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

func idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return uuid.UUID{}, false
	}
	return id, true
}

// List handles GET /api/v1/employees
func (h *Handler) List(c *gin.Context) {
	salonID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), salonID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// GetByID handles GET /api/v1/employees/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
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

// Create handles POST /api/v1/admin/employees
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateEmployeeRequest
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

// Update handles PUT /api/v1/admin/employees/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req transport.UpdateEmployeeRequest
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

// Delete handles DELETE /api/v1/admin/employees/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	salonID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), salonID, id); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"message": "employee deleted"})
}

// GetPermissions handles GET /api/v1/admin/employees/:id/permissions
func (h *Handler) GetPermissions(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	salonID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	result, err := h.svc.GetPermissions(c.Request.Context(), salonID, id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// SetPermissions handles PUT /api/v1/admin/employees/:id/permissions
func (h *Handler) SetPermissions(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req transport.PermissionOverridesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	salonID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	result, err := h.svc.SetPermissions(c.Request.Context(), salonID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// ResetPermissions handles DELETE /api/v1/admin/employees/:id/permissions
func (h *Handler) ResetPermissions(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	salonID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	if err := h.svc.ResetPermissions(c.Request.Context(), salonID, id); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"message": "permissions reset to role defaults"})
}
