package handler

import (
	"context"
	"net/http"

	"salon_backend/internal/scheduling/domain"
	"salon_backend/internal/scheduling/service"
	"salon_backend/internal/scheduling/transport"
	"salon_backend/platform/httpkit"
	"salon_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for appointments and availability.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new scheduling handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// mustGetActor builds the service actor from the authenticated identity.
// Aborts with an error response and returns false when the token carries
// no salon.
func mustGetActor(c *gin.Context) (service.Actor, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return service.Actor{}, false
	}

	tenantID := identity.TenantID()
	if tenantID == nil {
		httpkit.Error(c, http.StatusBadRequest, "salon ID is required", nil)
		return service.Actor{}, false
	}

	return service.Actor{
		UserID:     identity.UserID(),
		Role:       domain.Role(identity.Role()),
		SalonID:    *tenantID,
		EmployeeID: identity.EmployeeID(),
	}, true
}

// RegisterRoutes registers the appointment routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/today", h.Today)
	rg.GET("/upcoming", h.Upcoming)
	rg.GET("/stats", h.DayStats)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/confirm", h.Confirm)
	rg.POST("/:id/start", h.Start)
	rg.POST("/:id/complete", h.Complete)
	rg.POST("/:id/cancel", h.Cancel)
	rg.POST("/:id/no-show", h.MarkNoShow)
	rg.POST("/:id/reschedule", h.Reschedule)
	rg.POST("/:id/reassign", h.Reassign)

	rg.GET("/availability/check", h.CheckAvailability)
	rg.GET("/availability/slots", h.AvailableSlots)
	rg.GET("/availability/employees", h.AvailableEmployees)
}

// List handles GET /api/v1/appointments
func (h *Handler) List(c *gin.Context) {
	var req transport.ListAppointmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), actor, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Create handles POST /api/v1/appointments
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	result, err := h.svc.Create(c.Request.Context(), actor, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, result)
}

// Today handles GET /api/v1/appointments/today
func (h *Handler) Today(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	result, err := h.svc.Today(c.Request.Context(), actor)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Upcoming handles GET /api/v1/appointments/upcoming
func (h *Handler) Upcoming(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	result, err := h.svc.Upcoming(c.Request.Context(), actor)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// DayStats handles GET /api/v1/appointments/stats
func (h *Handler) DayStats(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	result, err := h.svc.DayStats(c.Request.Context(), actor, c.Query("date"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// GetByID handles GET /api/v1/appointments/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), actor, id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Update handles PUT /api/v1/appointments/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	result, err := h.svc.Update(c.Request.Context(), actor, id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Delete handles DELETE /api/v1/appointments/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), actor, id); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"message": "appointment deleted"})
}

// Confirm handles POST /api/v1/appointments/:id/confirm
func (h *Handler) Confirm(c *gin.Context) {
	h.transition(c, h.svc.Confirm)
}

// Start handles POST /api/v1/appointments/:id/start
func (h *Handler) Start(c *gin.Context) {
	h.transition(c, h.svc.Start)
}

// Complete handles POST /api/v1/appointments/:id/complete
func (h *Handler) Complete(c *gin.Context) {
	h.transition(c, h.svc.Complete)
}

// MarkNoShow handles POST /api/v1/appointments/:id/no-show
func (h *Handler) MarkNoShow(c *gin.Context) {
	h.transition(c, h.svc.MarkNoShow)
}

// transition shares the plumbing of the status endpoints without a body.
func (h *Handler) transition(c *gin.Context, fn func(ctx context.Context, actor service.Actor, id uuid.UUID) (*transport.AppointmentResponse, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	result, err := fn(c.Request.Context(), actor, id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Cancel handles POST /api/v1/appointments/:id/cancel
func (h *Handler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.CancelAppointmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	result, err := h.svc.Cancel(c.Request.Context(), actor, id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Reschedule handles POST /api/v1/appointments/:id/reschedule
func (h *Handler) Reschedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	result, err := h.svc.Reschedule(c.Request.Context(), actor, id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Reassign handles POST /api/v1/appointments/:id/reassign
func (h *Handler) Reassign(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.ReassignAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	result, err := h.svc.Reassign(c.Request.Context(), actor, id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// CheckAvailability handles GET /api/v1/appointments/availability/check
func (h *Handler) CheckAvailability(c *gin.Context) {
	var req transport.AvailabilityCheckRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	result, err := h.svc.CheckAvailability(c.Request.Context(), actor.SalonID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// AvailableSlots handles GET /api/v1/appointments/availability/slots
func (h *Handler) AvailableSlots(c *gin.Context) {
	var req transport.AvailableSlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	result, err := h.svc.AvailableSlots(c.Request.Context(), actor.SalonID, req, false)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// AvailableEmployees handles GET /api/v1/appointments/availability/employees
func (h *Handler) AvailableEmployees(c *gin.Context) {
	var req transport.AvailableEmployeesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	result, err := h.svc.AvailableEmployees(c.Request.Context(), actor.SalonID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}
