package handler

import (
	"net/http"

	"salon_backend/internal/payments/service"
	"salon_backend/internal/payments/transport"
	"salon_backend/platform/httpkit"
	"salon_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for payments.
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

// Record handles POST /api/v1/payments
func (h *Handler) Record(c *gin.Context) {
	var req transport.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	salonID, ok := mustGetTenantID(c)
	if !ok {
		return
	}
	userID := httpkit.MustGetIdentity(c).UserID()

	result, err := h.svc.Record(c.Request.Context(), salonID, &userID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, result)
}

// ListByAppointment handles GET /api/v1/payments/appointment/:id
func (h *Handler) ListByAppointment(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid appointment ID", nil)
		return
	}

	salonID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	result, err := h.svc.ListByAppointment(c.Request.Context(), salonID, appointmentID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// DaySummary handles GET /api/v1/payments/day?date=YYYY-MM-DD
func (h *Handler) DaySummary(c *gin.Context) {
	salonID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httpkit.Error(c, http.StatusBadRequest, "date query parameter is required", nil)
		return
	}

	result, err := h.svc.DaySummary(c.Request.Context(), salonID, date)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}
