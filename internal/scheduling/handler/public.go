package handler

import (
	"net/http"

	"salon_backend/internal/scheduling/service"
	"salon_backend/internal/scheduling/transport"
	"salon_backend/platform/httpkit"
	"salon_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PublicHandler serves the unauthenticated booking page endpoints. Every
// route is scoped by the salon ID in the path and rate limited per IP.
type PublicHandler struct {
	svc *service.Service
	val *validator.Validator
}

// NewPublic creates the public booking handler.
func NewPublic(svc *service.Service, val *validator.Validator) *PublicHandler {
	return &PublicHandler{svc: svc, val: val}
}

// RegisterRoutes registers the public booking routes.
func (h *PublicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/clients/check", h.CheckClient)
	rg.GET("/slots", h.AvailableSlots)
	rg.GET("/employees", h.AvailableEmployees)
	rg.POST("/bookings", h.Book)
}

func salonIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("salonId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid salon ID", nil)
		return uuid.UUID{}, false
	}
	return id, true
}

// CheckClient handles POST /api/v1/public/salons/:salonId/clients/check
func (h *PublicHandler) CheckClient(c *gin.Context) {
	salonID, ok := salonIDParam(c)
	if !ok {
		return
	}

	var req transport.PublicClientCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.PublicCheckClient(c.Request.Context(), salonID, req.Phone)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// AvailableSlots handles GET /api/v1/public/salons/:salonId/slots.
// Past start times on the current date are filtered out for visitors.
func (h *PublicHandler) AvailableSlots(c *gin.Context) {
	salonID, ok := salonIDParam(c)
	if !ok {
		return
	}

	var req transport.AvailableSlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	result, err := h.svc.AvailableSlots(c.Request.Context(), salonID, req, true)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// AvailableEmployees handles GET /api/v1/public/salons/:salonId/employees
func (h *PublicHandler) AvailableEmployees(c *gin.Context) {
	salonID, ok := salonIDParam(c)
	if !ok {
		return
	}

	var req transport.AvailableEmployeesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	result, err := h.svc.AvailableEmployees(c.Request.Context(), salonID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Book handles POST /api/v1/public/salons/:salonId/bookings
func (h *PublicHandler) Book(c *gin.Context) {
	salonID, ok := salonIDParam(c)
	if !ok {
		return
	}

	var req transport.PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.PublicBook(c.Request.Context(), salonID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, result)
}
