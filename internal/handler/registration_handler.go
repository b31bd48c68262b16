package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sportactiv/sportactiv/internal/dto"
	"github.com/sportactiv/sportactiv/internal/service"
	"github.com/sportactiv/sportactiv/pkg/response"
)

// RegistrationHandler handles registration HTTP requests
type RegistrationHandler struct {
	registrationService service.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(registrationService service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// Register handles registering the caller for an activity
// POST /api/registrations
func (h *RegistrationHandler) Register(c *gin.Context) {
	userID, _, ok := actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	var req dto.CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.registrationService.Register(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrActivityNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Activity not found"))
		case errors.Is(err, service.ErrCapacityExceeded):
			c.JSON(http.StatusBadRequest, response.CapacityExceeded(""))
		case errors.Is(err, service.ErrActivityNotOpen):
			c.JSON(http.StatusBadRequest, response.InvalidState("Activity is not open for registration"))
		case errors.Is(err, service.ErrAlreadyRegistered):
			c.JSON(http.StatusConflict, response.AlreadyRegistered(""))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}

// GetByID handles retrieving a registration by ID
// GET /api/registrations/:id
func (h *RegistrationHandler) GetByID(c *gin.Context) {
	userID, role, ok := actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.registrationService.GetByID(c.Request.Context(), userID, role, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Registration not found"))
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, response.Forbidden(""))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// ListMine handles retrieving the caller's own registrations
// GET /api/registrations/user
func (h *RegistrationHandler) ListMine(c *gin.Context) {
	userID, _, ok := actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	var query dto.ListRegistrationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.registrationService.ListForUser(c.Request.Context(), userID, &query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// ListForActivity handles retrieving registrations for an activity
// GET /api/registrations/activity/:activityId
func (h *RegistrationHandler) ListForActivity(c *gin.Context) {
	userID, role, ok := actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	activityID, ok := pathID(c, "activityId")
	if !ok {
		return
	}

	var query dto.ListRegistrationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.registrationService.ListForActivity(c.Request.Context(), userID, role, activityID, &query)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrActivityNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Activity not found"))
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, response.Forbidden(""))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// ListAdmin handles retrieving registrations across all activities
// GET /api/registrations/admin
func (h *RegistrationHandler) ListAdmin(c *gin.Context) {
	var query dto.ListRegistrationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.registrationService.ListAll(c.Request.Context(), &query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Update handles registration status, attendance, and payment updates
// PUT /api/registrations/:id
func (h *RegistrationHandler) Update(c *gin.Context) {
	userID, role, ok := actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.registrationService.Update(c.Request.Context(), userID, role, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Registration not found"))
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, response.Forbidden(""))
		default:
			c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// UpdatePayment handles updating only a registration's payment status
// PUT /api/registrations/:id/payment
func (h *RegistrationHandler) UpdatePayment(c *gin.Context) {
	userID, role, ok := actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.registrationService.UpdatePayment(c.Request.Context(), userID, role, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Registration not found"))
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, response.Forbidden(""))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Delete handles registration deletion
// DELETE /api/registrations/:id
func (h *RegistrationHandler) Delete(c *gin.Context) {
	userID, role, ok := actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.registrationService.Delete(c.Request.Context(), userID, role, id); err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Registration not found"))
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, response.Forbidden(""))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Registration deleted successfully"}))
}
