package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sportactiv/sportactiv/internal/dto"
	"github.com/sportactiv/sportactiv/internal/service"
	"github.com/sportactiv/sportactiv/pkg/middleware"
	"github.com/sportactiv/sportactiv/pkg/response"
)

// ActivityHandler handles activity management HTTP requests
type ActivityHandler struct {
	activityService service.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// actor extracts the caller's identity and role from the request context
func actor(c *gin.Context) (string, string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return "", "", false
	}
	role, ok := middleware.GetRole(c)
	if !ok {
		return "", "", false
	}
	return userID, role, true
}

// pathID returns the named path parameter, rejecting values that are not
// well-formed UUIDs before they reach the database
func pathID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, response.InvalidID(""))
		return "", false
	}
	return id, true
}

// Create handles activity creation
// POST /api/activities
func (h *ActivityHandler) Create(c *gin.Context) {
	userID, _, ok := actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	var req dto.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.activityService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Category not found"))
			return
		}
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}

// GetByID handles retrieving an activity by ID
// GET /api/activities/:id
func (h *ActivityHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.activityService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Activity not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// List handles retrieving activities with pagination and filters
// GET /api/activities
func (h *ActivityHandler) List(c *gin.Context) {
	var query dto.ListActivitiesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.activityService.List(c.Request.Context(), &query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Update handles activity update
// PUT /api/activities/:id
func (h *ActivityHandler) Update(c *gin.Context) {
	userID, role, ok := actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.activityService.Update(c.Request.Context(), userID, role, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrActivityNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Activity not found"))
		case errors.Is(err, service.ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Category not found"))
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, response.Forbidden(""))
		default:
			c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// UpdateStatus handles changing only an activity's status
// PATCH /api/activities/:id/status
func (h *ActivityHandler) UpdateStatus(c *gin.Context) {
	userID, role, ok := actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateActivityStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.activityService.UpdateStatus(c.Request.Context(), userID, role, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrActivityNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Activity not found"))
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, response.Forbidden(""))
		default:
			c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Delete handles activity deletion along with its registrations and comments
// DELETE /api/activities/:id
func (h *ActivityHandler) Delete(c *gin.Context) {
	userID, role, ok := actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.activityService.Delete(c.Request.Context(), userID, role, id); err != nil {
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

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Activity deleted successfully"}))
}
