package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sportactiv/sportactiv/internal/dto"
	"github.com/sportactiv/sportactiv/internal/service"
	"github.com/sportactiv/sportactiv/pkg/response"
)

// CommentHandler handles activity comment HTTP requests
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create handles adding a comment to an activity
// POST /api/activities/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	userID, _, ok := actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	activityID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.commentService.Create(c.Request.Context(), userID, activityID, &req)
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Activity not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}

// ListByActivity handles retrieving an activity's comments
// GET /api/activities/:id/comments
func (h *CommentHandler) ListByActivity(c *gin.Context) {
	activityID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var query dto.ListCommentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	comments, totalCount, totalPages, err := h.commentService.ListByActivity(c.Request.Context(), activityID, &query)
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Activity not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{
		"comments":    comments,
		"total_count": totalCount,
		"page":        query.Page,
		"limit":       query.Limit,
		"total_pages": totalPages,
	}))
}

// ListAdmin handles retrieving comments across all activities
// GET /api/comments/admin
func (h *CommentHandler) ListAdmin(c *gin.Context) {
	var query dto.ListCommentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	comments, totalCount, totalPages, err := h.commentService.ListAll(c.Request.Context(), &query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{
		"comments":    comments,
		"total_count": totalCount,
		"page":        query.Page,
		"limit":       query.Limit,
		"total_pages": totalPages,
	}))
}

// Update handles editing a comment
// PUT /api/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	userID, role, ok := actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.commentService.Update(c.Request.Context(), userID, role, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Comment not found"))
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, response.Forbidden(""))
		default:
			c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Delete handles comment deletion
// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, role, ok := actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), userID, role, id); err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Comment not found"))
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, response.Forbidden(""))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Comment deleted successfully"}))
}
