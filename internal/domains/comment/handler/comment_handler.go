package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"atelier-backend/internal/domains/comment"
	"atelier-backend/internal/shared/response"
)

type Handler struct {
	service comment.Service
}

func NewHandler(service comment.Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /entries/{id}/comments.
func (h *Handler) List(c *gin.Context) {
	entryID := c.Param("id")
	if _, err := uuid.Parse(entryID); err != nil {
		response.BadRequest(c, "invalid entry id")
		return
	}

	comments, err := h.service.ListByEntry(c.Request.Context(), entryID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, comments)
}

// Add handles POST /entries/{id}/comments. Public, no auth.
func (h *Handler) Add(c *gin.Context) {
	entryID := c.Param("id")
	if _, err := uuid.Parse(entryID); err != nil {
		response.BadRequest(c, "invalid entry id")
		return
	}

	var req comment.AddCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Add(c.Request.Context(), entryID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp)
}

// Like handles POST /comments/{id}/like.
func (h *Handler) Like(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	likes, err := h.service.Like(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"likes": likes})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	response.ErrorResponse(c, comment.GetHTTPStatusCode(err), comment.GetErrorCode(err), err.Error())
}
