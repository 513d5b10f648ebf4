package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"atelier-backend/internal/domains/entry"
	"atelier-backend/internal/shared/middleware"
	"atelier-backend/internal/shared/response"
)

type Handler struct {
	service entry.Service
}

func NewHandler(service entry.Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /entries. Published entries only, unless an authenticated
// caller asks for drafts with ?all=true.
func (h *Handler) List(c *gin.Context) {
	includeDrafts := c.Query("all") == "true"
	if includeDrafts && !middleware.IsAuthenticated(c) {
		response.Unauthorized(c, "drafts require authentication")
		return
	}

	entries, err := h.service.List(c.Request.Context(), includeDrafts)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, entries)
}

// Get handles GET /entries/{idOrSlug}. UUIDs resolve by id, anything else by
// slug, so both editor reloads and public permalinks work.
func (h *Handler) Get(c *gin.Context) {
	key := c.Param("id")

	var (
		resp *entry.EntryResp
		err  error
	)
	if _, parseErr := uuid.Parse(key); parseErr == nil {
		resp, err = h.service.GetByID(c.Request.Context(), key)
	} else {
		resp, err = h.service.GetBySlug(c.Request.Context(), key)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// Create handles POST /entries.
func (h *Handler) Create(c *gin.Context) {
	var req entry.CreateEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp)
}

// Update handles PUT /entries/{id}.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		h.respondError(c, entry.ErrInvalidEntryID)
		return
	}

	var req entry.UpdateEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// Delete handles DELETE /entries/{id}.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		h.respondError(c, entry.ErrInvalidEntryID)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Like handles POST /entries/{id}/like. Public, no auth.
func (h *Handler) Like(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		h.respondError(c, entry.ErrInvalidEntryID)
		return
	}

	resp, err := h.service.Like(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	response.ErrorResponse(c, entry.GetHTTPStatusCode(err), entry.GetErrorCode(err), err.Error())
}
