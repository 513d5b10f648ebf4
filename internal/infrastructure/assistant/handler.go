package assistant

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"atelier-backend/internal/shared/response"
)

type SummarizeReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (r SummarizeReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required.Error("content is required")),
	)
}

type InspireReq struct {
	Topic string `json:"topic"`
}

func (r InspireReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Topic, validation.Required.Error("topic is required")),
	)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Summarize handles POST /assistant/summarize.
func (h *Handler) Summarize(c *gin.Context) {
	var req SummarizeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	summary := h.service.Summarize(c.Request.Context(), req.Title, req.Content)
	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}

// Inspire handles POST /assistant/inspire.
func (h *Handler) Inspire(c *gin.Context) {
	var req InspireReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	prompts := h.service.Inspire(c.Request.Context(), req.Topic)
	response.Success(c, http.StatusOK, gin.H{"prompts": prompts})
}
