package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"atelier-backend/internal/shared/response"
	"atelier-backend/pkg/jwt"
	"atelier-backend/pkg/logger"
)

// LoginReq is the request body for POST /auth/login.
type LoginReq struct {
	Secret string `json:"secret"`
}

func (r LoginReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Secret, validation.Required.Error("secret is required")),
	)
}

// LoginResp carries the session token.
type LoginResp struct {
	Token string `json:"token"`
}

type Handler struct {
	verifier *Verifier
	tokens   *jwt.Manager
}

func NewHandler(verifier *Verifier, tokens *jwt.Manager) *Handler {
	return &Handler{verifier: verifier, tokens: tokens}
}

// Login handles POST /auth/login: exchange the author secret for a session
// token.
func (h *Handler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if !h.verifier.Verify(req.Secret) {
		logger.Warn("login rejected", map[string]interface{}{"ip": c.ClientIP()})
		response.Unauthorized(c, "invalid secret")
		return
	}

	token, err := h.tokens.GenerateSessionToken()
	if err != nil {
		response.InternalServerError(c, "could not issue session token")
		return
	}
	response.Success(c, http.StatusOK, LoginResp{Token: token})
}
