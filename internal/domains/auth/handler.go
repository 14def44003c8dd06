package auth

import (
	"net/http"

	"school-site-backend/internal/config"
	"school-site-backend/internal/shared/response"
	"school-site-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"golang.org/x/crypto/bcrypt"
)

// LoginRequest is the POST /auth/login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// Handler issues admin tokens. There is a single admin identity taken
// from configuration; there is no user table.
type Handler struct {
	cfg     config.AdminConfig
	manager *jwt.Manager
}

// NewHandler creates the auth handler. manager may be nil when admin
// auth is disabled.
func NewHandler(cfg config.AdminConfig, manager *jwt.Manager) *Handler {
	return &Handler{cfg: cfg, manager: manager}
}

// Login handles POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	if h.manager == nil {
		response.InternalServerError(c, "Admin authentication is not configured")
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		if verrs, ok := err.(validation.Errors); ok {
			response.ValidationFailed(c, "Login request is invalid", verrs)
			return
		}
		response.BadRequest(c, "Login request is invalid")
		return
	}

	// Same response for wrong email and wrong password.
	if req.Email != h.cfg.Email ||
		bcrypt.CompareHashAndPassword([]byte(h.cfg.PasswordHash), []byte(req.Password)) != nil {
		response.Unauthorized(c, "Invalid email or password")
		return
	}

	token, err := h.manager.GenerateToken(req.Email)
	if err != nil {
		response.InternalServerError(c, "Failed to issue token")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": token,
		"email": req.Email,
	})
}
