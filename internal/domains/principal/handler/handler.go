package handler

import (
	"errors"
	"net/http"
	"strconv"

	"school-site-backend/internal/domains/principal"
	"school-site-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// PrincipalHandler exposes CRUD over the in-memory principal message
// store.
type PrincipalHandler struct {
	svc *principal.Service
}

func NewPrincipalHandler(svc *principal.Service) *PrincipalHandler {
	return &PrincipalHandler{svc: svc}
}

// Current handles GET /principal-message. An empty store is a 200 with
// null data so the frontend can render a fallback without treating it
// as an error.
func (h *PrincipalHandler) Current(c *gin.Context) {
	msg, err := h.svc.Current(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to load principal message")
		return
	}
	response.Success(c, http.StatusOK, msg)
}

// List handles GET /principal-message/all
func (h *PrincipalHandler) List(c *gin.Context) {
	msgs, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to list principal messages")
		return
	}
	response.Success(c, http.StatusOK, msgs)
}

// Create handles POST /principal-message
func (h *PrincipalHandler) Create(c *gin.Context) {
	var req principal.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	msg, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writePrincipalError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, msg)
}

// Update handles PUT /principal-message/:id
func (h *PrincipalHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req principal.UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	msg, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writePrincipalError(c, err)
		return
	}
	response.Success(c, http.StatusOK, msg)
}

// Delete handles DELETE /principal-message/:id
func (h *PrincipalHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writePrincipalError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func writePrincipalError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ValidationFailed(c, "Principal message is invalid", verrs)
	case errors.Is(err, principal.ErrNotFound):
		response.NotFound(c, "Principal message not found")
	default:
		response.InternalServerError(c, "Principal message operation failed")
	}
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid principal message id")
		return 0, false
	}
	return id, true
}
