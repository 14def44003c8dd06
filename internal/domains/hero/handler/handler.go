package handler

import (
	"errors"
	"net/http"
	"strconv"

	"school-site-backend/internal/domains/hero"
	"school-site-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// HeroHandler exposes CRUD over the in-memory hero image store.
type HeroHandler struct {
	svc *hero.Service
}

func NewHeroHandler(svc *hero.Service) *HeroHandler {
	return &HeroHandler{svc: svc}
}

// List handles GET /hero-images
func (h *HeroHandler) List(c *gin.Context) {
	images, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to list hero images")
		return
	}
	response.Success(c, http.StatusOK, images)
}

// Get handles GET /hero-images/:id
func (h *HeroHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	img, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeHeroError(c, err)
		return
	}
	response.Success(c, http.StatusOK, img)
}

// Create handles POST /hero-images
func (h *HeroHandler) Create(c *gin.Context) {
	var req hero.CreateHeroImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	img, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeHeroError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, img)
}

// Update handles PUT /hero-images/:id
func (h *HeroHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req hero.UpdateHeroImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	img, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeHeroError(c, err)
		return
	}
	response.Success(c, http.StatusOK, img)
}

// Delete handles DELETE /hero-images/:id
func (h *HeroHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeHeroError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func writeHeroError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ValidationFailed(c, "Hero image is invalid", verrs)
	case errors.Is(err, hero.ErrNotFound):
		response.NotFound(c, "Hero image not found")
	default:
		response.InternalServerError(c, "Hero image operation failed")
	}
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid hero image id")
		return 0, false
	}
	return id, true
}
