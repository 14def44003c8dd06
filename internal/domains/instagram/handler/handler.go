package handler

import (
	"errors"
	"net/http"

	"school-site-backend/internal/domains/instagram"
	"school-site-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// InstagramHandler exposes the proxied feed.
type InstagramHandler struct {
	svc *instagram.Service
}

func NewInstagramHandler(svc *instagram.Service) *InstagramHandler {
	return &InstagramHandler{svc: svc}
}

// Feed handles GET /instagram. The upstream payload is relayed
// verbatim, so consumers see exactly what the Graph API returned.
func (h *InstagramHandler) Feed(c *gin.Context) {
	feed, err := h.svc.Feed(c.Request.Context())
	if err != nil {
		var upstream *instagram.UpstreamError
		switch {
		case errors.Is(err, instagram.ErrNotConfigured):
			response.InternalServerError(c, "Instagram integration is not configured")
		case errors.As(err, &upstream):
			response.BadGateway(c, "Instagram upstream request failed", upstream.Detail)
		default:
			response.InternalServerError(c, "Failed to load Instagram feed")
		}
		return
	}

	if feed.FromCache {
		c.Header("X-Cache", "hit")
	} else {
		c.Header("X-Cache", "miss")
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", feed.Payload)
}
