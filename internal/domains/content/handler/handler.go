package handler

import (
	"errors"
	"net/http"
	"strconv"

	"school-site-backend/internal/cms"
	"school-site-backend/internal/domains/content"
	"school-site-backend/internal/shared/response"
	"school-site-backend/pkg/swr"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ContentHandler serves the cached CMS content to HTTP consumers.
type ContentHandler struct {
	cached   *content.CachedService
	svc      *content.Service
	resolver *cms.Resolver
}

// NewContentHandler creates a new content handler.
func NewContentHandler(cached *content.CachedService, svc *content.Service, resolver *cms.Resolver) *ContentHandler {
	return &ContentHandler{cached: cached, svc: svc, resolver: resolver}
}

// respond writes a cached envelope result. A stale value with a refetch
// error still renders 200: the last-known-good data stays visible and
// the error is non-blocking.
func respond(c *gin.Context, env *cms.Envelope, source swr.Source, err error) {
	c.Header("X-Cache", source.String())

	if env != nil {
		response.Success(c, http.StatusOK, env)
		return
	}
	writeContentError(c, err)
}

func writeContentError(c *gin.Context, err error) {
	var remote *cms.RemoteError
	switch {
	case errors.As(err, &remote):
		response.BadGateway(c, "Content service returned an error", remote.Error())
	case cms.IsNetworkError(err):
		response.ServiceUnavailable(c, "Content service is unreachable, check connectivity")
	default:
		response.InternalServerError(c, "Failed to load content")
	}
}

// HeroBanners handles GET /content/hero-banners
func (h *ContentHandler) HeroBanners(c *gin.Context) {
	env, source, err := h.cached.HeroBanners(c.Request.Context())
	respond(c, env, source, err)
}

// About handles GET /content/about
func (h *ContentHandler) About(c *gin.Context) {
	env, source, err := h.cached.About(c.Request.Context())
	respond(c, env, source, err)
}

// AcademicPrograms handles GET /content/programs
func (h *ContentHandler) AcademicPrograms(c *gin.Context) {
	env, source, err := h.cached.AcademicPrograms(c.Request.Context(), queryInt(c, "limit"))
	respond(c, env, source, err)
}

// Activities handles GET /content/activities
func (h *ContentHandler) Activities(c *gin.Context) {
	env, source, err := h.cached.Activities(c.Request.Context(), queryInt(c, "limit"))
	respond(c, env, source, err)
}

// GalleryImages handles GET /content/gallery
func (h *ContentHandler) GalleryImages(c *gin.Context) {
	env, source, err := h.cached.GalleryImages(c.Request.Context(), c.Query("category"))
	respond(c, env, source, err)
}

// NewsArticles handles GET /content/news
func (h *ContentHandler) NewsArticles(c *gin.Context) {
	opts := content.NewsOptions{
		Featured: queryBool(c, "featured"),
		Limit:    queryInt(c, "limit"),
	}
	env, source, err := h.cached.NewsArticles(c.Request.Context(), opts)
	respond(c, env, source, err)
}

// Events handles GET /content/events
func (h *ContentHandler) Events(c *gin.Context) {
	env, source, err := h.cached.Events(c.Request.Context(), queryBool(c, "featured"))
	respond(c, env, source, err)
}

// UpcomingEvents handles GET /content/upcoming-events
func (h *ContentHandler) UpcomingEvents(c *gin.Context) {
	limit := queryInt(c, "limit")
	if limit <= 0 {
		limit = 5
	}
	env, source, err := h.cached.UpcomingEvents(c.Request.Context(), limit)
	respond(c, env, source, err)
}

// Testimonials handles GET /content/testimonials
func (h *ContentHandler) Testimonials(c *gin.Context) {
	env, source, err := h.cached.Testimonials(c.Request.Context())
	respond(c, env, source, err)
}

// FooterInfo handles GET /content/footer
func (h *ContentHandler) FooterInfo(c *gin.Context) {
	env, source, err := h.cached.FooterInfo(c.Request.Context())
	respond(c, env, source, err)
}

// HeaderInfo handles GET /content/header
func (h *ContentHandler) HeaderInfo(c *gin.Context) {
	env, source, err := h.cached.HeaderInfo(c.Request.Context())
	respond(c, env, source, err)
}

// Search handles GET /content/search?q=...
func (h *ContentHandler) Search(c *gin.Context) {
	query := c.Query("q")

	results, source, err := h.cached.Search(c.Request.Context(), query, queryInt(c, "limit"))
	c.Header("X-Cache", source.String())

	if results != nil {
		response.Success(c, http.StatusOK, results)
		return
	}
	if errors.Is(err, content.ErrQueryTooShort) {
		response.BadRequest(c, err.Error())
		return
	}
	writeContentError(c, err)
}

// SubmitContact handles POST /contact
func (h *ContentHandler) SubmitContact(c *gin.Context) {
	var sub content.ContactSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	env, err := h.svc.SubmitContact(c.Request.Context(), sub)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			response.ValidationFailed(c, "Contact submission is invalid", verrs)
			return
		}
		writeContentError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, env)
}

// Revalidate handles POST /content/revalidate
func (h *ContentHandler) Revalidate(c *gin.Context) {
	var req struct {
		Resource string `json:"resource"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Resource == "" {
		response.BadRequest(c, "Body must name a resource to revalidate")
		return
	}

	env, err := h.cached.Refetch(c.Request.Context(), req.Resource)
	if err != nil {
		if errors.Is(err, content.ErrUnknownResource) {
			response.NotFound(c, "Unknown content resource: "+req.Resource)
			return
		}
		writeContentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, env)
}

// MediaURL handles GET /content/media-url?src=...&width=&height=
// Resolution is total: an unresolvable reference yields an empty url,
// never an error.
func (h *ContentHandler) MediaURL(c *gin.Context) {
	url := h.resolver.ResolveSized(c.Query("src"), queryInt(c, "width"), queryInt(c, "height"))
	response.Success(c, http.StatusOK, gin.H{"url": url})
}

func queryInt(c *gin.Context, name string) int {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func queryBool(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
