package content

import (
	"context"
	"strings"
	"time"

	"school-site-backend/internal/cms"
)

// ============================================
// RESOURCE SERVICE
// ============================================
// One method per logical content resource, each a thin specialization
// of the CMS client with resource-appropriate defaults (sort, filters,
// population). No caching happens here - that is layered above - and
// errors propagate unmodified.

// Resource names double as cache-key prefixes, so they must stay
// stable across releases.
const (
	ResourceHeroBanners  = "hero-banners"
	ResourceAbout        = "about-section"
	ResourcePrograms     = "academic-programs"
	ResourceActivities   = "activities"
	ResourceGallery      = "gallery-images"
	ResourceNews         = "news-articles"
	ResourceEvents       = "events"
	ResourceTestimonials = "testimonials"
	ResourceFooter       = "footer-info"
	ResourceHeader       = "header-info"
	ResourceSearch       = "search"
)

// Service exposes the school's content resources.
type Service struct {
	client *cms.Client
	now    func() time.Time
}

// NewService creates a content service over a CMS client.
func NewService(client *cms.Client) *Service {
	return &Service{
		client: client,
		now:    time.Now,
	}
}

// NewsOptions narrows a news-articles listing.
type NewsOptions struct {
	Featured *bool
	Limit    int // page size; 0 = CMS default
}

// HeroBanners returns the active hero banners in display order.
func (s *Service) HeroBanners(ctx context.Context) (*cms.Envelope, error) {
	return s.client.Get(ctx, "/"+ResourceHeroBanners, heroBannersQuery())
}

// About returns the about-section single type.
func (s *Service) About(ctx context.Context) (*cms.Envelope, error) {
	return s.client.Get(ctx, "/"+ResourceAbout, singleTypeQuery())
}

// AcademicPrograms returns active programs, newest first.
func (s *Service) AcademicPrograms(ctx context.Context, limit int) (*cms.Envelope, error) {
	return s.client.Get(ctx, "/"+ResourcePrograms, programsQuery(limit))
}

// Activities returns active school activities, newest first.
func (s *Service) Activities(ctx context.Context, limit int) (*cms.Envelope, error) {
	return s.client.Get(ctx, "/"+ResourceActivities, activitiesQuery(limit))
}

// GalleryImages returns gallery images, optionally narrowed to a
// category.
func (s *Service) GalleryImages(ctx context.Context, category string) (*cms.Envelope, error) {
	return s.client.Get(ctx, "/"+ResourceGallery, galleryQuery(category))
}

// NewsArticles returns published news, newest first.
func (s *Service) NewsArticles(ctx context.Context, opts NewsOptions) (*cms.Envelope, error) {
	return s.client.Get(ctx, "/"+ResourceNews, newsQuery(opts))
}

// Events returns events ordered by event date ascending.
func (s *Service) Events(ctx context.Context, featured *bool) (*cms.Envelope, error) {
	return s.client.Get(ctx, "/"+ResourceEvents, eventsQuery(featured))
}

// UpcomingEvents returns events whose eventDate is in the future,
// soonest first. The cutoff is computed at call time.
func (s *Service) UpcomingEvents(ctx context.Context, limit int) (*cms.Envelope, error) {
	return s.client.Get(ctx, "/"+ResourceEvents, s.upcomingEventsQuery(limit))
}

// Testimonials returns active testimonials, newest first.
func (s *Service) Testimonials(ctx context.Context) (*cms.Envelope, error) {
	return s.client.Get(ctx, "/"+ResourceTestimonials, testimonialsQuery())
}

// FooterInfo returns the footer-info single type.
func (s *Service) FooterInfo(ctx context.Context) (*cms.Envelope, error) {
	return s.client.Get(ctx, "/"+ResourceFooter, singleTypeQuery())
}

// HeaderInfo returns the header-info single type.
func (s *Service) HeaderInfo(ctx context.Context) (*cms.Envelope, error) {
	return s.client.Get(ctx, "/"+ResourceHeader, singleTypeQuery())
}

// SubmitContact validates and forwards a contact form submission.
func (s *Service) SubmitContact(ctx context.Context, sub ContactSubmission) (*cms.Envelope, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	return s.client.Post(ctx, "/contact-submissions", map[string]any{"data": sub})
}

// SearchResults groups the per-resource hits of a free-text search.
type SearchResults struct {
	News   []cms.Entity `json:"news"`
	Events []cms.Entity `json:"events"`
}

// Search runs a free-text query across news articles and events.
// Queries of 2 characters or fewer are rejected.
func (s *Service) Search(ctx context.Context, query string, limit int) (*SearchResults, error) {
	query = strings.TrimSpace(query)
	if len(query) <= 2 {
		return nil, ErrQueryTooShort
	}

	newsEnv, err := s.client.Get(ctx, "/"+ResourceNews, searchQuery(query, limit))
	if err != nil {
		return nil, err
	}
	news, err := newsEnv.Entities()
	if err != nil {
		return nil, err
	}

	eventsEnv, err := s.client.Get(ctx, "/"+ResourceEvents, searchQuery(query, limit))
	if err != nil {
		return nil, err
	}
	events, err := eventsEnv.Entities()
	if err != nil {
		return nil, err
	}

	return &SearchResults{News: news, Events: events}, nil
}

// ============================================
// QUERY BUILDERS
// ============================================
// Kept in one place so the cached layer derives identical cache keys
// from the same builders.

func heroBannersQuery() *cms.Query {
	return &cms.Query{
		Populate: []string{"*"},
		Sort:     []string{"order:asc"},
		Filters:  cms.Filters{"isActive": {"$eq": true}},
	}
}

func singleTypeQuery() *cms.Query {
	return &cms.Query{Populate: []string{"*"}}
}

func programsQuery(limit int) *cms.Query {
	return &cms.Query{
		Populate: []string{"*"},
		Sort:     []string{"createdAt:desc"},
		Filters:  cms.Filters{"isActive": {"$eq": true}},
		PageSize: limit,
	}
}

func activitiesQuery(limit int) *cms.Query {
	return &cms.Query{
		Populate: []string{"*"},
		Sort:     []string{"createdAt:desc"},
		Filters:  cms.Filters{"isActive": {"$eq": true}},
		PageSize: limit,
	}
}

func galleryQuery(category string) *cms.Query {
	q := &cms.Query{
		Populate: []string{"*"},
		Sort:     []string{"createdAt:desc"},
	}
	if category != "" {
		q.Filters = cms.Filters{"category": {"$eq": category}}
	}
	return q
}

func newsQuery(opts NewsOptions) *cms.Query {
	q := &cms.Query{
		Populate: []string{"*"},
		Sort:     []string{"publishedAt:desc"},
		PageSize: opts.Limit,
	}
	if opts.Featured != nil {
		q.Filters = cms.Filters{"featured": {"$eq": *opts.Featured}}
	}
	return q
}

func eventsQuery(featured *bool) *cms.Query {
	q := &cms.Query{
		Populate: []string{"*"},
		Sort:     []string{"eventDate:asc"},
	}
	if featured != nil {
		q.Filters = cms.Filters{"featured": {"$eq": *featured}}
	}
	return q
}

func (s *Service) upcomingEventsQuery(limit int) *cms.Query {
	return &cms.Query{
		Populate: []string{"*"},
		Sort:     []string{"eventDate:asc"},
		Filters:  cms.Filters{"eventDate": {"$gte": s.now().UTC()}},
		PageSize: limit,
	}
}

func testimonialsQuery() *cms.Query {
	return &cms.Query{
		Populate: []string{"*"},
		Sort:     []string{"createdAt:desc"},
		Filters:  cms.Filters{"isActive": {"$eq": true}},
	}
}

func searchQuery(query string, limit int) *cms.Query {
	return &cms.Query{
		Sort:     []string{"publishedAt:desc"},
		Filters:  cms.Filters{"title": {"$containsi": query}},
		PageSize: limit,
	}
}
