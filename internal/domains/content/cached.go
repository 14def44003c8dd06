package content

import (
	"context"
	"strings"

	"school-site-backend/internal/cms"
	"school-site-backend/pkg/swr"
)

// ============================================
// CACHED QUERY LAYER
// ============================================
// Wraps every resource service call in the stale-while-revalidate
// store. Cache keys are the deterministic (resource, query) encoding,
// so two logically equal requests share one entry. The returned
// swr.Source lets handlers expose cache behavior (X-Cache header).

// CachedService is the read path the HTTP layer consumes.
type CachedService struct {
	svc   *Service
	store *swr.Store
}

// NewCachedService wraps a content service with the SWR store.
func NewCachedService(svc *Service, store *swr.Store) *CachedService {
	return &CachedService{svc: svc, store: store}
}

// get runs one cached lookup for an envelope-producing fetch.
func (cs *CachedService) get(ctx context.Context, resource, key string, fetch func(ctx context.Context) (*cms.Envelope, error)) (*cms.Envelope, swr.Source, error) {
	res := cs.store.Get(ctx, key, policyFor(resource), func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})

	env, _ := res.Value.(*cms.Envelope)
	return env, res.Source, res.Err
}

func (cs *CachedService) HeroBanners(ctx context.Context) (*cms.Envelope, swr.Source, error) {
	key := heroBannersQuery().CacheKey(ResourceHeroBanners)
	return cs.get(ctx, ResourceHeroBanners, key, cs.svc.HeroBanners)
}

func (cs *CachedService) About(ctx context.Context) (*cms.Envelope, swr.Source, error) {
	key := singleTypeQuery().CacheKey(ResourceAbout)
	return cs.get(ctx, ResourceAbout, key, cs.svc.About)
}

func (cs *CachedService) AcademicPrograms(ctx context.Context, limit int) (*cms.Envelope, swr.Source, error) {
	key := programsQuery(limit).CacheKey(ResourcePrograms)
	return cs.get(ctx, ResourcePrograms, key, func(ctx context.Context) (*cms.Envelope, error) {
		return cs.svc.AcademicPrograms(ctx, limit)
	})
}

func (cs *CachedService) Activities(ctx context.Context, limit int) (*cms.Envelope, swr.Source, error) {
	key := activitiesQuery(limit).CacheKey(ResourceActivities)
	return cs.get(ctx, ResourceActivities, key, func(ctx context.Context) (*cms.Envelope, error) {
		return cs.svc.Activities(ctx, limit)
	})
}

func (cs *CachedService) GalleryImages(ctx context.Context, category string) (*cms.Envelope, swr.Source, error) {
	key := galleryQuery(category).CacheKey(ResourceGallery)
	return cs.get(ctx, ResourceGallery, key, func(ctx context.Context) (*cms.Envelope, error) {
		return cs.svc.GalleryImages(ctx, category)
	})
}

func (cs *CachedService) NewsArticles(ctx context.Context, opts NewsOptions) (*cms.Envelope, swr.Source, error) {
	key := newsQuery(opts).CacheKey(ResourceNews)
	return cs.get(ctx, ResourceNews, key, func(ctx context.Context) (*cms.Envelope, error) {
		return cs.svc.NewsArticles(ctx, opts)
	})
}

func (cs *CachedService) Events(ctx context.Context, featured *bool) (*cms.Envelope, swr.Source, error) {
	key := eventsQuery(featured).CacheKey(ResourceEvents)
	return cs.get(ctx, ResourceEvents, key, func(ctx context.Context) (*cms.Envelope, error) {
		return cs.svc.Events(ctx, featured)
	})
}

// UpcomingEvents keys on (resource, limit) only: the eventDate cutoff
// is computed at fetch time, and baking it into the key would make
// every call a cache miss.
func (cs *CachedService) UpcomingEvents(ctx context.Context, limit int) (*cms.Envelope, swr.Source, error) {
	key := (&cms.Query{PageSize: limit}).CacheKey("upcoming-" + ResourceEvents)
	return cs.get(ctx, ResourceEvents, key, func(ctx context.Context) (*cms.Envelope, error) {
		return cs.svc.UpcomingEvents(ctx, limit)
	})
}

func (cs *CachedService) Testimonials(ctx context.Context) (*cms.Envelope, swr.Source, error) {
	key := testimonialsQuery().CacheKey(ResourceTestimonials)
	return cs.get(ctx, ResourceTestimonials, key, cs.svc.Testimonials)
}

func (cs *CachedService) FooterInfo(ctx context.Context) (*cms.Envelope, swr.Source, error) {
	key := singleTypeQuery().CacheKey(ResourceFooter)
	return cs.get(ctx, ResourceFooter, key, cs.svc.FooterInfo)
}

func (cs *CachedService) HeaderInfo(ctx context.Context) (*cms.Envelope, swr.Source, error) {
	key := singleTypeQuery().CacheKey(ResourceHeader)
	return cs.get(ctx, ResourceHeader, key, cs.svc.HeaderInfo)
}

// Search caches combined results under the search resource's short
// freshness window.
func (cs *CachedService) Search(ctx context.Context, query string, limit int) (*SearchResults, swr.Source, error) {
	// Reject before touching the cache so invalid queries never
	// occupy an entry.
	query = strings.TrimSpace(query)
	if len(query) <= 2 {
		return nil, swr.SourceMiss, ErrQueryTooShort
	}

	key := searchQuery(query, limit).CacheKey(ResourceSearch)
	res := cs.store.Get(ctx, key, policyFor(ResourceSearch), func(ctx context.Context) (any, error) {
		return cs.svc.Search(ctx, query, limit)
	})

	results, _ := res.Value.(*SearchResults)
	return results, res.Source, res.Err
}

// Refetch forces a bypass of the freshness check for a resource's
// default-parameter entry, replacing the cache entry on success.
func (cs *CachedService) Refetch(ctx context.Context, resource string) (*cms.Envelope, error) {
	var (
		key   string
		fetch func(ctx context.Context) (*cms.Envelope, error)
	)

	switch resource {
	case ResourceHeroBanners:
		key = heroBannersQuery().CacheKey(ResourceHeroBanners)
		fetch = cs.svc.HeroBanners
	case ResourceAbout:
		key = singleTypeQuery().CacheKey(ResourceAbout)
		fetch = cs.svc.About
	case ResourcePrograms:
		key = programsQuery(0).CacheKey(ResourcePrograms)
		fetch = func(ctx context.Context) (*cms.Envelope, error) { return cs.svc.AcademicPrograms(ctx, 0) }
	case ResourceActivities:
		key = activitiesQuery(0).CacheKey(ResourceActivities)
		fetch = func(ctx context.Context) (*cms.Envelope, error) { return cs.svc.Activities(ctx, 0) }
	case ResourceGallery:
		key = galleryQuery("").CacheKey(ResourceGallery)
		fetch = func(ctx context.Context) (*cms.Envelope, error) { return cs.svc.GalleryImages(ctx, "") }
	case ResourceNews:
		key = newsQuery(NewsOptions{}).CacheKey(ResourceNews)
		fetch = func(ctx context.Context) (*cms.Envelope, error) { return cs.svc.NewsArticles(ctx, NewsOptions{}) }
	case ResourceEvents:
		key = eventsQuery(nil).CacheKey(ResourceEvents)
		fetch = func(ctx context.Context) (*cms.Envelope, error) { return cs.svc.Events(ctx, nil) }
	case ResourceTestimonials:
		key = testimonialsQuery().CacheKey(ResourceTestimonials)
		fetch = cs.svc.Testimonials
	case ResourceFooter:
		key = singleTypeQuery().CacheKey(ResourceFooter)
		fetch = cs.svc.FooterInfo
	case ResourceHeader:
		key = singleTypeQuery().CacheKey(ResourceHeader)
		fetch = cs.svc.HeaderInfo
	default:
		return nil, ErrUnknownResource
	}

	value, err := cs.store.Refetch(ctx, key, policyFor(resource), func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return nil, err
	}
	env, _ := value.(*cms.Envelope)
	return env, nil
}
