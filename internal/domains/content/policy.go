package content

import (
	"time"

	"school-site-backend/pkg/swr"
)

// ============================================
// FRESHNESS POLICY
// ============================================
// Per-resource freshness windows reflecting update cadence: news,
// events and search change often; footer/header/about almost never.
// This is configuration, not a derived value - adjust per resource.

var freshnessPolicy = map[string]swr.Options{
	ResourceNews:         {TTL: 3 * time.Minute, Retries: 2},
	ResourceEvents:       {TTL: 5 * time.Minute, Retries: 2},
	ResourceSearch:       {TTL: 2 * time.Minute, Retries: 1},
	ResourceHeroBanners:  {TTL: 10 * time.Minute, Retries: 2},
	ResourcePrograms:     {TTL: 10 * time.Minute, Retries: 2},
	ResourceActivities:   {TTL: 10 * time.Minute, Retries: 2},
	ResourceGallery:      {TTL: 10 * time.Minute, Retries: 2},
	ResourceTestimonials: {TTL: 10 * time.Minute, Retries: 2},
	ResourceAbout:        {TTL: 30 * time.Minute, Retries: 2},
	ResourceFooter:       {TTL: 30 * time.Minute, Retries: 2},
	ResourceHeader:       {TTL: 30 * time.Minute, Retries: 2},
}

func policyFor(resource string) swr.Options {
	if opts, ok := freshnessPolicy[resource]; ok {
		return opts
	}
	return swr.Options{TTL: 10 * time.Minute, Retries: 2}
}
