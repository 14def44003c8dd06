package cms

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ============================================
// QUERY ENCODING
// ============================================
// The CMS understands Strapi-style bracket notation:
//
//	populate=*                       population directive
//	sort=eventDate:asc               sort string
//	filters[isActive][$eq]=true      nested filter
//	pagination[pageSize]=10          page size
//
// Encoding MUST be deterministic: the same logical query always
// produces the same query string, because the encoded form doubles as
// the cache key for the stale-while-revalidate layer.

// Filters maps field name -> operator -> value, e.g.
// {"eventDate": {"$gte": t}}.
type Filters map[string]map[string]any

// Query captures the supported query parameters for a CMS request.
type Query struct {
	Populate []string // nil = no populate; ["*"] = populate everything
	Sort     []string // "field:asc" / "field:desc"
	Filters  Filters
	Page     int
	PageSize int
}

// Encode renders the query as a bracket-notation query string.
// url.Values sorts keys on encode, so the output is stable regardless
// of map iteration order.
func (q *Query) Encode() string {
	if q == nil {
		return ""
	}

	values := url.Values{}

	if len(q.Populate) > 0 {
		values.Set("populate", strings.Join(q.Populate, ","))
	}
	if len(q.Sort) > 0 {
		values.Set("sort", strings.Join(q.Sort, ","))
	}
	for field, ops := range q.Filters {
		for op, v := range ops {
			values.Set(fmt.Sprintf("filters[%s][%s]", field, op), formatValue(v))
		}
	}
	if q.Page > 0 {
		values.Set("pagination[page]", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		values.Set("pagination[pageSize]", strconv.Itoa(q.PageSize))
	}

	return values.Encode()
}

// CacheKey derives the cache key for a resource + query pair. Two
// logically equal queries yield the same key independent of how their
// maps were built.
func (q *Query) CacheKey(resource string) string {
	encoded := q.Encode()
	if encoded == "" {
		return resource
	}
	return resource + "?" + encoded
}

// formatValue normalizes filter values so that numerically equal
// params (5 vs 5.0) encode identically.
func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}
