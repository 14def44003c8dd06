package cms

import (
	"fmt"
	"strings"
)

// ============================================
// MEDIA URL RESOLVER
// ============================================
// CMS media references arrive in three shapes depending on population
// depth:
//
//	"uploads/banner.jpg"                       plain path/URL string
//	{"url": "..."}                             wrapped object
//	{"data": {"attributes": {"url": "..."}}}   nested relation
//
// ParseMediaRef classifies the shape into an explicit variant and
// Resolver turns it into one absolute URL. Resolution is total: it
// never fails, and a null/absent/unrecognized reference resolves to "".

type mediaKind int

const (
	mediaAbsent mediaKind = iota
	mediaPlain
	mediaWrapped
	mediaNested
)

// MediaRef is the classified form of a polymorphic media reference.
type MediaRef struct {
	kind mediaKind
	url  string
}

// ParseMediaRef classifies an attribute value as decoded from JSON
// (string, map[string]any, or nil). Unrecognized shapes classify as
// absent rather than erroring.
func ParseMediaRef(v any) MediaRef {
	switch ref := v.(type) {
	case nil:
		return MediaRef{kind: mediaAbsent}
	case string:
		if ref == "" {
			return MediaRef{kind: mediaAbsent}
		}
		return MediaRef{kind: mediaPlain, url: ref}
	case map[string]any:
		if data, ok := ref["data"]; ok {
			return parseNested(data)
		}
		if u, ok := stringField(ref, "url"); ok {
			return MediaRef{kind: mediaWrapped, url: u}
		}
		if attrs, ok := ref["attributes"].(map[string]any); ok {
			if u, ok := stringField(attrs, "url"); ok {
				return MediaRef{kind: mediaWrapped, url: u}
			}
		}
		return MediaRef{kind: mediaAbsent}
	default:
		return MediaRef{kind: mediaAbsent}
	}
}

func parseNested(data any) MediaRef {
	obj, ok := data.(map[string]any)
	if !ok {
		return MediaRef{kind: mediaAbsent}
	}
	if attrs, ok := obj["attributes"].(map[string]any); ok {
		if u, ok := stringField(attrs, "url"); ok {
			return MediaRef{kind: mediaNested, url: u}
		}
	}
	// fallback: {"data": {"url": ...}}
	if u, ok := stringField(obj, "url"); ok {
		return MediaRef{kind: mediaNested, url: u}
	}
	return MediaRef{kind: mediaAbsent}
}

func stringField(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Resolver converts media references into absolute URLs against the
// configured CMS base URL.
type Resolver struct {
	BaseURL string
}

// Resolve returns the absolute URL for a media reference, or "" when
// the reference is absent.
func (r Resolver) Resolve(v any) string {
	ref := ParseMediaRef(v)
	if ref.kind == mediaAbsent {
		return ""
	}
	return r.absolute(ref.url)
}

// ResolveSized resolves the reference and appends on-the-fly transform
// parameters. The CMS is expected to honor them; if it does not they
// are harmless no-ops.
func (r Resolver) ResolveSized(v any, width, height int) string {
	resolved := r.Resolve(v)
	if resolved == "" || (width <= 0 && height <= 0) {
		return resolved
	}

	sep := "?"
	if strings.Contains(resolved, "?") {
		sep = "&"
	}
	params := make([]string, 0, 2)
	if width > 0 {
		params = append(params, fmt.Sprintf("width=%d", width))
	}
	if height > 0 {
		params = append(params, fmt.Sprintf("height=%d", height))
	}
	return resolved + sep + strings.Join(params, "&") + "&quality=80&format=webp"
}

func (r Resolver) absolute(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	base := strings.TrimSuffix(r.BaseURL, "/")
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return base + u
}
