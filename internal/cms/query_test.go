package cms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeBracketNotation(t *testing.T) {
	q := &Query{
		Populate: []string{"*"},
		Sort:     []string{"eventDate:asc"},
		Filters:  Filters{"isActive": {"$eq": true}},
		PageSize: 10,
	}

	encoded := q.Encode()
	assert.Contains(t, encoded, "populate=%2A")
	assert.Contains(t, encoded, "sort=eventDate%3Aasc")
	assert.Contains(t, encoded, "filters%5BisActive%5D%5B%24eq%5D=true")
	assert.Contains(t, encoded, "pagination%5BpageSize%5D=10")
}

func TestEncodeDeterministic(t *testing.T) {
	// Same logical query, filters built in different insertion order.
	a := &Query{Filters: Filters{}}
	a.Filters["category"] = map[string]any{"$eq": "sports"}
	a.Filters["isActive"] = map[string]any{"$eq": true}

	b := &Query{Filters: Filters{}}
	b.Filters["isActive"] = map[string]any{"$eq": true}
	b.Filters["category"] = map[string]any{"$eq": "sports"}

	assert.Equal(t, a.Encode(), b.Encode())
	assert.Equal(t, a.CacheKey("gallery-images"), b.CacheKey("gallery-images"))
}

func TestEncodeNumericNormalization(t *testing.T) {
	// JSON decoding yields float64; a hand-built int must key the same.
	asInt := &Query{Filters: Filters{"order": {"$lte": 5}}}
	asFloat := &Query{Filters: Filters{"order": {"$lte": float64(5)}}}

	assert.Equal(t, asInt.Encode(), asFloat.Encode())
}

func TestEncodeTimeValue(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
	q := &Query{Filters: Filters{"eventDate": {"$gte": ts}}}

	assert.Contains(t, q.Encode(), "2025-03-01T12%3A30%3A00Z")
}

func TestCacheKey(t *testing.T) {
	var empty *Query
	assert.Equal(t, "", empty.Encode())

	noParams := &Query{}
	assert.Equal(t, "footer-info", noParams.CacheKey("footer-info"))

	withParams := &Query{PageSize: 6}
	assert.Equal(t, "news-articles?pagination%5BpageSize%5D=6", withParams.CacheKey("news-articles"))
}
