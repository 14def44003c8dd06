package cms

import (
	"encoding/json"
	"fmt"
)

// ============================================
// RESPONSE ENVELOPE
// ============================================
// Every CMS endpoint wraps its payload in {data, meta}. Collection
// endpoints carry meta.pagination; single-type endpoints do not.
// Attributes are resource-specific and deliberately left untyped -
// this layer treats entities as opaque payloads.

// Entity is one CMS record: a stable integer id plus a free-form
// attribute map owned by the CMS.
type Entity struct {
	ID         int            `json:"id"`
	Attributes map[string]any `json:"attributes"`
}

// Pagination describes a collection page.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// Meta holds response metadata. Pagination is present only for
// collection responses.
type Meta struct {
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Envelope is the {data, meta} wrapper. Data is kept raw because it is
// polymorphic: an entity, an entity array, or null.
type Envelope struct {
	Data json.RawMessage `json:"data"`
	Meta Meta            `json:"meta"`
}

// Entities decodes the data member as a collection. A single entity is
// tolerated and returned as a one-element slice; null yields an empty
// slice.
func (e *Envelope) Entities() ([]Entity, error) {
	if len(e.Data) == 0 || string(e.Data) == "null" {
		return []Entity{}, nil
	}

	var list []Entity
	if err := json.Unmarshal(e.Data, &list); err == nil {
		return list, nil
	}

	var single Entity
	if err := json.Unmarshal(e.Data, &single); err != nil {
		return nil, fmt.Errorf("decode envelope data: %w", err)
	}
	return []Entity{single}, nil
}

// Entity decodes the data member as a single record. The boolean is
// false when data is null/absent.
func (e *Envelope) Entity() (Entity, bool, error) {
	if len(e.Data) == 0 || string(e.Data) == "null" {
		return Entity{}, false, nil
	}

	var single Entity
	if err := json.Unmarshal(e.Data, &single); err != nil {
		return Entity{}, false, fmt.Errorf("decode envelope data: %w", err)
	}
	return single, true, nil
}
