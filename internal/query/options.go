// Package query turns untrusted list parameters into validated store options.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Field names a workout attribute addressable by sort and projection.
type Field string

const (
	FieldID                      Field = "id"
	FieldTitle                   Field = "title"
	FieldType                    Field = "type"
	FieldDuration                Field = "duration"
	FieldCalories                Field = "calories"
	FieldDate                    Field = "date"
	FieldDifficulty              Field = "difficulty"
	FieldNotes                   Field = "notes"
	FieldScheduledAt             Field = "scheduledAt"
	FieldStatus                  Field = "status"
	FieldCompletedAt             Field = "completedAt"
	FieldConfirmationRequestedAt Field = "confirmationRequestedAt"
	FieldOwnerID                 Field = "ownerId"
	FieldOwnerUsername           Field = "ownerUsername"
	FieldCreatedAt               Field = "createdAt"
	FieldUpdatedAt               Field = "updatedAt"
)

var sortableFields = map[Field]struct{}{
	FieldDuration:    {},
	FieldCalories:    {},
	FieldDate:        {},
	FieldTitle:       {},
	FieldDifficulty:  {},
	FieldScheduledAt: {},
	FieldCompletedAt: {},
	FieldStatus:      {},
}

var projectableFields = map[Field]struct{}{
	FieldTitle:                   {},
	FieldType:                    {},
	FieldDuration:                {},
	FieldCalories:                {},
	FieldDate:                    {},
	FieldDifficulty:              {},
	FieldNotes:                   {},
	FieldScheduledAt:             {},
	FieldStatus:                  {},
	FieldCompletedAt:             {},
	FieldConfirmationRequestedAt: {},
	FieldOwnerID:                 {},
	FieldOwnerUsername:           {},
	FieldCreatedAt:               {},
	FieldUpdatedAt:               {},
}

// Sortable reports whether callers may sort by the field.
func (f Field) Sortable() bool {
	_, ok := sortableFields[f]
	return ok
}

// Projectable reports whether callers may select the field.
func (f Field) Projectable() bool {
	_, ok := projectableFields[f]
	return ok
}

// Order is a sort direction.
type Order int

const (
	Asc  Order = 1
	Desc Order = -1
)

// SortKey is one component of a compound sort.
type SortKey struct {
	Field Field
	Order Order
}

// Projection lists the selected fields. A nil Projection selects the full record.
type Projection []Field

// Includes reports whether the projection selects f.
func (p Projection) Includes(f Field) bool {
	if p == nil {
		return true
	}
	for _, field := range p {
		if field == f {
			return true
		}
	}
	return false
}

// Filter holds the exact-match narrowing allowed from request parameters.
type Filter struct {
	Type   string
	Status string
}

// Options is the validated outcome of Build.
type Options struct {
	Filter     Filter
	Sort       []SortKey
	Projection Projection
	Page       int
	Limit      int
	Skip       int
}

const (
	DefaultPage  = 1
	MaxPage      = 1_000_000
	DefaultLimit = 10
	MaxLimit     = 100
)

// DefaultSort is applied when no valid sort field is requested.
var DefaultSort = []SortKey{{Field: FieldCreatedAt, Order: Desc}}

// Build validates raw list parameters. It never fails: unknown or malformed
// values fall back to defaults.
func Build(params url.Values) Options {
	opts := Options{
		Filter: Filter{
			Type:   strings.TrimSpace(params.Get("type")),
			Status: strings.TrimSpace(params.Get("status")),
		},
		Sort:       buildSort(params.Get("sort"), params.Get("order")),
		Projection: buildProjection(params.Get("fields")),
		Page:       ClampInt(params.Get("page"), DefaultPage, 1, MaxPage),
		Limit:      ClampInt(params.Get("limit"), DefaultLimit, 1, MaxLimit),
	}
	opts.Skip = (opts.Page - 1) * opts.Limit
	return opts
}

func buildSort(rawField, rawOrder string) []SortKey {
	field := Field(strings.TrimSpace(rawField))
	if !field.Sortable() {
		return append([]SortKey(nil), DefaultSort...)
	}
	order := Asc
	if strings.EqualFold(strings.TrimSpace(rawOrder), "desc") {
		order = Desc
	}
	// createdAt stays as tiebreaker
	return []SortKey{{Field: field, Order: order}, {Field: FieldCreatedAt, Order: Desc}}
}

func buildProjection(raw string) Projection {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	projection := Projection{FieldID}
	for _, part := range strings.Split(raw, ",") {
		field := Field(strings.TrimSpace(part))
		if !field.Projectable() || projection.Includes(field) {
			continue
		}
		projection = append(projection, field)
	}
	for _, required := range []Field{FieldOwnerID, FieldOwnerUsername} {
		if !projection.Includes(required) {
			projection = append(projection, required)
		}
	}
	return projection
}

// ClampInt parses raw as an integer and clamps it to [min, max].
// Blank or non-numeric input yields fallback.
func ClampInt(raw string, fallback, min, max int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	if parsed < min {
		return min
	}
	if parsed > max {
		return max
	}
	return parsed
}

// TotalPages returns the page count for total items, never less than one.
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 1
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		return 1
	}
	return pages
}
