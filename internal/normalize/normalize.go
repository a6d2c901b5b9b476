// Package normalize maps raw backend rows into stable domain shapes. The
// tabular backend's generic CRUD responses are shape-inconsistent across
// verbs; this package is the single seam that absorbs that inconsistency.
// All functions are pure field copies with defaulting; they never fail, and
// validation of required identifiers is the caller's job.
package normalize

import (
	"strconv"
	"time"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// Raw is one decoded backend row.
type Raw map[string]any

// overridable in tests
var timeNow = time.Now

// Ticket copies known fields, defaulting priority to medium and the
// timestamps to now / created_at when the backend omits them.
func Ticket(raw Raw) domain.Ticket {
	now := timeNow().UTC()

	createdAt, hasCreated := timeField(raw, "created_at")
	if !hasCreated {
		createdAt = now
	}
	updatedAt, hasUpdated := timeField(raw, "updated_at")
	if !hasUpdated {
		updatedAt = createdAt
	}

	priority := domain.TicketPriority(stringField(raw, "priority"))
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}

	return domain.Ticket{
		ID:           intField(raw, "id"),
		Title:        stringField(raw, "title"),
		Description:  stringField(raw, "description"),
		Status:       domain.TicketStatus(stringField(raw, "status")),
		Priority:     priority,
		RequesterID:  intField(raw, "requester_id"),
		AssignedToID: intPtrField(raw, "assigned_to_id"),
		CategoryID:   intPtrField(raw, "category_id"),
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// Comment is a structural copy; only created_at falls back to now.
func Comment(raw Raw) domain.Comment {
	createdAt, ok := timeField(raw, "created_at")
	if !ok {
		createdAt = timeNow().UTC()
	}
	return domain.Comment{
		ID:        intField(raw, "id"),
		TicketID:  intField(raw, "ticket_id"),
		UserID:    intField(raw, "user_id"),
		Comment:   stringField(raw, "comment"),
		CreatedAt: createdAt,
	}
}

// User is a structural copy with role canonicalization and no defaulting.
func User(raw Raw) domain.User {
	createdAt, _ := timeField(raw, "created_at")
	return domain.User{
		ID:         intField(raw, "id"),
		Name:       stringField(raw, "name"),
		Email:      stringField(raw, "email"),
		Role:       domain.ParseRole(stringField(raw, "role")),
		Department: stringField(raw, "department"),
		Avatar:     stringField(raw, "avatar"),
		CreatedAt:  createdAt,
	}
}

func stringField(raw Raw, key string) string {
	if v, ok := raw[key].(string); ok {
		return v
	}
	return ""
}

// intField coerces the number encodings backends actually send: JSON
// numbers (float64), integers, and numeric strings.
func intField(raw Raw, key string) int {
	v, ok := raw[key]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0
		}
		return parsed
	}
	return 0
}

// intPtrField treats absent, null, and zero ids as "unset".
func intPtrField(raw Raw, key string) *int {
	n := intField(raw, key)
	if n == 0 {
		return nil
	}
	return &n
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func timeField(raw Raw, key string) (time.Time, bool) {
	s, ok := raw[key].(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
