package ports

import (
	"context"

	"ga-dashboard-service/internal/dashboard/core/domain"
)

// Columns of the daily events table that a query may select.
const (
	ColEventDate  = "event_date"
	ColEventName  = "event_name"
	ColEventCount = "event_count"
	ColGroupID    = "property_id"
	ColGeoLevel   = "geo_level"
	ColGeoValue   = "geo_value"
)

var BaseColumns = []string{ColEventDate, ColEventName, ColEventCount, ColGroupID}

type EventQuery struct {
	Start   string // inclusive, YYYY-MM-DD
	End     string // inclusive, YYYY-MM-DD
	Columns []string

	EventNames []string // nil = any event
	GroupIDs   []string // nil = any group; empty non-nil matches nothing
}

type EventReaderPort interface {
	QueryEvents(ctx context.Context, q EventQuery) ([]domain.EventRow, error)
}

type SiteRegistryPort interface {
	ListSites(ctx context.Context) ([]domain.SiteFlags, error)
}

// SessionStorePort persists opaque per-session snapshots.
type SessionStorePort interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}
