package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"ga-dashboard-service/internal/events/core/domain"
	"ga-dashboard-service/internal/events/core/ports"
)

type EventRepository struct {
	db    DB
	query string
}

// NewEventRepository writes into table (ga_daily_events when empty).
func NewEventRepository(db DB, table string) *EventRepository {
	if table == "" {
		table = "ga_daily_events"
	}
	return &EventRepository{db: db, query: fmt.Sprintf(upsertDailyEventSQL, pq.QuoteIdentifier(table))}
}

var _ ports.EventRepositoryPort = (*EventRepository)(nil)

// xmax is 0 only for a freshly inserted tuple.
const upsertDailyEventSQL = `
INSERT INTO %s (
    event_date,
    event_name,
    property_id,
    geo_level,
    geo_value,
    event_count
) VALUES (
    $1, $2, $3,
    $4, $5, $6
)
ON CONFLICT (event_date, event_name, property_id, geo_level, geo_value)
DO UPDATE SET event_count = EXCLUDED.event_count
RETURNING (xmax = 0) AS inserted;
`

func (r *EventRepository) UpsertDailyEvent(ctx context.Context, e *domain.DailyEvent) (bool, error) {
	return r.upsert(ctx, r.db, e)
}

func (r *EventRepository) UpsertDailyEvents(ctx context.Context, events []*domain.DailyEvent) (created, updated int, err error) {
	err = r.db.WithTx(ctx, func(tx DB) error {
		for _, e := range events {
			inserted, err := r.upsert(ctx, tx, e)
			if err != nil {
				return err
			}
			if inserted {
				created++
			} else {
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return created, updated, nil
}

func (r *EventRepository) upsert(ctx context.Context, db DB, e *domain.DailyEvent) (bool, error) {
	var inserted bool
	err := db.QueryRowContext(ctx, r.query,
		e.Date,
		e.EventName,
		e.GroupID,
		e.GeoLevel,
		e.GeoValue,
		e.Count,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("upsert daily event: %w", err)
	}

	return inserted, nil
}
