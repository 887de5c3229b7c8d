package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"ga-dashboard-service/internal/dashboard/core/domain"
	"ga-dashboard-service/internal/dashboard/core/ports"
)

const DefaultEventsTable = "ga_daily_events"

var selectableColumns = map[string]bool{
	ports.ColEventDate:  true,
	ports.ColEventName:  true,
	ports.ColEventCount: true,
	ports.ColGroupID:    true,
	ports.ColGeoLevel:   true,
	ports.ColGeoValue:   true,
}

type EventRepository struct {
	db    DB
	table string
}

func NewEventRepository(db DB, table string) *EventRepository {
	if table == "" {
		table = DefaultEventsTable
	}
	return &EventRepository{db: db, table: table}
}

var _ ports.EventReaderPort = (*EventRepository)(nil)

func (r *EventRepository) QueryEvents(ctx context.Context, q ports.EventQuery) ([]domain.EventRow, error) {
	cols := q.Columns
	if len(cols) == 0 {
		cols = ports.BaseColumns
	}

	quoted := make([]string, 0, len(cols))
	for _, c := range cols {
		if !selectableColumns[c] {
			return nil, fmt.Errorf("unsupported column: %s", c)
		}
		quoted = append(quoted, pq.QuoteIdentifier(c))
	}

	where := "event_date >= $1 AND event_date <= $2"
	args := []any{q.Start, q.End}
	argIndex := 3

	if q.EventNames != nil {
		where += fmt.Sprintf(" AND event_name = ANY($%d)", argIndex)
		args = append(args, pq.Array(q.EventNames))
		argIndex++
	}
	if q.GroupIDs != nil {
		where += fmt.Sprintf(" AND property_id::text = ANY($%d)", argIndex)
		args = append(args, pq.Array(q.GroupIDs))
		argIndex++
	}

	query := `
SELECT ` + strings.Join(quoted, ", ") + `
FROM ` + pq.QuoteIdentifier(r.table) + `
WHERE ` + where

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.EventRow
	for rows.Next() {
		raw := make([]any, len(cols))
		dest := make([]any, len(cols))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, toEventRow(cols, raw))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// toEventRow is the single place where loosely typed columns become an
// EventRow.
func toEventRow(cols []string, raw []any) domain.EventRow {
	var e domain.EventRow
	for i, c := range cols {
		switch c {
		case ports.ColEventDate:
			e.Date = domain.CoerceDate(raw[i])
		case ports.ColEventName:
			e.EventName = domain.CoerceString(raw[i])
		case ports.ColEventCount:
			e.Count = domain.CoerceCount(raw[i])
		case ports.ColGroupID:
			e.GroupID = domain.CoerceString(raw[i])
		case ports.ColGeoLevel:
			e.GeoLevel = domain.CoerceString(raw[i])
		case ports.ColGeoValue:
			e.GeoValue = domain.CoerceString(raw[i])
		}
	}
	return e
}
