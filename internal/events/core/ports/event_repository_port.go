package ports

import (
	"context"

	"ga-dashboard-service/internal/events/core/domain"
)

type EventRepositoryPort interface {
	// UpsertDailyEvent:
	//   created = true,  err = nil  -> new row
	//   created = false, err = nil  -> existing row, count replaced
	//   created = false, err != nil -> DB error
	UpsertDailyEvent(ctx context.Context, e *domain.DailyEvent) (created bool, err error)

	// UpsertDailyEvents writes the batch atomically. On error nothing is
	// written and both counts are zero.
	UpsertDailyEvents(ctx context.Context, events []*domain.DailyEvent) (created, updated int, err error)
}
