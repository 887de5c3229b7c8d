package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	dashboard "ga-dashboard-service/internal/dashboard/core/domain"
	"ga-dashboard-service/internal/events/core/domain"
	"ga-dashboard-service/internal/events/core/ports"
)

var (
	ErrInvalidDailyEvent = errors.New("invalid daily event")
	ErrInvalidDate       = errors.New("date must be YYYY-MM-DD")
	ErrFutureDate        = errors.New("date cannot be in the future")
	ErrNegativeCount     = errors.New("event count cannot be negative")
	ErrInvalidGeoLevel   = errors.New("invalid geo level")
)

type StoreEventUseCase struct {
	repo ports.EventRepositoryPort
	loc  *time.Location
	now  func() time.Time
}

// NewStoreEventUseCase validates dates against "today" in loc (UTC when nil).
func NewStoreEventUseCase(repo ports.EventRepositoryPort, loc *time.Location) *StoreEventUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &StoreEventUseCase{repo: repo, loc: loc, now: time.Now}
}

type StoreEventInput struct {
	Date      string
	EventName string
	GroupID   string
	GeoLevel  string
	GeoValue  string
	Count     int64
}

func (uc *StoreEventUseCase) Execute(ctx context.Context, in StoreEventInput) (bool, error) {
	e, err := uc.toDailyEvent(in)
	if err != nil {
		return false, err
	}

	created, err := uc.repo.UpsertDailyEvent(ctx, e)
	if err != nil {
		return false, err
	}

	return created, nil
}

type BulkCreateEventsInput struct {
	Events []StoreEventInput
}

type BulkCreateEventsResult struct {
	Created int
	Updated int
}

// BulkCreateEvents rejects the whole batch if any row is invalid, before
// anything is written. The rows are then written in one transaction.
func (uc *StoreEventUseCase) BulkCreateEvents(ctx context.Context, in BulkCreateEventsInput) (BulkCreateEventsResult, error) {
	events := make([]*domain.DailyEvent, 0, len(in.Events))
	for _, ev := range in.Events {
		e, err := uc.toDailyEvent(ev)
		if err != nil {
			return BulkCreateEventsResult{}, err
		}
		events = append(events, e)
	}

	created, updated, err := uc.repo.UpsertDailyEvents(ctx, events)
	if err != nil {
		return BulkCreateEventsResult{}, err
	}

	return BulkCreateEventsResult{Created: created, Updated: updated}, nil
}

func (uc *StoreEventUseCase) toDailyEvent(in StoreEventInput) (*domain.DailyEvent, error) {
	name := strings.TrimSpace(in.EventName)
	group := strings.TrimSpace(in.GroupID)
	if name == "" || group == "" {
		return nil, ErrInvalidDailyEvent
	}

	day, err := time.ParseInLocation(dashboard.DateLayout, strings.TrimSpace(in.Date), uc.loc)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if day.Format(dashboard.DateLayout) > dashboard.DaysAgo(uc.now().In(uc.loc), 0) {
		return nil, ErrFutureDate
	}

	if in.Count < 0 {
		return nil, ErrNegativeCount
	}

	e := &domain.DailyEvent{
		Date:      day.Format(dashboard.DateLayout),
		EventName: name,
		GroupID:   group,
		Count:     in.Count,
	}

	if in.GeoLevel != "" {
		level, ok := dashboard.ParseGeoLevel(in.GeoLevel)
		if !ok {
			return nil, ErrInvalidGeoLevel
		}
		e.GeoLevel = string(level)
		e.GeoValue = strings.TrimSpace(in.GeoValue)
	} else if strings.TrimSpace(in.GeoValue) != "" {
		return nil, ErrInvalidGeoLevel
	}

	return e, nil
}
