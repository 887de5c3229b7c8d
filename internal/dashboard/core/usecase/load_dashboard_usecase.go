package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"ga-dashboard-service/internal/dashboard/core/domain"
	"ga-dashboard-service/internal/dashboard/core/ports"
)

var (
	ErrInvalidGeoLevel = errors.New("invalid geo level")
	ErrMissingSession  = errors.New("session id is required")
)

const sessionKeyPrefix = "ga-dashboard-cache:"

type Config struct {
	CacheTTL     time.Duration
	QueryTimeout time.Duration
	Location     *time.Location
	Clock        func() time.Time
}

type LoadOptions struct {
	Force bool
}

// LoadDashboardUseCase owns the per-session dashboard snapshot: filter
// updates, the staleness gate and the four-panel reload.
type LoadDashboardUseCase struct {
	events   ports.EventReaderPort
	sites    ports.SiteRegistryPort
	sessions ports.SessionStorePort
	cfg      Config
	logger   *zap.Logger

	flight singleflight.Group
	locks  sessionLocks
}

const sessionLockStripes = 64

// sessionLocks serialises snapshot read-modify-writes per session within
// this process.
type sessionLocks [sessionLockStripes]sync.Mutex

func (l *sessionLocks) lock(sessionID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	m := &l[h.Sum32()%sessionLockStripes]
	m.Lock()
	return m.Unlock
}

func NewLoadDashboardUseCase(
	events ports.EventReaderPort,
	sites ports.SiteRegistryPort,
	sessions ports.SessionStorePort,
	cfg Config,
	logger *zap.Logger,
) *LoadDashboardUseCase {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = 30 * time.Second
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoadDashboardUseCase{
		events:   events,
		sites:    sites,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}
}

func (uc *LoadDashboardUseCase) State(ctx context.Context, sessionID string) (*domain.Dashboard, error) {
	if sessionID == "" {
		return nil, ErrMissingSession
	}
	return uc.restore(ctx, sessionID), nil
}

func (uc *LoadDashboardUseCase) SetFilters(ctx context.Context, sessionID string, p domain.FilterPatch) (*domain.Dashboard, error) {
	if sessionID == "" {
		return nil, ErrMissingSession
	}
	if p.GeoLevel != nil {
		level, ok := domain.ParseGeoLevel(string(*p.GeoLevel))
		if !ok {
			return nil, ErrInvalidGeoLevel
		}
		p.GeoLevel = &level
	}

	d := uc.update(ctx, sessionID, func(d *domain.Dashboard) {
		d.Filters = d.Filters.Apply(p)
	})
	return d, nil
}

// LoadAll refreshes the four panels unless the cached ones are still valid
// for the current filters. On failure the returned dashboard carries the
// error on every panel together with the previous data.
func (uc *LoadDashboardUseCase) LoadAll(ctx context.Context, sessionID string, opts LoadOptions) (*domain.Dashboard, error) {
	if sessionID == "" {
		return nil, ErrMissingSession
	}

	d := uc.restore(ctx, sessionID)
	newKey := CacheKey(d.Filters)
	if !ShouldRefetch(d.CacheKey, newKey, d.FetchedAt, uc.cfg.Clock(), uc.cfg.CacheTTL, opts.Force) {
		uc.logger.Debug("dashboard cache hit",
			zap.String("session_id", sessionID),
			zap.String("cache_key", newKey),
		)
		return d, nil
	}

	v, err, shared := uc.flight.Do(sessionID+"|"+newKey, func() (any, error) {
		return uc.refresh(ctx, sessionID, d.Filters, newKey)
	})
	if shared {
		uc.logger.Debug("joined in-flight dashboard load", zap.String("session_id", sessionID))
	}
	return v.(*domain.Dashboard), err
}

// refresh fetches the views for f. Filters may change while it runs, so every
// write goes through update and touches only panels, status and provenance.
func (uc *LoadDashboardUseCase) refresh(ctx context.Context, sessionID string, f domain.FilterState, key string) (*domain.Dashboard, error) {
	// The load may be shared by several requests, so it is bounded by its own
	// timeout rather than by the caller's cancellation.
	saveCtx := context.WithoutCancel(ctx)
	ctx, cancel := context.WithTimeout(saveCtx, uc.cfg.QueryTimeout)
	defer cancel()

	started := uc.cfg.Clock()
	uc.update(saveCtx, sessionID, (*domain.Dashboard).StartLoading)

	views, err := uc.fetchViews(ctx, f, started.In(uc.cfg.Location))
	if err != nil {
		d := uc.update(saveCtx, sessionID, func(d *domain.Dashboard) {
			d.Fail(err.Error())
		})
		uc.logger.Warn("dashboard load failed",
			zap.String("session_id", sessionID),
			zap.String("cache_key", key),
			zap.Error(err),
		)
		return d, err
	}

	finished := uc.cfg.Clock()
	d := uc.update(saveCtx, sessionID, func(d *domain.Dashboard) {
		d.Commit(views, key, finished)
	})

	uc.logger.Info("dashboard loaded",
		zap.String("session_id", sessionID),
		zap.String("cache_key", key),
		zap.Duration("duration", finished.Sub(started)),
	)
	return d, nil
}

func (uc *LoadDashboardUseCase) fetchViews(ctx context.Context, f domain.FilterState, now time.Time) (domain.Views, error) {
	today := domain.DaysAgo(now, 0)
	yesterday := domain.DaysAgo(now, 1)
	start7 := domain.DaysAgo(now, 6)
	start14 := domain.DaysAgo(now, 13)
	start30 := domain.DaysAgo(now, 29)

	groups, err := ResolveEnabledGroups(ctx, uc.sites, f.OnlyEnabled)
	if err != nil {
		return domain.Views{}, err
	}

	days30 := domain.DateRange(start30, today)
	if f.OnlyEnabled && len(groups) == 0 {
		return emptyViews(days30), nil
	}

	// each goroutine writes its own field of v
	var v domain.Views
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := uc.events.QueryEvents(gctx, BuildEventQuery(start14, today, f.OnlyAuto, groups))
		if err != nil {
			return fmt.Errorf("kpi query: %w", err)
		}
		v.KPI = ReduceKPI(rows, domain.DateRange(start14, today), yesterday)
		return nil
	})

	g.Go(func() error {
		rows, err := uc.events.QueryEvents(gctx, BuildEventQuery(start30, today, f.OnlyAuto, groups))
		if err != nil {
			return fmt.Errorf("trend query: %w", err)
		}
		v.Trend = ReduceTrend(rows, days30)
		return nil
	})

	g.Go(func() error {
		q := BuildEventQuery(start14, today, f.OnlyAuto, groups, ports.ColGeoLevel, ports.ColGeoValue)
		rows, err := uc.events.QueryEvents(gctx, q)
		if err != nil {
			return fmt.Errorf("top geo query: %w", err)
		}
		v.TopGeo = ReduceTopGeo(rows, f.GeoLevel)
		return nil
	})

	g.Go(func() error {
		rows, err := uc.events.QueryEvents(gctx, BuildEventQuery(start7, today, f.OnlyAuto, groups))
		if err != nil {
			return fmt.Errorf("event mix query: %w", err)
		}
		v.Mix = ReduceMix(rows, domain.DateRange(start7, today))
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.Views{}, err
	}
	return v, nil
}

func (uc *LoadDashboardUseCase) restore(ctx context.Context, sessionID string) *domain.Dashboard {
	raw, ok, err := uc.sessions.Get(ctx, sessionKeyPrefix+sessionID)
	if err != nil {
		uc.logger.Warn("failed to read dashboard session", zap.String("session_id", sessionID), zap.Error(err))
		return domain.NewDashboard()
	}
	if !ok {
		return domain.NewDashboard()
	}

	d := domain.NewDashboard()
	if err := json.Unmarshal(raw, d); err != nil {
		uc.logger.Warn("failed to decode dashboard session", zap.String("session_id", sessionID), zap.Error(err))
		return domain.NewDashboard()
	}
	if _, ok := domain.ParseGeoLevel(string(d.Filters.GeoLevel)); !ok {
		d.Filters.GeoLevel = domain.GeoCountry
	}
	return d
}

// update applies fn to the stored snapshot under the session lock and saves it.
func (uc *LoadDashboardUseCase) update(ctx context.Context, sessionID string, fn func(d *domain.Dashboard)) *domain.Dashboard {
	unlock := uc.locks.lock(sessionID)
	defer unlock()

	d := uc.restore(ctx, sessionID)
	fn(d)
	uc.persist(ctx, sessionID, d)
	return d
}

func (uc *LoadDashboardUseCase) persist(ctx context.Context, sessionID string, d *domain.Dashboard) {
	raw, err := json.Marshal(d)
	if err != nil {
		uc.logger.Warn("failed to encode dashboard session", zap.String("session_id", sessionID), zap.Error(err))
		return
	}
	if err := uc.sessions.Set(ctx, sessionKeyPrefix+sessionID, raw); err != nil {
		uc.logger.Warn("failed to write dashboard session", zap.String("session_id", sessionID), zap.Error(err))
	}
}
