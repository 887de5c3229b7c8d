package usecase

import (
	"context"
	"fmt"

	"ga-dashboard-service/internal/dashboard/core/domain"
	"ga-dashboard-service/internal/dashboard/core/ports"
)

// ResolveEnabledGroups returns nil when no group filtering applies. With
// onlyEnabled it returns the ids of enabled sites, possibly an empty non-nil
// slice.
func ResolveEnabledGroups(ctx context.Context, registry ports.SiteRegistryPort, onlyEnabled bool) ([]string, error) {
	if !onlyEnabled {
		return nil, nil
	}

	sites, err := registry.ListSites(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}

	ids := []string{}
	seen := make(map[string]struct{}, len(sites))
	for _, s := range sites {
		if !s.HasGroupID {
			continue
		}
		if !domain.Truthy(s.Enabled) && !domain.Truthy(s.LegacyEnabled) {
			continue
		}
		if _, ok := seen[s.GroupID]; ok {
			continue
		}
		seen[s.GroupID] = struct{}{}
		ids = append(ids, s.GroupID)
	}
	return ids, nil
}

// BuildEventQuery is shared by every aggregation so that all panels see the
// same filter scope; only the window and selected columns differ.
func BuildEventQuery(start, end string, onlyAuto bool, enabledGroups []string, extra ...string) ports.EventQuery {
	cols := make([]string, 0, len(ports.BaseColumns)+len(extra))
	seen := map[string]struct{}{}
	for _, c := range append(append([]string{}, ports.BaseColumns...), extra...) {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		cols = append(cols, c)
	}

	q := ports.EventQuery{
		Start:   start,
		End:     end,
		Columns: cols,
	}
	if onlyAuto {
		q.EventNames = append([]string{}, domain.AutoEvents...)
	}
	if enabledGroups != nil {
		q.GroupIDs = append([]string{}, enabledGroups...)
	}
	return q
}
