package usecase

import (
	"fmt"
	"time"

	"ga-dashboard-service/internal/dashboard/core/domain"
)

// CacheKey encodes the filter state in a fixed field order, so equal filters
// always give equal keys.
func CacheKey(f domain.FilterState) string {
	return fmt.Sprintf("auto:%d|enabled:%d|geo:%s", b2i(f.OnlyAuto), b2i(f.OnlyEnabled), f.GeoLevel)
}

// ShouldRefetch reports whether the cached views must be recomputed.
func ShouldRefetch(currentKey, newKey string, lastFetchedAt, now time.Time, ttl time.Duration, force bool) bool {
	if force || currentKey != newKey {
		return true
	}
	return now.Sub(lastFetchedAt) >= ttl
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
