package usecase_test

import (
	"testing"
	"time"

	"ga-dashboard-service/internal/dashboard/core/domain"
	"ga-dashboard-service/internal/dashboard/core/usecase"
)

func TestCacheKey(t *testing.T) {
	got := usecase.CacheKey(domain.FilterState{OnlyAuto: true, OnlyEnabled: false, GeoLevel: domain.GeoCountry})
	if got != "auto:1|enabled:0|geo:country" {
		t.Fatalf("unexpected key: %s", got)
	}

	got = usecase.CacheKey(domain.FilterState{OnlyAuto: false, OnlyEnabled: true, GeoLevel: domain.GeoSubContinent})
	if got != "auto:0|enabled:1|geo:subContinent" {
		t.Fatalf("unexpected key: %s", got)
	}

	a := usecase.CacheKey(domain.DefaultFilters())
	b := usecase.CacheKey(domain.DefaultFilters())
	if a != b {
		t.Fatalf("equal filters must give equal keys: %s vs %s", a, b)
	}
}

func TestShouldRefetch(t *testing.T) {
	now := time.Date(2025, 10, 18, 12, 0, 0, 0, time.UTC)
	ttl := time.Hour
	key := "auto:1|enabled:0|geo:country"

	cases := []struct {
		name      string
		current   string
		fetchedAt time.Time
		force     bool
		want      bool
	}{
		{"fresh cache", key, now.Add(-59 * time.Minute), false, false},
		{"exactly ttl old", key, now.Add(-ttl), false, true},
		{"older than ttl", key, now.Add(-2 * time.Hour), false, true},
		{"key changed", "auto:0|enabled:0|geo:country", now, false, true},
		{"never fetched", "", time.Time{}, false, true},
		{"force on fresh cache", key, now, true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := usecase.ShouldRefetch(tc.current, key, tc.fetchedAt, now, ttl, tc.force)
			if got != tc.want {
				t.Fatalf("ShouldRefetch = %v, want %v", got, tc.want)
			}
		})
	}
}
