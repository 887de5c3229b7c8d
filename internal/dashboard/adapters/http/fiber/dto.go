package fiber

import (
	"time"

	"ga-dashboard-service/internal/dashboard/core/domain"
)

// UpdateFiltersRequest is a partial filter update; omitted fields keep their
// current value.
type UpdateFiltersRequest struct {
	OnlyAuto    *bool   `json:"only_auto"`
	OnlyEnabled *bool   `json:"only_enabled"`
	GeoLevel    *string `json:"geo_level" example:"country"`
}

type FiltersResponse struct {
	OnlyAuto    bool   `json:"only_auto"`
	OnlyEnabled bool   `json:"only_enabled"`
	GeoLevel    string `json:"geo_level"`
}

type KPIResponse struct {
	Yesterday    int64   `json:"yesterday"`
	Last7        int64   `json:"last7"`
	WeekOverWeek float64 `json:"wow"`
	Loading      bool    `json:"loading"`
	Error        string  `json:"error,omitempty"`
}

type TrendPointResponse struct {
	Date   string `json:"date"`
	Label  string `json:"label"`
	Events int64  `json:"events"`
}

type TrendResponse struct {
	Data    []TrendPointResponse `json:"data"`
	Loading bool                 `json:"loading"`
	Error   string               `json:"error,omitempty"`
}

type GeoRankResponse struct {
	Label  string `json:"label"`
	Events int64  `json:"events"`
}

type TopGeoResponse struct {
	Title   string            `json:"title"`
	Data    []GeoRankResponse `json:"data"`
	Loading bool              `json:"loading"`
	Error   string            `json:"error,omitempty"`
}

type PieSliceResponse struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type StackDayResponse struct {
	Date   string           `json:"date"`
	Label  string           `json:"label"`
	Events map[string]int64 `json:"events"`
	Other  int64            `json:"other"`
}

type MixResponse struct {
	Pie       []PieSliceResponse `json:"pie"`
	TopEvents []string           `json:"top_events"`
	Stack7d   []StackDayResponse `json:"stack7d"`
	Loading   bool               `json:"loading"`
	Error     string             `json:"error,omitempty"`
}

type DashboardResponse struct {
	Filters   FiltersResponse `json:"filters"`
	Status    string          `json:"status"`
	CacheKey  string          `json:"cache_key"`
	FetchedAt *time.Time      `json:"fetched_at,omitempty"`
	KPI       KPIResponse     `json:"kpi"`
	Trend     TrendResponse   `json:"trend"`
	TopGeo    TopGeoResponse  `json:"top_geo"`
	Mix       MixResponse     `json:"mix"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_filters"`
	Message string `json:"message" example:"invalid geo level"`
}

func toDashboardResponse(d *domain.Dashboard) DashboardResponse {
	resp := DashboardResponse{
		Filters: FiltersResponse{
			OnlyAuto:    d.Filters.OnlyAuto,
			OnlyEnabled: d.Filters.OnlyEnabled,
			GeoLevel:    string(d.Filters.GeoLevel),
		},
		Status:   string(d.Status),
		CacheKey: d.CacheKey,
		KPI: KPIResponse{
			Yesterday:    d.KPI.Yesterday,
			Last7:        d.KPI.Last7,
			WeekOverWeek: d.KPI.WeekOverWeek,
			Loading:      d.KPI.Loading,
			Error:        d.KPI.Error,
		},
		Trend: TrendResponse{
			Data:    make([]TrendPointResponse, 0, len(d.Trend.Series)),
			Loading: d.Trend.Loading,
			Error:   d.Trend.Error,
		},
		TopGeo: TopGeoResponse{
			Title:   d.TopGeo.Title,
			Data:    make([]GeoRankResponse, 0, len(d.TopGeo.Ranking)),
			Loading: d.TopGeo.Loading,
			Error:   d.TopGeo.Error,
		},
		Mix: MixResponse{
			Pie:       make([]PieSliceResponse, 0, len(d.Mix.Pie)),
			TopEvents: append([]string{}, d.Mix.TopEvents...),
			Stack7d:   make([]StackDayResponse, 0, len(d.Mix.Stack)),
			Loading:   d.Mix.Loading,
			Error:     d.Mix.Error,
		},
	}

	if !d.FetchedAt.IsZero() {
		t := d.FetchedAt.UTC()
		resp.FetchedAt = &t
	}

	for _, p := range d.Trend.Series {
		resp.Trend.Data = append(resp.Trend.Data, TrendPointResponse{Date: p.Date, Label: p.Label, Events: p.Events})
	}
	for _, g := range d.TopGeo.Ranking {
		resp.TopGeo.Data = append(resp.TopGeo.Data, GeoRankResponse{Label: g.Label, Events: g.Events})
	}
	for _, s := range d.Mix.Pie {
		resp.Mix.Pie = append(resp.Mix.Pie, PieSliceResponse{Name: s.Name, Value: s.Value})
	}
	for _, day := range d.Mix.Stack {
		resp.Mix.Stack7d = append(resp.Mix.Stack7d, StackDayResponse{
			Date:   day.Date,
			Label:  day.Label,
			Events: day.Events,
			Other:  day.Other,
		})
	}

	return resp
}
