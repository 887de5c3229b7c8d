package domain

import "time"

const (
	DefaultTopGeoTitle = "Top 10 regions (latest day)"
	OtherBucket        = "other"
)

type FilterState struct {
	OnlyAuto    bool     `json:"only_auto"`
	OnlyEnabled bool     `json:"only_enabled"`
	GeoLevel    GeoLevel `json:"geo_level"`
}

func DefaultFilters() FilterState {
	return FilterState{OnlyAuto: true, OnlyEnabled: false, GeoLevel: GeoCountry}
}

// FilterPatch is a partial filter update; nil fields are left unchanged.
type FilterPatch struct {
	OnlyAuto    *bool
	OnlyEnabled *bool
	GeoLevel    *GeoLevel
}

func (f FilterState) Apply(p FilterPatch) FilterState {
	if p.OnlyAuto != nil {
		f.OnlyAuto = *p.OnlyAuto
	}
	if p.OnlyEnabled != nil {
		f.OnlyEnabled = *p.OnlyEnabled
	}
	if p.GeoLevel != nil {
		f.GeoLevel = *p.GeoLevel
	}
	return f
}

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

type PanelState struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

type KPI struct {
	Yesterday    int64   `json:"yesterday"`
	Last7        int64   `json:"last7"`
	WeekOverWeek float64 `json:"wow"`
}

type TrendPoint struct {
	Date   string `json:"date"`
	Label  string `json:"label"`
	Events int64  `json:"events"`
}

type Trend struct {
	Series []TrendPoint `json:"series"`
}

type GeoRank struct {
	Label  string `json:"label"`
	Events int64  `json:"events"`
}

type TopGeo struct {
	Title   string    `json:"title"`
	Ranking []GeoRank `json:"ranking"`
}

type PieSlice struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// StackDay is one bar of the 7-day stacked chart: a column per top event plus
// the other bucket.
type StackDay struct {
	Date   string           `json:"date"`
	Label  string           `json:"label"`
	Events map[string]int64 `json:"events"`
	Other  int64            `json:"other"`
}

type Mix struct {
	Pie       []PieSlice `json:"pie"`
	TopEvents []string   `json:"top_events"`
	Stack     []StackDay `json:"stack"`
}

type KPIView struct {
	KPI
	PanelState
}

type TrendView struct {
	Trend
	PanelState
}

type TopGeoView struct {
	TopGeo
	PanelState
}

type MixView struct {
	Mix
	PanelState
}

// Views is the set of view models that is always replaced as a unit.
type Views struct {
	KPI    KPI
	Trend  Trend
	TopGeo TopGeo
	Mix    Mix
}

// Dashboard is the per-session cache entry: filters, provenance of the last
// successful load and the four panels.
type Dashboard struct {
	Filters   FilterState `json:"filters"`
	CacheKey  string      `json:"cache_key"`
	FetchedAt time.Time   `json:"fetched_at"`
	Status    Status      `json:"status"`

	KPI    KPIView    `json:"kpi"`
	Trend  TrendView  `json:"trend"`
	TopGeo TopGeoView `json:"top_geo"`
	Mix    MixView    `json:"mix"`
}

func NewDashboard() *Dashboard {
	return &Dashboard{
		Filters: DefaultFilters(),
		Status:  StatusIdle,
		Trend:   TrendView{Trend: Trend{Series: []TrendPoint{}}},
		TopGeo:  TopGeoView{TopGeo: TopGeo{Title: DefaultTopGeoTitle, Ranking: []GeoRank{}}},
		Mix:     MixView{Mix: Mix{Pie: []PieSlice{}, TopEvents: []string{}, Stack: []StackDay{}}},
	}
}

// StartLoading flags every panel as loading and clears previous errors.
func (d *Dashboard) StartLoading() {
	d.Status = StatusLoading
	d.setPanels(PanelState{Loading: true})
}

// Commit replaces all four views and records the cache provenance.
func (d *Dashboard) Commit(v Views, key string, at time.Time) {
	d.KPI.KPI = v.KPI
	d.Trend.Trend = v.Trend
	d.TopGeo.TopGeo = v.TopGeo
	d.Mix.Mix = v.Mix
	d.CacheKey = key
	d.FetchedAt = at
	d.Status = StatusReady
	d.setPanels(PanelState{})
}

// Fail attaches msg to every panel. Data, cache key and fetch time are kept.
func (d *Dashboard) Fail(msg string) {
	d.Status = StatusError
	d.setPanels(PanelState{Error: msg})
}

func (d *Dashboard) setPanels(p PanelState) {
	d.KPI.PanelState = p
	d.Trend.PanelState = p
	d.TopGeo.PanelState = p
	d.Mix.PanelState = p
}
