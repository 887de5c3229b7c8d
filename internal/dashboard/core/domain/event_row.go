package domain

import "strings"

// EventRow is one pre-aggregated GA4 count: a day, an event name, a property
// and optionally one geo dimension value.
type EventRow struct {
	Date      string // YYYY-MM-DD
	EventName string
	Count     int64
	GroupID   string // GA property id of the owning site
	GeoLevel  string // "" when the row carries no geo dimension
	GeoValue  string
}

type GeoLevel string

const (
	GeoCountry      GeoLevel = "country"
	GeoRegion       GeoLevel = "region"
	GeoCity         GeoLevel = "city"
	GeoContinent    GeoLevel = "continent"
	GeoSubContinent GeoLevel = "subContinent"
)

var geoLevels = []GeoLevel{GeoCountry, GeoRegion, GeoCity, GeoContinent, GeoSubContinent}

// ParseGeoLevel matches s case-insensitively and returns the canonical spelling.
func ParseGeoLevel(s string) (GeoLevel, bool) {
	for _, l := range geoLevels {
		if strings.EqualFold(string(l), strings.TrimSpace(s)) {
			return l, true
		}
	}
	return "", false
}

// AutoEvents are the automatically collected / enhanced measurement events
// kept when the "only auto" filter is on.
var AutoEvents = []string{
	"page_view",
	"session_start",
	"user_engagement",
	"first_visit",
	"scroll",
	"click",
}

// SiteFlags is a raw site registry row. Flag values keep whatever type the
// store returned; see Truthy.
type SiteFlags struct {
	GroupID       string
	HasGroupID    bool
	Enabled       any
	LegacyEnabled any
}
