package domain

// DailyEvent is one GA report row stored into the daily events table.
// GeoLevel and GeoValue are empty for rows without a geo breakdown.
type DailyEvent struct {
	Date      string // YYYY-MM-DD
	EventName string
	GroupID   string
	GeoLevel  string
	GeoValue  string
	Count     int64
}
