package domain

import "time"

const DateLayout = "2006-01-02"

// DaysAgo formats the calendar day n days before now, in now's location.
func DaysAgo(now time.Time, n int) string {
	y, m, d := now.Date()
	return time.Date(y, m, d-n, 0, 0, 0, 0, now.Location()).Format(DateLayout)
}

// DateRange lists every day from start to end inclusive, ascending.
// Unparseable bounds or start > end yield nil.
func DateRange(start, end string) []string {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return nil
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return nil
	}

	var out []string
	for cur := s; !cur.After(e); cur = cur.AddDate(0, 0, 1) {
		out = append(out, cur.Format(DateLayout))
	}
	return out
}

// DayLabel is the short MM-DD label used on chart axes.
func DayLabel(day string) string {
	if len(day) == len(DateLayout) {
		return day[5:]
	}
	return day
}
