package usecase

import (
	"fmt"
	"sort"
	"strings"

	"ga-dashboard-service/internal/dashboard/core/domain"
)

const (
	topGeoLimit = 10
	mixTopN     = 4
)

func sumByDay(rows []domain.EventRow) map[string]int64 {
	out := make(map[string]int64)
	for _, r := range rows {
		out[r.Date] += r.Count
	}
	return out
}

// ReduceKPI expects days to be the 14-day window ending today.
func ReduceKPI(rows []domain.EventRow, days []string, yesterday string) domain.KPI {
	byDay := sumByDay(rows)

	half := len(days) / 2
	var last7, prev7 int64
	for i, d := range days {
		if i < half {
			prev7 += byDay[d]
		} else {
			last7 += byDay[d]
		}
	}

	var wow float64
	if prev7 != 0 {
		wow = float64(last7-prev7) / float64(prev7) * 100
	}

	return domain.KPI{
		Yesterday:    byDay[yesterday],
		Last7:        last7,
		WeekOverWeek: wow,
	}
}

func ReduceTrend(rows []domain.EventRow, days []string) domain.Trend {
	byDay := sumByDay(rows)
	series := make([]domain.TrendPoint, 0, len(days))
	for _, d := range days {
		series = append(series, domain.TrendPoint{Date: d, Label: domain.DayLabel(d), Events: byDay[d]})
	}
	return domain.Trend{Series: series}
}

// ReduceTopGeo ranks geo values of the given level on the most recent day
// present in rows. Equal totals keep their first-seen order.
func ReduceTopGeo(rows []domain.EventRow, level domain.GeoLevel) domain.TopGeo {
	res := domain.TopGeo{Title: domain.DefaultTopGeoTitle, Ranking: []domain.GeoRank{}}
	if len(rows) == 0 {
		return res
	}

	latest := rows[0].Date
	for _, r := range rows[1:] {
		if r.Date > latest {
			latest = r.Date
		}
	}

	totals := make(map[string]int64)
	var order []string
	for _, r := range rows {
		if r.Date != latest || !strings.EqualFold(r.GeoLevel, string(level)) {
			continue
		}
		label := r.GeoValue
		if label == "" {
			label = "Unknown"
		}
		if _, ok := totals[label]; !ok {
			order = append(order, label)
		}
		totals[label] += r.Count
	}

	ranking := make([]domain.GeoRank, 0, len(order))
	for _, label := range order {
		ranking = append(ranking, domain.GeoRank{Label: label, Events: totals[label]})
	}
	sort.SliceStable(ranking, func(i, j int) bool { return ranking[i].Events > ranking[j].Events })
	if len(ranking) > topGeoLimit {
		ranking = ranking[:topGeoLimit]
	}

	res.Title = fmt.Sprintf("Top 10 %s (%s)", level, latest)
	res.Ranking = ranking
	return res
}

// ReduceMix builds the event-name pie over the whole window and a per-day
// stack of the top events plus an other bucket.
func ReduceMix(rows []domain.EventRow, days []string) domain.Mix {
	totals := make(map[string]int64)
	var order []string
	byDayEvent := make(map[string]map[string]int64)
	for _, r := range rows {
		if _, ok := totals[r.EventName]; !ok {
			order = append(order, r.EventName)
		}
		totals[r.EventName] += r.Count

		day := byDayEvent[r.Date]
		if day == nil {
			day = make(map[string]int64)
			byDayEvent[r.Date] = day
		}
		day[r.EventName] += r.Count
	}

	pie := make([]domain.PieSlice, 0, len(order))
	for _, name := range order {
		pie = append(pie, domain.PieSlice{Name: name, Value: totals[name]})
	}
	sort.SliceStable(pie, func(i, j int) bool { return pie[i].Value > pie[j].Value })

	top := make([]string, 0, mixTopN)
	isTop := make(map[string]bool, mixTopN)
	for i := 0; i < len(pie) && i < mixTopN; i++ {
		top = append(top, pie[i].Name)
		isTop[pie[i].Name] = true
	}

	stack := make([]domain.StackDay, 0, len(days))
	for _, d := range days {
		sd := domain.StackDay{Date: d, Label: domain.DayLabel(d), Events: make(map[string]int64, len(top))}
		for _, name := range top {
			sd.Events[name] = 0
		}
		for name, n := range byDayEvent[d] {
			if isTop[name] {
				sd.Events[name] += n
			} else {
				sd.Other += n
			}
		}
		stack = append(stack, sd)
	}

	return domain.Mix{Pie: pie, TopEvents: top, Stack: stack}
}

// emptyViews is the all-zero result used when no site is enabled.
func emptyViews(trendDays []string) domain.Views {
	return domain.Views{
		KPI:    domain.KPI{},
		Trend:  ReduceTrend(nil, trendDays),
		TopGeo: domain.TopGeo{Title: domain.DefaultTopGeoTitle, Ranking: []domain.GeoRank{}},
		Mix:    domain.Mix{Pie: []domain.PieSlice{}, TopEvents: []string{}, Stack: []domain.StackDay{}},
	}
}
