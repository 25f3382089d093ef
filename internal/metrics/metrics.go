// Package metrics holds the pure transforms from a building's
// measurement tree into chart-ready and ranking-ready shapes. Every
// function is deterministic and side-effect free.
package metrics

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/crackwatch/monitor-service/internal/models"
)

const (
	RiskLevelLow    = "low"
	RiskLevelMedium = "medium"
	RiskLevelHigh   = "high"

	// Inclusive lower bounds, mm/week.
	highThreshold   = 1.6
	mediumThreshold = 0.7
)

const dateLayout = "2006-01-02"

// SeriesRow is one x-axis point of the crack-width time series: a
// date plus one column per waypoint that has a reading on that date.
// Waypoints without a reading leave their column absent, not zero.
type SeriesRow struct {
	Date   string             `json:"date"`
	Widths map[string]float64 `json:"widths"`
}

// RiskPoint ranks a waypoint by the week-normalized slope of its two
// most recent readings.
type RiskPoint struct {
	ID                  string  `json:"id"` // display token, e.g. "WP 3"
	WaypointID          string  `json:"waypointId"`
	Rate                string  `json:"rate"` // e.g. "1.4mm/week"
	GrowthRateMmPerWeek float64 `json:"growthRateMmPerWeek"`
	RiskLevel           string  `json:"riskLevel"`
	LatestWidthMM       float64 `json:"width"`
}

var wpTokenRe = regexp.MustCompile(`WP \d+$`)

// WaypointToken reduces a waypoint label to its trailing "WP n" token.
// Labels without such a token are used verbatim.
func WaypointToken(label string) string {
	if m := wpTokenRe.FindString(label); m != "" {
		return m
	}
	return label
}

// TimeSeries groups every (waypoint, measurement) pair by date and
// emits one row per distinct date, sorted ascending. If a waypoint has
// two readings on the same date the later array entry overwrites the
// earlier one.
func TimeSeries(b *models.Building) []SeriesRow {
	if b == nil || len(b.Measurements) == 0 {
		return nil
	}

	byDate := make(map[string]map[string]float64)
	for _, wp := range b.Measurements {
		for _, m := range wp.Measurements {
			if byDate[m.Date] == nil {
				byDate[m.Date] = make(map[string]float64)
			}
			byDate[m.Date][wp.Label] = m.WidthMM
		}
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	// YYYY-MM-DD sorts chronologically as plain strings.
	sort.Strings(dates)

	rows := make([]SeriesRow, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, SeriesRow{Date: d, Widths: byDate[d]})
	}
	return rows
}

// RiskRanking computes a RiskPoint per waypoint and orders the result
// by descending growth rate. The sort is stable: ties keep waypoint
// input order.
func RiskRanking(b *models.Building) []RiskPoint {
	if b == nil || len(b.Measurements) == 0 {
		return nil
	}

	points := make([]RiskPoint, 0, len(b.Measurements))
	for _, wp := range b.Measurements {
		rate, latest := growthRate(wp.Measurements)

		level := RiskLevelLow
		switch {
		case rate >= highThreshold:
			level = RiskLevelHigh
		case rate >= mediumThreshold:
			level = RiskLevelMedium
		}

		points = append(points, RiskPoint{
			ID:                  WaypointToken(wp.Label),
			WaypointID:          wp.ID,
			Rate:                FormatRate(rate),
			GrowthRateMmPerWeek: rate,
			RiskLevel:           level,
			LatestWidthMM:       latestWidth(latest),
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].GrowthRateMmPerWeek > points[j].GrowthRateMmPerWeek
	})
	return points
}

// FormatRate renders a growth rate the way the ranking card shows it.
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.1fmm/week", rate)
}

// growthRate sorts the readings ascending by date (stable, so array
// order breaks same-date ties) and slopes the last two. Fewer than two
// readings, or two readings on the same date, yield 0 rather than a
// non-finite value.
func growthRate(measurements []models.Measurement) (float64, *models.Measurement) {
	if len(measurements) == 0 {
		return 0, nil
	}

	sorted := make([]models.Measurement, len(measurements))
	copy(sorted, measurements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	latest := sorted[len(sorted)-1]
	if len(sorted) < 2 {
		return 0, &latest
	}
	previous := sorted[len(sorted)-2]

	days := daysBetween(previous.Date, latest.Date)
	if days <= 0 {
		return 0, &latest
	}

	widthDiff := latest.WidthMM - previous.WidthMM
	return widthDiff / days * 7, &latest
}

func latestWidth(m *models.Measurement) float64 {
	if m == nil {
		return 0
	}
	return m.WidthMM
}

func daysBetween(from, to string) float64 {
	a, errA := time.Parse(dateLayout, from)
	b, errB := time.Parse(dateLayout, to)
	if errA != nil || errB != nil {
		return 0
	}
	return b.Sub(a).Hours() / 24
}
