package analytics

import (
	"sort"
	"time"

	"github.com/MatiasdeBuren/consorcio-console/internal/dtos"
)

// HourCount is one bar of the per-hour reservations chart.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// HourlyCounts buckets reservations by their local start hour. The input is
// assumed already filtered by date/amenity; hours with no reservations are
// included so charts render a full axis.
func HourlyCounts(reservations []dtos.Reservation) []HourCount {
	counts := make([]HourCount, 24)
	for h := range counts {
		counts[h].Hour = h
	}
	for _, r := range reservations {
		counts[r.StartsAt.Hour()].Count++
	}
	return counts
}

// AmenitySummary aggregates one amenity's reservations for the stats panel.
type AmenitySummary struct {
	AmenityID          int     `json:"amenityId"`
	AmenityName        string  `json:"amenityName"`
	Total              int     `json:"total"`
	PeakHour           int     `json:"peakHour"`
	AverageDurationMin float64 `json:"averageDurationMin"`
	UtilizationPercent float64 `json:"utilizationPercent"`
}

// AmenitySummaries computes per-amenity peak hour, average duration and
// utilization over the given window (typically the length of the day view).
// Results are ordered by amenity id.
func AmenitySummaries(reservations []dtos.Reservation, window time.Duration) []AmenitySummary {
	type acc struct {
		name     string
		total    int
		duration time.Duration
		byHour   [24]int
	}
	byAmenity := make(map[int]*acc)
	for _, r := range reservations {
		a, ok := byAmenity[r.AmenityID]
		if !ok {
			a = &acc{name: r.AmenityName}
			byAmenity[r.AmenityID] = a
		}
		a.total++
		if r.EndsAt.After(r.StartsAt) {
			a.duration += r.EndsAt.Sub(r.StartsAt)
		}
		a.byHour[r.StartsAt.Hour()]++
	}

	summaries := make([]AmenitySummary, 0, len(byAmenity))
	for id, a := range byAmenity {
		peak := 0
		for h := 1; h < 24; h++ {
			if a.byHour[h] > a.byHour[peak] {
				peak = h
			}
		}
		s := AmenitySummary{
			AmenityID:   id,
			AmenityName: a.name,
			Total:       a.total,
			PeakHour:    peak,
		}
		if a.total > 0 {
			s.AverageDurationMin = a.duration.Minutes() / float64(a.total)
		}
		if window > 0 {
			s.UtilizationPercent = 100 * a.duration.Minutes() / window.Minutes()
		}
		summaries = append(summaries, s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].AmenityID < summaries[j].AmenityID
	})
	return summaries
}
