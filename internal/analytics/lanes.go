package analytics

import (
	"sort"
	"time"

	"github.com/MatiasdeBuren/consorcio-console/internal/dtos"
)

// Segment is one bar of the day timeline. Identical (start, end, amenity)
// reservations are coalesced into one segment with Count > 1, rendered as a
// single bar with an aggregate tooltip instead of stacked duplicates.
type Segment struct {
	AmenityID   int       `json:"amenityId"`
	AmenityName string    `json:"amenityName"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Count       int       `json:"count"`
	Lane        int       `json:"lane"`
}

// overlaps is the half-open interval intersection test over [start, end).
func overlaps(a, b Segment) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// SegmentsFromReservations coalesces reservations into timeline segments.
// Order is by start time, then end time, then amenity id.
func SegmentsFromReservations(reservations []dtos.Reservation) []Segment {
	type key struct {
		amenityID  int
		start, end int64
	}
	grouped := make(map[key]*Segment)
	order := make([]key, 0, len(reservations))
	for _, r := range reservations {
		k := key{r.AmenityID, r.StartsAt.UnixNano(), r.EndsAt.UnixNano()}
		if seg, ok := grouped[k]; ok {
			seg.Count++
			continue
		}
		grouped[k] = &Segment{
			AmenityID:   r.AmenityID,
			AmenityName: r.AmenityName,
			Start:       r.StartsAt,
			End:         r.EndsAt,
			Count:       1,
		}
		order = append(order, k)
	}

	segments := make([]Segment, 0, len(order))
	for _, k := range order {
		segments = append(segments, *grouped[k])
	}
	sort.Slice(segments, func(i, j int) bool {
		if !segments[i].Start.Equal(segments[j].Start) {
			return segments[i].Start.Before(segments[j].Start)
		}
		if !segments[i].End.Equal(segments[j].End) {
			return segments[i].End.Before(segments[j].End)
		}
		return segments[i].AmenityID < segments[j].AmenityID
	})
	return segments
}

// AssignLanes places segments into visual rows so overlapping segments never
// share a lane. Greedy first fit over segments sorted by start time; not a
// minimum coloring, but stable and good enough for rendering.
func AssignLanes(segments []Segment) []Segment {
	out := make([]Segment, len(segments))
	copy(out, segments)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].End.Before(out[j].End)
	})

	var lanes [][]Segment
	for i := range out {
		placed := false
		for laneIdx := range lanes {
			conflict := false
			for _, existing := range lanes[laneIdx] {
				if overlaps(out[i], existing) {
					conflict = true
					break
				}
			}
			if !conflict {
				out[i].Lane = laneIdx
				lanes[laneIdx] = append(lanes[laneIdx], out[i])
				placed = true
				break
			}
		}
		if !placed {
			out[i].Lane = len(lanes)
			lanes = append(lanes, []Segment{out[i]})
		}
	}
	return out
}
