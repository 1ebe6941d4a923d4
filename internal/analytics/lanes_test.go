package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatiasdeBuren/consorcio-console/internal/dtos"
)

var day = time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func reservation(id, amenityID int, start, end time.Time) dtos.Reservation {
	return dtos.Reservation{
		ID:          id,
		AmenityID:   amenityID,
		AmenityName: "Pileta",
		StartsAt:    start,
		EndsAt:      end,
		Status:      dtos.ReservationApproved,
	}
}

func TestSegmentsCoalesceIdenticalSlots(t *testing.T) {
	reservations := []dtos.Reservation{
		reservation(1, 1, at(10, 0), at(11, 0)),
		reservation(2, 1, at(10, 0), at(11, 0)),
		reservation(3, 1, at(10, 0), at(11, 0)),
		reservation(4, 1, at(11, 0), at(12, 0)),
		// Same slot, different amenity: stays separate.
		reservation(5, 2, at(10, 0), at(11, 0)),
	}

	segments := SegmentsFromReservations(reservations)
	require.Len(t, segments, 3)

	assert.Equal(t, 1, segments[0].AmenityID)
	assert.Equal(t, 3, segments[0].Count)
	assert.Equal(t, 2, segments[1].AmenityID)
	assert.Equal(t, 1, segments[1].Count)
	assert.Equal(t, at(11, 0), segments[2].Start)
}

func TestSegmentsOrderedByStartThenEndThenAmenity(t *testing.T) {
	reservations := []dtos.Reservation{
		reservation(1, 3, at(9, 0), at(10, 0)),
		reservation(2, 1, at(9, 0), at(12, 0)),
		reservation(3, 1, at(8, 0), at(9, 30)),
		reservation(4, 1, at(9, 0), at(10, 0)),
	}

	segments := SegmentsFromReservations(reservations)
	require.Len(t, segments, 4)
	assert.Equal(t, at(8, 0), segments[0].Start)
	assert.Equal(t, 1, segments[1].AmenityID)
	assert.Equal(t, 3, segments[2].AmenityID)
	assert.Equal(t, at(12, 0), segments[3].End)
}

func TestAssignLanesNoOverlapWithinLane(t *testing.T) {
	reservations := []dtos.Reservation{
		reservation(1, 1, at(9, 0), at(11, 0)),
		reservation(2, 1, at(10, 0), at(12, 0)),
		reservation(3, 1, at(10, 30), at(11, 30)),
		reservation(4, 1, at(11, 0), at(13, 0)),
		reservation(5, 2, at(9, 30), at(10, 30)),
		reservation(6, 2, at(12, 0), at(14, 0)),
	}

	placed := AssignLanes(SegmentsFromReservations(reservations))
	require.Len(t, placed, 6)

	for i := range placed {
		for j := i + 1; j < len(placed); j++ {
			if placed[i].Lane == placed[j].Lane {
				assert.False(t, overlaps(placed[i], placed[j]),
					"segments %v and %v share lane %d but overlap", placed[i], placed[j], placed[i].Lane)
			}
		}
	}
}

func TestAssignLanesReusesFreedLanes(t *testing.T) {
	// Back-to-back slots share a lane: [9,10) and [10,11) do not overlap.
	segments := []Segment{
		{AmenityID: 1, Start: at(9, 0), End: at(10, 0), Count: 1},
		{AmenityID: 1, Start: at(10, 0), End: at(11, 0), Count: 1},
		{AmenityID: 1, Start: at(9, 30), End: at(10, 30), Count: 1},
	}

	placed := AssignLanes(segments)
	require.Len(t, placed, 3)
	assert.Equal(t, 0, placed[0].Lane)
	assert.Equal(t, 1, placed[1].Lane) // 9:30-10:30 overlaps the first
	assert.Equal(t, 0, placed[2].Lane) // 10:00-11:00 fits back into lane 0

	maxLane := 0
	for _, s := range placed {
		if s.Lane > maxLane {
			maxLane = s.Lane
		}
	}
	assert.Equal(t, 1, maxLane)
}

func TestAssignLanesEmptyInput(t *testing.T) {
	assert.Empty(t, AssignLanes(nil))
	assert.Empty(t, SegmentsFromReservations(nil))
}
