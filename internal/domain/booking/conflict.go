package booking

import (
	"sort"

	"github.com/google/uuid"
)

// Overlapping is the conflict detector: it returns every non-cancelled
// booking on the given resource whose interval intersects the candidate
// interval. Bookings on other resources never conflict, and the booking
// identified by exclude (the candidate itself on re-evaluation) is skipped.
//
// Results are ordered by start time, then by id, so callers get a
// deterministic conflict set.
func Overlapping(resourceID uuid.UUID, candidate Interval, existing []*Booking, exclude uuid.UUID) []*Booking {
	var hits []*Booking
	for _, b := range existing {
		if b.ID() == exclude || b.ResourceID() != resourceID || !b.IsActive() {
			continue
		}
		if candidate.Overlaps(b.Interval()) {
			hits = append(hits, b)
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		si, sj := hits[i].Interval().Start(), hits[j].Interval().Start()
		if si.Equal(sj) {
			return hits[i].ID().String() < hits[j].ID().String()
		}
		return si.Before(sj)
	})
	return hits
}
