package booking

import (
	"github.com/driveloop/vehicle-rental/internal/model"
)

// FilterAll is the filter token that selects every booking.
const FilterAll = "all"

// StatusHolder is anything carrying a booking status.  model.Booking
// implements it, as do repository rows that embed one.
type StatusHolder interface {
	BookingStatus() string
}

// FilterByStatus returns the subset of list whose status equals
// filter, preserving input order.  An empty filter or FilterAll is
// the identity projection.  The predicate is a plain equality check,
// so filtering an already-filtered slice by the same token returns an
// equal slice.
func FilterByStatus[B StatusHolder](list []B, filter string) []B {
	if filter == "" || filter == FilterAll {
		return list
	}
	out := make([]B, 0, len(list))
	for _, b := range list {
		if b.BookingStatus() == filter {
			out = append(out, b)
		}
	}
	return out
}

// Stats are the owner dashboard aggregates derived from a booking
// collection and the ratings reported by the owner's vehicles.
type Stats struct {
	PendingRequests    int     `json:"pending_requests"`
	ActiveBookings     int     `json:"active_bookings"`
	TotalEarningsCents int64   `json:"total_earnings_cents"`
	AverageRating      float64 `json:"average_rating"`
}

// OwnerStats computes dashboard aggregates in a single pass:
// pending-request count, active (confirmed) count, cumulative
// earnings over confirmed and completed bookings, and the mean of
// ratings.  Vehicles without a rating contribute nothing to the
// average; with no rated vehicles the average is zero.
func OwnerStats(bookings []model.Booking, ratings []float64) Stats {
	var s Stats
	for _, b := range bookings {
		switch Status(b.Status) {
		case StatusPending:
			s.PendingRequests++
		case StatusConfirmed:
			s.ActiveBookings++
			s.TotalEarningsCents += b.TotalAmountCents
		case StatusCompleted:
			s.TotalEarningsCents += b.TotalAmountCents
		}
	}
	if len(ratings) > 0 {
		var sum float64
		for _, r := range ratings {
			sum += r
		}
		s.AverageRating = sum / float64(len(ratings))
	}
	return s
}
