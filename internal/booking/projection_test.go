package booking

import (
	"reflect"
	"testing"

	"github.com/driveloop/vehicle-rental/internal/model"
)

func sample() []model.Booking {
	return []model.Booking{
		{ID: 1, Status: "confirmed", TotalAmountCents: 500_00},
		{ID: 2, Status: "pending", TotalAmountCents: 300_00},
		{ID: 3, Status: "completed", TotalAmountCents: 200_00},
		{ID: 4, Status: "cancelled", TotalAmountCents: 150_00},
		{ID: 5, Status: "pending", TotalAmountCents: 75_00},
	}
}

func TestFilterByStatus(t *testing.T) {
	list := sample()

	got := FilterByStatus(list, "pending")
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 5 {
		t.Fatalf("pending filter lost order or entries: %+v", got)
	}

	// identity projections
	if !reflect.DeepEqual(FilterByStatus(list, ""), list) {
		t.Fatalf("empty filter must be identity")
	}
	if !reflect.DeepEqual(FilterByStatus(list, FilterAll), list) {
		t.Fatalf("all filter must be identity")
	}
}

func TestFilterByStatusIdempotent(t *testing.T) {
	once := FilterByStatus(sample(), "confirmed")
	twice := FilterByStatus(once, "confirmed")
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filtering an already-filtered set changed it: %+v vs %+v", once, twice)
	}
}

func TestOwnerStatsEarnings(t *testing.T) {
	bookings := []model.Booking{
		{Status: "confirmed", TotalAmountCents: 500},
		{Status: "pending", TotalAmountCents: 300},
		{Status: "completed", TotalAmountCents: 200},
	}
	s := OwnerStats(bookings, nil)
	if s.TotalEarningsCents != 700 {
		t.Fatalf("earnings = %d, want 700 (pending excluded)", s.TotalEarningsCents)
	}
	if s.PendingRequests != 1 || s.ActiveBookings != 1 {
		t.Fatalf("counts = %+v", s)
	}
	if s.AverageRating != 0 {
		t.Fatalf("no ratings must average to zero")
	}
}

func TestOwnerStatsAverageRating(t *testing.T) {
	s := OwnerStats(nil, []float64{4, 5, 3})
	if s.AverageRating != 4 {
		t.Fatalf("average = %f, want 4", s.AverageRating)
	}
}
