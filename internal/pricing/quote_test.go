package pricing

import (
	"testing"
	"time"
)

func ptr(v int64) *int64 { return &v }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBillableDays(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"three days", date(2025, 6, 1), date(2025, 6, 4), 3},
		{"same day floors to one", date(2025, 6, 1), date(2025, 6, 1), 1},
		{"inverted range uses absolute difference", date(2025, 6, 4), date(2025, 6, 1), 3},
		{"partial day rounds up", date(2025, 6, 1), date(2025, 6, 2).Add(6 * time.Hour), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BillableDays(tc.start, tc.end); got != tc.want {
				t.Fatalf("BillableDays = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestForDaysTierSelection(t *testing.T) {
	rates := Rates{DayCents: 100_00, WeekCents: ptr(600_00), MonthCents: ptr(2200_00)}

	cases := []struct {
		name  string
		days  int
		rates Rates
		want  int64
	}{
		{"under a week bills daily", 5, rates, 5 * 100_00},
		{"ten days bills one week plus three days", 10, rates, 600_00 + 3*100_00},
		{"thirty five days bills one month plus five days", 35, rates, 2200_00 + 5*100_00},
		{"exactly one week", 7, rates, 600_00},
		{"exactly two months", 60, rates, 2 * 2200_00},
		{"zero days floors to one", 0, rates, 100_00},
		{"no monthly rate falls through to weekly", 35,
			Rates{DayCents: 100_00, WeekCents: ptr(600_00)}, 5*600_00},
		{"no tiers at all bills daily", 35,
			Rates{DayCents: 100_00}, 35 * 100_00},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := ForDays(tc.days, tc.rates)
			if q.TotalCents != tc.want {
				t.Fatalf("ForDays(%d) total = %d, want %d", tc.days, q.TotalCents, tc.want)
			}
			if q.TotalCents < 0 {
				t.Fatalf("total must be non-negative")
			}
		})
	}
}

func TestCalculateDecomposition(t *testing.T) {
	rates := Rates{DayCents: 50_00, WeekCents: ptr(300_00)}
	q := Calculate(date(2025, 3, 1), date(2025, 3, 11), rates) // 10 days
	if q.Days != 10 || q.Weeks != 1 || q.RemainderDays != 3 || q.Months != 0 {
		t.Fatalf("unexpected decomposition: %+v", q)
	}
	if q.TotalCents != 300_00+3*50_00 {
		t.Fatalf("total = %d", q.TotalCents)
	}
}
