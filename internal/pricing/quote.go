// Package pricing derives the total rental price from a date range
// and a vehicle's tiered rates.  All functions are pure.
package pricing

import "time"

const (
	daysPerWeek  = 7
	daysPerMonth = 30
)

// Rates carries a vehicle's price tiers in cents.  DayCents is
// mandatory; WeekCents and MonthCents are optional discount tiers and
// a nil tier never applies.
type Rates struct {
	DayCents   int64
	WeekCents  *int64
	MonthCents *int64
}

// Quote is the result of a price calculation.  Months/Weeks and
// RemainderDays describe how the duration was decomposed: at most one
// of Months and Weeks is non-zero because tier selection picks a
// single tier.
type Quote struct {
	Days          int   `json:"days"`
	Months        int   `json:"months"`
	Weeks         int   `json:"weeks"`
	RemainderDays int   `json:"remainder_days"`
	TotalCents    int64 `json:"total_cents"`
}

// BillableDays returns the billed duration for a date range: the
// ceiling of the absolute difference in whole days, floored at one.
// A same-day rental bills for a single day.  Inverted ranges are
// rejected by callers before quoting; the absolute value here only
// keeps the result non-negative for unvalidated input.
func BillableDays(start, end time.Time) int {
	d := end.Sub(start)
	if d < 0 {
		d = -d
	}
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// Calculate quotes a rental over [start, end] against the given
// rates.  Tier selection runs in priority order: whole months at the
// monthly rate when the duration reaches 30 days and a monthly rate
// exists, else whole weeks at the weekly rate when it reaches 7 days
// and a weekly rate exists, else the daily rate throughout.  The
// remainder after whole tiers always bills at the daily rate.
func Calculate(start, end time.Time, r Rates) Quote {
	return ForDays(BillableDays(start, end), r)
}

// ForDays quotes an already-computed billable duration.
func ForDays(days int, r Rates) Quote {
	if days < 1 {
		days = 1
	}
	q := Quote{Days: days}
	switch {
	case days >= daysPerMonth && r.MonthCents != nil:
		q.Months = days / daysPerMonth
		q.RemainderDays = days % daysPerMonth
		q.TotalCents = int64(q.Months)*(*r.MonthCents) + int64(q.RemainderDays)*r.DayCents
	case days >= daysPerWeek && r.WeekCents != nil:
		q.Weeks = days / daysPerWeek
		q.RemainderDays = days % daysPerWeek
		q.TotalCents = int64(q.Weeks)*(*r.WeekCents) + int64(q.RemainderDays)*r.DayCents
	default:
		q.RemainderDays = days
		q.TotalCents = int64(days) * r.DayCents
	}
	return q
}
