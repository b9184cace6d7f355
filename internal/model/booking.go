package model

import "time"

// Booking records a renter's request to rent a vehicle over a date
// range, stored in the `bookings` table.  The range is inclusive at
// both ends on the wire (yyyy-MM-dd dates); the billed duration is
// computed by the pricing package when the booking is created and
// frozen in TotalAmountCents.  Status values and the transitions
// between them are owned by the booking package; this struct only
// mirrors the column.
//
// Fields:
//  ID               – primary key identifier.
//  Reference        – public UUID handed to clients instead of the
//                     numeric id.
//  VehicleID        – vehicle being rented.
//  RenterID         – user who requested the booking.
//  StartDate        – first day of the rental.
//  EndDate          – last day of the rental.
//  Status           – lifecycle state ("pending", "confirmed",
//                     "cancelled", "completed").
//  TotalAmountCents – total price in cents, fixed at creation.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Booking struct {
	ID               uint64    // bookings.id
	Reference        string    // bookings.reference (UUID)
	VehicleID        uint64    // bookings.vehicle_id
	RenterID         uint64    // bookings.renter_id
	StartDate        time.Time // bookings.start_date (DATE)
	EndDate          time.Time // bookings.end_date (DATE)
	Status           string    // bookings.status
	TotalAmountCents int64     // bookings.total_amount_cents
	CreatedAt        time.Time // bookings.created_at
	UpdatedAt        time.Time // bookings.updated_at
}

// BookingStatus exposes the status column for the projection helpers
// in the booking package.
func (b Booking) BookingStatus() string { return b.Status }
