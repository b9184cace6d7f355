// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingStatusChangedEvent is published whenever a booking moves to a
// new status (accepted, declined, cancelled or completed).  It carries
// enough context for downstream consumers to log or notify without
// querying the primary database.
type BookingStatusChangedEvent struct {
	BookingID        uint64 `json:"booking_id"`
	Reference        string `json:"reference"`
	VehicleID        uint64 `json:"vehicle_id"`
	VehicleName      string `json:"vehicle_name"`
	RenterID         uint64 `json:"renter_id"`
	FromStatus       string `json:"from_status"`
	ToStatus         string `json:"to_status"`
	TotalAmountCents int64  `json:"total_amount_cents"`
	OccurredAt       string `json:"occurred_at"`
}
