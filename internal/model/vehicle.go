package model

import "time"

// Vehicle represents a listed vehicle as stored in the `vehicles`
// table.  Every vehicle belongs to exactly one owner.  Prices are
// stored in cents; the daily rate is mandatory while the weekly and
// monthly rates are optional discount tiers.  A missing tier simply
// never applies (the pricing calculator falls through to the next
// cheaper one).  The weekly/monthly rates are expected, but not
// enforced, to undercut 7 and 30 daily rates respectively.
//
// Fields:
//  ID             – primary key identifier.
//  OwnerID        – user who listed the vehicle.
//  Name           – display name of the listing (e.g. "Red Sedan").
//  Brand          – manufacturer name.
//  Model          – model name.
//  Year           – model year.
//  Category       – listing category (sedan, suv, bike, ...).
//  Description    – free-text description.
//  Location       – city or area where the vehicle is picked up.
//  Features       – JSON-encoded array of feature strings.
//  PriceDayCents  – mandatory daily rate in cents (> 0).
//  PriceWeekCents – optional weekly rate in cents.
//  PriceMonthCents– optional monthly rate in cents.
//  Available      – owner-toggled availability flag.  It is never
//                   derived from booking state.
//  Rating         – average review rating, populated by JOIN when
//                   the vehicle has at least one review.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Vehicle struct {
	ID              uint64    // vehicles.id
	OwnerID         uint64    // vehicles.owner_id
	Name            string    // vehicles.name
	Brand           string    // vehicles.brand
	Model           string    // vehicles.model
	Year            int       // vehicles.year
	Category        string    // vehicles.category
	Description     string    // vehicles.description
	Location        string    // vehicles.location
	Features        []string  // vehicles.features (JSON column)
	PriceDayCents   int64     // vehicles.price_day_cents
	PriceWeekCents  *int64    // vehicles.price_week_cents (nullable)
	PriceMonthCents *int64    // vehicles.price_month_cents (nullable)
	Available       bool      // vehicles.available
	Rating          *float64  // AVG(reviews.rating), nil when unreviewed
	CreatedAt       time.Time // vehicles.created_at
	UpdatedAt       time.Time // vehicles.updated_at
}

// Review is a renter's rating of a vehicle, stored in the `reviews`
// table.  Average ratings feed the owner dashboard.
//
// Fields:
//  ID        – primary key identifier.
//  VehicleID – vehicle being reviewed.
//  UserID    – author of the review.
//  Rating    – star rating 1..5.
//  Comment   – free-text comment.
//  CreatedAt – creation timestamp.
type Review struct {
	ID        uint64    // reviews.id
	VehicleID uint64    // reviews.vehicle_id
	UserID    uint64    // reviews.user_id
	Rating    uint8     // reviews.rating
	Comment   string    // reviews.comment
	CreatedAt time.Time // reviews.created_at
}
