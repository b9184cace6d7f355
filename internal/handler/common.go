// Package handler implements the HTTP handlers behind the REST
// surface.  Handlers assume JWT authentication and role validation
// have already run in middleware; they read the authenticated
// identity from the echo context.
package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/driveloop/vehicle-rental/internal/model"
	"github.com/driveloop/vehicle-rental/internal/repository"
)

// validate checks the binding structs' `validate` tags.  A single
// instance caches struct metadata across requests.
var validate = validator.New()

// wireDate is the yyyy-MM-dd format bookings use on the wire.
const wireDate = "2006-01-02"

// getUserID extracts the user_id from echo.Context and converts it to
// uint64.  JWT numeric claims decode as float64, so several encodings
// have to be tolerated.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// vehicleResp is the JSON shape of a vehicle in every response.
type vehicleResp struct {
	ID              uint64   `json:"id"`
	OwnerID         uint64   `json:"owner_id"`
	Name            string   `json:"name"`
	Brand           string   `json:"brand"`
	Model           string   `json:"model"`
	Year            int      `json:"year"`
	Category        string   `json:"category"`
	Description     string   `json:"description"`
	Location        string   `json:"location"`
	Features        []string `json:"features"`
	PriceDayCents   int64    `json:"price_per_day_cents"`
	PriceWeekCents  *int64   `json:"price_per_week_cents,omitempty"`
	PriceMonthCents *int64   `json:"price_per_month_cents,omitempty"`
	Availability    bool     `json:"availability"`
	Rating          *float64 `json:"rating,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

func toVehicleResp(v model.Vehicle) vehicleResp {
	features := v.Features
	if features == nil {
		features = []string{}
	}
	return vehicleResp{
		ID:              v.ID,
		OwnerID:         v.OwnerID,
		Name:            v.Name,
		Brand:           v.Brand,
		Model:           v.Model,
		Year:            v.Year,
		Category:        v.Category,
		Description:     v.Description,
		Location:        v.Location,
		Features:        features,
		PriceDayCents:   v.PriceDayCents,
		PriceWeekCents:  v.PriceWeekCents,
		PriceMonthCents: v.PriceMonthCents,
		Availability:    v.Available,
		Rating:          v.Rating,
		CreatedAt:       v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toVehicleResps(list []model.Vehicle) []vehicleResp {
	out := make([]vehicleResp, 0, len(list))
	for _, v := range list {
		out = append(out, toVehicleResp(v))
	}
	return out
}

// bookingResp is the JSON shape of a booking in every response.
// Dates travel as yyyy-MM-dd strings.
type bookingResp struct {
	ID               uint64 `json:"id"`
	Reference        string `json:"reference"`
	VehicleID        uint64 `json:"vehicle_id"`
	VehicleName      string `json:"vehicle_name,omitempty"`
	VehicleLocation  string `json:"vehicle_location,omitempty"`
	RenterID         uint64 `json:"renter_id"`
	RenterName       string `json:"renter_name,omitempty"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	Status           string `json:"status"`
	TotalAmountCents int64  `json:"total_amount_cents"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

func toBookingResp(row repository.BookingRow) bookingResp {
	return bookingResp{
		ID:               row.ID,
		Reference:        row.Reference,
		VehicleID:        row.VehicleID,
		VehicleName:      row.VehicleName,
		VehicleLocation:  row.VehicleLocation,
		RenterID:         row.RenterID,
		RenterName:       row.RenterName,
		StartDate:        row.StartDate.Format(wireDate),
		EndDate:          row.EndDate.Format(wireDate),
		Status:           row.Status,
		TotalAmountCents: row.TotalAmountCents,
		CreatedAt:        row.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        row.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toBookingResps(rows []repository.BookingRow) []bookingResp {
	out := make([]bookingResp, 0, len(rows))
	for _, row := range rows {
		out = append(out, toBookingResp(row))
	}
	return out
}
