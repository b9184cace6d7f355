// Package repository implements raw-SQL data access for the rental
// marketplace.  This file defines sentinel errors reused across the
// repositories so that handlers can distinguish failure scenarios.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate this into an HTTP 403
// response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be performed
// because of conflicting state, such as deleting a vehicle that still
// has pending or confirmed bookings. Handlers translate this into an
// HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrVehicleUnavailable is returned when a booking is requested for a
// vehicle whose owner has switched the availability flag off.
var ErrVehicleUnavailable = errors.New("vehicle unavailable")
