package handler

import (
	"database/sql"

	"github.com/labstack/echo/v4"

	"github.com/driveloop/vehicle-rental/internal/booking"
	"github.com/driveloop/vehicle-rental/internal/repository"
)

// AdminBookingHandler serves back-office booking operations.
type AdminBookingHandler struct {
	DB       *sql.DB
	Bookings *repository.BookingRepo
}

func NewAdminBookingHandler(db *sql.DB, b *repository.BookingRepo) *AdminBookingHandler {
	return &AdminBookingHandler{DB: db, Bookings: b}
}

// Complete marks a confirmed booking as completed once the rental
// period is over.  Admins may complete any booking, so the party
// check always passes.
func (h *AdminBookingHandler) Complete(c echo.Context) error {
	return applyBookingAction(c, h.DB, h.Bookings, booking.ActionComplete, booking.RoleAdmin, anyParty)
}

func anyParty(repository.BookingRow, uint64) bool { return true }
