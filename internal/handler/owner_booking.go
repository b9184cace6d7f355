package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/driveloop/vehicle-rental/internal/booking"
	"github.com/driveloop/vehicle-rental/internal/model"
	"github.com/driveloop/vehicle-rental/internal/repository"
)

// OwnerBookingHandler serves the owner side of the booking lifecycle:
// incoming request lists, accept/decline decisions and the dashboard
// aggregates.
type OwnerBookingHandler struct {
	DB       *sql.DB
	Bookings *repository.BookingRepo
	Vehicles *repository.VehicleRepo
}

func NewOwnerBookingHandler(db *sql.DB, b *repository.BookingRepo, v *repository.VehicleRepo) *OwnerBookingHandler {
	return &OwnerBookingHandler{DB: db, Bookings: b, Vehicles: v}
}

// List returns bookings against the owner's vehicles, newest first.
// ?status= narrows to one status; "all" or absence returns everything.
func (h *OwnerBookingHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Bookings.ListByOwner(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	rows = booking.FilterByStatus(rows, c.QueryParam("status"))
	return c.JSON(http.StatusOK, echo.Map{"bookings": toBookingResps(rows)})
}

// Accept moves a pending request on the owner's vehicle to confirmed.
func (h *OwnerBookingHandler) Accept(c echo.Context) error {
	return applyBookingAction(c, h.DB, h.Bookings, booking.ActionAccept, booking.RoleOwner, ownerOwns)
}

// Decline moves a pending request on the owner's vehicle to cancelled.
func (h *OwnerBookingHandler) Decline(c echo.Context) error {
	return applyBookingAction(c, h.DB, h.Bookings, booking.ActionDecline, booking.RoleOwner, ownerOwns)
}

func ownerOwns(row repository.BookingRow, callerID uint64) bool {
	return row.OwnerID == callerID
}

// Stats returns the owner dashboard aggregates: pending request count,
// active booking count, total earnings over confirmed and completed
// bookings, and the average rating across the owner's reviewed
// vehicles.
func (h *OwnerBookingHandler) Stats(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Bookings.ListByOwner(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	ratings, err := h.Vehicles.RatingsByOwner(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	list := make([]model.Booking, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.Booking)
	}
	return c.JSON(http.StatusOK, booking.OwnerStats(list, ratings))
}
