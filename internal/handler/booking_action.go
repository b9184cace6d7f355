package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/driveloop/vehicle-rental/internal/booking"
	"github.com/driveloop/vehicle-rental/internal/queue"
	"github.com/driveloop/vehicle-rental/internal/repository"
	queue_publisher "github.com/driveloop/vehicle-rental/internal/service"
)

// partyCheck reports whether the caller is the right party to act on
// the booking (its renter, the vehicle's owner, or anyone for admin
// actions).
type partyCheck func(row repository.BookingRow, callerID uint64) bool

// applyBookingAction is the single path every status change goes
// through: lock the row, verify the caller's relation to it, run the
// transition rules, persist and publish.  An illegal transition maps
// to 409 with the rule's reason; a wrong party maps to 403.
func applyBookingAction(c echo.Context, db *sql.DB, bookings *repository.BookingRepo, action booking.Action, role booking.Role, owns partyCheck) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	row, err := bookings.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !owns(row, uid) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your booking"})
	}

	next, err := booking.Transition(booking.Status(row.Status), action, role)
	if err != nil {
		var te *booking.TransitionError
		if errors.As(err, &te) {
			return c.JSON(http.StatusConflict, echo.Map{"error": te.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transition failed"})
	}

	if err := bookings.UpdateStatusTx(ctx, tx, row.ID, string(next)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	// Broker failures never fail the request.
	_ = queue_publisher.PublishBookingStatusChanged(ctx, queue.BookingStatusChangedEvent{
		BookingID:        row.ID,
		Reference:        row.Reference,
		VehicleID:        row.VehicleID,
		VehicleName:      row.VehicleName,
		RenterID:         row.RenterID,
		FromStatus:       row.Status,
		ToStatus:         string(next),
		TotalAmountCents: row.TotalAmountCents,
		OccurredAt:       time.Now().UTC().Format(time.RFC3339),
	})

	row.Status = string(next)
	return c.JSON(http.StatusOK, toBookingResp(row))
}
