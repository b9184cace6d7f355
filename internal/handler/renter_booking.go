package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/driveloop/vehicle-rental/internal/booking"
	"github.com/driveloop/vehicle-rental/internal/model"
	"github.com/driveloop/vehicle-rental/internal/pricing"
	"github.com/driveloop/vehicle-rental/internal/repository"
)

// RenterBookingHandler serves the renter side: creating booking
// requests, listing them, cancelling pending ones and reviewing
// vehicles after a completed rental.
type RenterBookingHandler struct {
	DB       *sql.DB
	Bookings *repository.BookingRepo
	Reviews  *repository.ReviewRepo
}

func NewRenterBookingHandler(db *sql.DB, b *repository.BookingRepo, rv *repository.ReviewRepo) *RenterBookingHandler {
	return &RenterBookingHandler{DB: db, Bookings: b, Reviews: rv}
}

type createBookingReq struct {
	VehicleID uint64 `json:"vehicle_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

type createReviewReq struct {
	Rating  uint8  `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// Create inserts a pending booking request.  The vehicle row is locked
// while the price is computed so a concurrent availability toggle or
// rate change cannot race the insert.  Owners cannot book their own
// vehicles.
func (h *RenterBookingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	start, err := repository.ParseWireDate(req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_date, want yyyy-MM-dd"})
	}
	end, err := repository.ParseWireDate(req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_date, want yyyy-MM-dd"})
	}
	if end.Before(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date before start_date"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	ownerID, rates, available, err := h.Bookings.VehicleForBookingTx(ctx, tx, req.VehicleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if ownerID == uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "cannot book your own vehicle"})
	}
	if !available {
		return c.JSON(http.StatusConflict, echo.Map{"error": "vehicle unavailable"})
	}

	quote := pricing.Calculate(start, end, rates)

	b := model.Booking{
		Reference:        uuid.NewString(),
		VehicleID:        req.VehicleID,
		RenterID:         uid,
		StartDate:        start,
		EndDate:          end,
		Status:           string(booking.StatusPending),
		TotalAmountCents: quote.TotalCents,
	}
	if err := h.Bookings.CreateTx(ctx, tx, &b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	return c.JSON(http.StatusCreated, toBookingResp(repository.BookingRow{Booking: b, OwnerID: ownerID}))
}

// List returns the renter's bookings, newest first, optionally
// narrowed by ?status=.
func (h *RenterBookingHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Bookings.ListByRenter(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	rows = booking.FilterByStatus(rows, c.QueryParam("status"))
	return c.JSON(http.StatusOK, echo.Map{"bookings": toBookingResps(rows)})
}

// Cancel withdraws the renter's own pending request.
func (h *RenterBookingHandler) Cancel(c echo.Context) error {
	return applyBookingAction(c, h.DB, h.Bookings, booking.ActionCancel, booking.RoleRenter, renterOwns)
}

func renterOwns(row repository.BookingRow, callerID uint64) bool {
	return row.RenterID == callerID
}

// CreateReview posts a review of a vehicle.  Only renters with a
// completed booking of that vehicle may review it, once per completed
// rental relationship.
func (h *RenterBookingHandler) CreateReview(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	vehicleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req createReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ok, err := h.Bookings.HasCompletedBooking(ctx, uid, vehicleID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no completed booking for this vehicle"})
	}

	rv := model.Review{
		VehicleID: vehicleID,
		UserID:    uid,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := h.Reviews.Create(ctx, &rv); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "already reviewed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":         rv.ID,
		"vehicle_id": rv.VehicleID,
		"user_id":    rv.UserID,
		"rating":     rv.Rating,
		"comment":    rv.Comment,
		"created_at": rv.CreatedAt.UTC().Format(time.RFC3339),
	})
}
