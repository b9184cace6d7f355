package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/driveloop/vehicle-rental/internal/model"
	"github.com/driveloop/vehicle-rental/internal/repository"
)

// OwnerVehicleHandler serves the owner fleet-management endpoints.
// Ownership is enforced in the repository layer so a forged id in the
// path cannot touch another owner's vehicle.
type OwnerVehicleHandler struct {
	Vehicles *repository.VehicleRepo
}

func NewOwnerVehicleHandler(v *repository.VehicleRepo) *OwnerVehicleHandler {
	return &OwnerVehicleHandler{Vehicles: v}
}

type createVehicleReq struct {
	Name            string   `json:"name" validate:"required,max=255"`
	Brand           string   `json:"brand" validate:"required,max=100"`
	Model           string   `json:"model" validate:"required,max=100"`
	Year            int      `json:"year" validate:"required,gte=1950,lte=2100"`
	Category        string   `json:"category" validate:"required,max=50"`
	Description     string   `json:"description"`
	Location        string   `json:"location" validate:"required,max=255"`
	Features        []string `json:"features"`
	PriceDayCents   int64    `json:"price_per_day_cents" validate:"required,gt=0"`
	PriceWeekCents  *int64   `json:"price_per_week_cents" validate:"omitempty,gt=0"`
	PriceMonthCents *int64   `json:"price_per_month_cents" validate:"omitempty,gt=0"`
}

type availabilityReq struct {
	Available *bool `json:"available" validate:"required"`
}

// Create lists a new vehicle under the authenticated owner.  New
// listings start available.
func (h *OwnerVehicleHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createVehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v := model.Vehicle{
		OwnerID:         uid,
		Name:            req.Name,
		Brand:           req.Brand,
		Model:           req.Model,
		Year:            req.Year,
		Category:        req.Category,
		Description:     req.Description,
		Location:        req.Location,
		Features:        req.Features,
		PriceDayCents:   req.PriceDayCents,
		PriceWeekCents:  req.PriceWeekCents,
		PriceMonthCents: req.PriceMonthCents,
		Available:       true,
	}
	if err := h.Vehicles.Create(ctx, &v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create vehicle failed"})
	}
	return c.JSON(http.StatusCreated, toVehicleResp(v))
}

// List returns every vehicle the owner has listed, including the
// unavailable ones.
func (h *OwnerVehicleHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Vehicles.ListByOwner(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"vehicles": toVehicleResps(list)})
}

// SetAvailability toggles whether a vehicle can take new bookings.
// Existing bookings are untouched.
func (h *OwnerVehicleHandler) SetAvailability(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req availabilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "available required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Vehicles.SetAvailability(ctx, id, uid, *req.Available); err {
	case nil:
		return c.JSON(http.StatusOK, echo.Map{"id": id, "available": *req.Available})
	case sql.ErrNoRows:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your vehicle"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
}

// Delete removes a listing.  Listings with pending or confirmed
// bookings cannot be removed.
func (h *OwnerVehicleHandler) Delete(c echo.Context) error {
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

	switch err := h.Vehicles.Delete(ctx, id, uid); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case sql.ErrNoRows:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your vehicle"})
	case repository.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": "vehicle has active bookings"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
}
