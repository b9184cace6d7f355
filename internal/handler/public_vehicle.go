package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/driveloop/vehicle-rental/internal/repository"
	"github.com/driveloop/vehicle-rental/internal/search"
)

// PublicVehicleHandler serves the unauthenticated browse endpoints.
type PublicVehicleHandler struct {
	Vehicles *repository.VehicleRepo
	Reviews  *repository.ReviewRepo
}

func NewPublicVehicleHandler(v *repository.VehicleRepo, rv *repository.ReviewRepo) *PublicVehicleHandler {
	return &PublicVehicleHandler{Vehicles: v, Reviews: rv}
}

// List returns available vehicles.  Structured filters (category,
// location) are pushed into SQL; the free-text q= filter runs over the
// fetched rows so every token must match somewhere in the listing.
func (h *PublicVehicleHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	f := repository.ListFilter{
		Category:      strings.TrimSpace(c.QueryParam("category")),
		Location:      strings.TrimSpace(c.QueryParam("location")),
		OnlyAvailable: true,
	}
	list, err := h.Vehicles.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if q := c.QueryParam("q"); strings.TrimSpace(q) != "" {
		list = search.Vehicles(list, q)
	}
	return c.JSON(http.StatusOK, echo.Map{"vehicles": toVehicleResps(list)})
}

// Get returns a single vehicle by id with its aggregate rating.
func (h *PublicVehicleHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v, err := h.Vehicles.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toVehicleResp(v))
}

// ListReviews returns reviews for a vehicle, newest first.
func (h *PublicVehicleHandler) ListReviews(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Vehicles.GetByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	rows, err := h.Reviews.ListByVehicle(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]echo.Map, 0, len(rows))
	for _, r := range rows {
		out = append(out, echo.Map{
			"id":         r.ID,
			"vehicle_id": r.VehicleID,
			"user_id":    r.UserID,
			"author":     r.AuthorName,
			"rating":     r.Rating,
			"comment":    r.Comment,
			"created_at": r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": out})
}
