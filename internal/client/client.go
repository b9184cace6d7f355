// Package client is a typed Go client for the rental API.  Dashboard
// tooling and the in-process store use it instead of hand-rolled HTTP
// calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Sentinel errors mapped from response status codes.  Callers branch
// with errors.Is instead of comparing numbers.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// APIError carries the status code and server-side message of a
// failed request.  It wraps the matching sentinel, so errors.Is works
// through it.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	}
	return nil
}

// Vehicle mirrors the vehicle JSON the API serves.
type Vehicle struct {
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
}

// Booking mirrors the booking JSON the API serves.  Dates are
// yyyy-MM-dd strings on the wire.
type Booking struct {
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
}

// BookingStatus returns the booking's status so the projection
// helpers in the booking package apply to client snapshots too.
func (b Booking) BookingStatus() string { return b.Status }

// OwnerStats mirrors the owner dashboard aggregates.
type OwnerStats struct {
	PendingRequests    int     `json:"pending_requests"`
	ActiveBookings     int     `json:"active_bookings"`
	TotalEarningsCents int64   `json:"total_earnings_cents"`
	AverageRating      float64 `json:"average_rating"`
}

// Client talks to one API deployment.  The zero value is not usable;
// construct with New.  Token-bearing calls without a token resolve to
// empty results locally, without touching the network, so a signed-out
// dashboard renders instantly.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New returns a Client for the given base URL, e.g.
// "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken installs the access token used on authenticated calls.
// An empty string signs the client out.
func (c *Client) SetToken(token string) { c.token = token }

// Authenticated reports whether the client holds an access token.
func (c *Client) Authenticated() bool { return c.token != "" }

// Login exchanges credentials for a token pair and installs the
// access token on the client.  The refresh token is returned for the
// caller to store.
func (c *Client) Login(ctx context.Context, email, password string) (refreshToken string, err error) {
	var resp struct {
		Access struct {
			Token string `json:"token"`
		} `json:"access"`
		Refresh struct {
			Token string `json:"token"`
		} `json:"refresh"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/v1/auth/login", body, &resp); err != nil {
		return "", err
	}
	c.token = resp.Access.Token
	return resp.Refresh.Token, nil
}

// VehicleQuery narrows the public vehicle listing.
type VehicleQuery struct {
	Q        string
	Category string
	Location string
}

// Vehicles lists available vehicles.  The endpoint is public, so no
// token is required.
func (c *Client) Vehicles(ctx context.Context, q VehicleQuery) ([]Vehicle, error) {
	vals := url.Values{}
	if q.Q != "" {
		vals.Set("q", q.Q)
	}
	if q.Category != "" {
		vals.Set("category", q.Category)
	}
	if q.Location != "" {
		vals.Set("location", q.Location)
	}
	path := "/v1/vehicles"
	if enc := vals.Encode(); enc != "" {
		path += "?" + enc
	}
	var resp struct {
		Vehicles []Vehicle `json:"vehicles"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Vehicles, nil
}

// MyBookings lists the caller's bookings as a renter.  Without a
// token it resolves to an empty slice immediately.
func (c *Client) MyBookings(ctx context.Context, status string) ([]Booking, error) {
	if c.token == "" {
		return []Booking{}, nil
	}
	return c.bookingList(ctx, "/v1/bookings", status)
}

// OwnerBookings lists bookings against the caller's vehicles.
// Without a token it resolves to an empty slice immediately.
func (c *Client) OwnerBookings(ctx context.Context, status string) ([]Booking, error) {
	if c.token == "" {
		return []Booking{}, nil
	}
	return c.bookingList(ctx, "/v1/owner/bookings", status)
}

func (c *Client) bookingList(ctx context.Context, path, status string) ([]Booking, error) {
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var resp struct {
		Bookings []Booking `json:"bookings"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Bookings, nil
}

// Stats fetches the owner dashboard aggregates.  Without a token it
// resolves to zero stats immediately.
func (c *Client) Stats(ctx context.Context) (OwnerStats, error) {
	if c.token == "" {
		return OwnerStats{}, nil
	}
	var s OwnerStats
	if err := c.do(ctx, http.MethodGet, "/v1/owner/stats", nil, &s); err != nil {
		return OwnerStats{}, err
	}
	return s, nil
}

// CreateBooking requests a rental.  Dates are yyyy-MM-dd strings.
func (c *Client) CreateBooking(ctx context.Context, vehicleID uint64, startDate, endDate string) (Booking, error) {
	body := map[string]any{
		"vehicle_id": vehicleID,
		"start_date": startDate,
		"end_date":   endDate,
	}
	var b Booking
	if err := c.do(ctx, http.MethodPost, "/v1/bookings", body, &b); err != nil {
		return Booking{}, err
	}
	return b, nil
}

// AcceptBooking confirms a pending request on one of the caller's
// vehicles.
func (c *Client) AcceptBooking(ctx context.Context, id uint64) (Booking, error) {
	return c.bookingAction(ctx, fmt.Sprintf("/v1/owner/bookings/%d/accept", id))
}

// DeclineBooking declines a pending request on one of the caller's
// vehicles.
func (c *Client) DeclineBooking(ctx context.Context, id uint64) (Booking, error) {
	return c.bookingAction(ctx, fmt.Sprintf("/v1/owner/bookings/%d/decline", id))
}

// CancelBooking withdraws the caller's own pending request.
func (c *Client) CancelBooking(ctx context.Context, id uint64) (Booking, error) {
	return c.bookingAction(ctx, fmt.Sprintf("/v1/bookings/%d/cancel", id))
}

// CompleteBooking marks a confirmed booking completed (admin only).
func (c *Client) CompleteBooking(ctx context.Context, id uint64) (Booking, error) {
	return c.bookingAction(ctx, fmt.Sprintf("/v1/admin/bookings/%d/complete", id))
}

func (c *Client) bookingAction(ctx context.Context, path string) (Booking, error) {
	var b Booking
	if err := c.do(ctx, http.MethodPost, path, nil, &b); err != nil {
		return Booking{}, err
	}
	return b, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		bs, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(bs)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
