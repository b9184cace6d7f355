package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNoTokenResolvesEmptyWithoutNetwork(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL)

	bookings, err := c.MyBookings(context.Background(), "")
	if err != nil {
		t.Fatalf("MyBookings: %v", err)
	}
	if len(bookings) != 0 {
		t.Fatalf("expected empty slice, got %d bookings", len(bookings))
	}
	if _, err := c.OwnerBookings(context.Background(), "pending"); err != nil {
		t.Fatalf("OwnerBookings: %v", err)
	}
	if _, err := c.Stats(context.Background()); err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no requests without a token, server saw %d", calls)
	}
}

func TestVehiclesPassesQueryParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(map[string]any{
			"vehicles": []Vehicle{{ID: 1, Name: "Red Sedan"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	list, err := c.Vehicles(context.Background(), VehicleQuery{Q: "red toyota", Category: "suv"})
	if err != nil {
		t.Fatalf("Vehicles: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Red Sedan" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if gotQuery != "category=suv&q=red+toyota" {
		t.Fatalf("unexpected query string: %s", gotQuery)
	}
}

func TestAuthenticatedCallsSendBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer my-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"bookings": []Booking{{ID: 7, Status: "pending"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("my-token")
	bookings, err := c.MyBookings(context.Background(), "")
	if err != nil {
		t.Fatalf("MyBookings: %v", err)
	}
	if len(bookings) != 1 || bookings[0].ID != 7 {
		t.Fatalf("unexpected bookings: %+v", bookings)
	}
}

func TestErrorStatusMapsToSentinels(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"forbidden", http.StatusForbidden, ErrForbidden},
		{"conflict", http.StatusConflict, ErrConflict},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "nope"})
			}))
			defer srv.Close()

			c := New(srv.URL)
			c.SetToken("tok")
			_, err := c.AcceptBooking(context.Background(), 1)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want wrapping %v", err, tc.want)
			}
			var api *APIError
			if !errors.As(err, &api) || api.StatusCode != tc.status {
				t.Fatalf("expected APIError with status %d, got %v", tc.status, err)
			}
		})
	}
}

func TestLoginInstallsAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/auth/login":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access":  map[string]string{"token": "acc"},
				"refresh": map[string]string{"token": "ref"},
			})
		case "/v1/bookings":
			if r.Header.Get("Authorization") != "Bearer acc" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"bookings": []Booking{}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	refresh, err := c.Login(context.Background(), "a@b.c", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if refresh != "ref" {
		t.Fatalf("refresh token = %q, want %q", refresh, "ref")
	}
	if !c.Authenticated() {
		t.Fatal("client should be authenticated after login")
	}
	if _, err := c.MyBookings(context.Background(), ""); err != nil {
		t.Fatalf("MyBookings after login: %v", err)
	}
}
