package search

import (
	"testing"

	"github.com/driveloop/vehicle-rental/internal/model"
)

func TestMatches(t *testing.T) {
	sedan := model.Vehicle{Name: "Red Sedan", Brand: "Toyota", Model: "Corolla", Location: "Pune"}
	text := VehicleText(sedan)

	cases := []struct {
		query string
		want  bool
	}{
		{"red toyota", true}, // tokens span name and brand
		{"blue toyota", false},
		{"TOYOTA", true}, // case folded
		{"corolla pune", true},
		{"", true},
		{"   ", true},
		{"red sedan corolla missing", false},
	}
	for _, tc := range cases {
		if got := Matches(text, tc.query); got != tc.want {
			t.Fatalf("Matches(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestVehiclesPreservesOrder(t *testing.T) {
	list := []model.Vehicle{
		{ID: 1, Name: "Red Sedan", Brand: "Toyota", Model: "Corolla", Location: "Pune"},
		{ID: 2, Name: "Blue Hatch", Brand: "Honda", Model: "Jazz", Location: "Mumbai"},
		{ID: 3, Name: "Old Red Pickup", Brand: "Toyota", Model: "Hilux", Location: "Pune"},
	}

	got := Vehicles(list, "red toyota")
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("unexpected result: %+v", got)
	}

	// identity on empty query
	if got := Vehicles(list, ""); len(got) != len(list) {
		t.Fatalf("empty query must return everything")
	}

	if got := Vehicles(list, "tractor"); len(got) != 0 {
		t.Fatalf("no vehicle should match, got %+v", got)
	}
}
