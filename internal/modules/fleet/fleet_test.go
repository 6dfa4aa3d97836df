// README: Vehicle group validation and feature-list tests.
package fleet

import (
	"reflect"
	"testing"
)

func TestValidateGroup(t *testing.T) {
	five := 5
	zero := 0

	cases := []struct {
		name    string
		group   VehicleGroup
		wantErr bool
	}{
		{"valid", VehicleGroup{Name: "Compact", MinRentalDays: 1}, false},
		{"blank name", VehicleGroup{Name: "  ", MinRentalDays: 1}, true},
		{"max below min", VehicleGroup{Name: "Van", MinRentalDays: 3, MaxRentalDays: &zero}, true},
		{"max above min", VehicleGroup{Name: "Van", MinRentalDays: 3, MaxRentalDays: &five}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateGroup(&tc.group)
			if (err != nil) != tc.wantErr {
				t.Errorf("validateGroup = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

// A zero minimum is normalized to one day rather than rejected.
func TestValidateGroupNormalizesMinDays(t *testing.T) {
	g := VehicleGroup{Name: "Compact"}
	if err := validateGroup(&g); err != nil {
		t.Fatalf("validateGroup: %v", err)
	}
	if g.MinRentalDays != 1 {
		t.Errorf("MinRentalDays = %d, want 1", g.MinRentalDays)
	}
}

func TestFeaturesRoundTrip(t *testing.T) {
	features := []string{"GPS", "Child seat", "Roof rack"}
	got := splitFeatures(joinFeatures(features))
	if !reflect.DeepEqual(got, features) {
		t.Errorf("round trip = %v, want %v", got, features)
	}
	if splitFeatures("") != nil {
		t.Error("empty string should split to nil")
	}
}
