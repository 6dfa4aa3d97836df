// README: Capability matrix tests.
package auth

import "testing"

func TestCapabilities(t *testing.T) {
	cases := []struct {
		role Role
		cap  Capability
		want bool
	}{
		{RoleFleetManager, CapManageFleet, true},
		{RoleFleetManager, CapManageRates, false},
		{RoleRateManager, CapManageRates, true},
		{RoleRateManager, CapManageBookings, false},
		{RoleBookingAgent, CapManageBookings, true},
		{RoleBookingAgent, CapManageFleet, false},
		{RoleReportsViewer, CapViewReports, true},
		{RoleReportsViewer, CapManageSettings, false},
		{Role("intern"), CapViewReports, false},
	}
	for _, tc := range cases {
		if got := Can(tc.role, tc.cap); got != tc.want {
			t.Errorf("Can(%s, %s) = %v, want %v", tc.role, tc.cap, got, tc.want)
		}
	}
}

// The super admin must hold every capability there is, including the ones
// no other role grants.
func TestSuperAdminHoldsEverything(t *testing.T) {
	all := []Capability{
		CapManageFleet, CapManageRates, CapManageBookings,
		CapManageUsers, CapViewReports, CapManageSettings,
	}
	for _, c := range all {
		if !Can(RoleSuperAdmin, c) {
			t.Errorf("super admin lacks %s", c)
		}
	}
}
