// README: Admin roles mapped to capability sets.
package auth

type Role string

const (
	RoleSuperAdmin    Role = "super_admin"
	RoleFleetManager  Role = "fleet_manager"
	RoleRateManager   Role = "rate_manager"
	RoleBookingAgent  Role = "booking_agent"
	RoleReportsViewer Role = "reports_viewer"
)

type Capability string

const (
	CapManageFleet    Capability = "manage_fleet"
	CapManageRates    Capability = "manage_rates"
	CapManageBookings Capability = "manage_bookings"
	CapManageUsers    Capability = "manage_users"
	CapViewReports    Capability = "view_reports"
	CapManageSettings Capability = "manage_settings"
)

var roleCapabilities = map[Role][]Capability{
	RoleFleetManager:  {CapManageFleet, CapViewReports},
	RoleRateManager:   {CapManageRates, CapViewReports},
	RoleBookingAgent:  {CapManageBookings, CapViewReports},
	RoleReportsViewer: {CapViewReports},
}

// Capabilities returns the capability set for a role. The super admin
// holds every capability any role grants plus the admin-only ones; an
// unknown role holds none. The mapping is pure data, deriving access from
// the role on every check rather than storing flags per user.
func Capabilities(role Role) map[Capability]bool {
	out := make(map[Capability]bool)
	if role == RoleSuperAdmin {
		for _, caps := range roleCapabilities {
			for _, c := range caps {
				out[c] = true
			}
		}
		out[CapManageUsers] = true
		out[CapManageSettings] = true
		return out
	}
	for _, c := range roleCapabilities[role] {
		out[c] = true
	}
	return out
}

// Can reports whether a role holds a capability.
func Can(role Role, c Capability) bool {
	return Capabilities(role)[c]
}
