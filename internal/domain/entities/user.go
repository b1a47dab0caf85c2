package entities

// Role is the closed set of caller roles supplied by the auth layer.
type Role string

const (
	RoleGuest     Role = "guest"
	RoleViewer    Role = "viewer"
	RoleSecretary Role = "secretary"
	RoleAdmin     Role = "admin"
)

// ParseRole maps a string onto the closed role set. Unknown values
// resolve to guest rather than an error so unauthenticated callers
// degrade to the least-privileged role.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleViewer, RoleSecretary, RoleAdmin:
		return Role(s)
	default:
		return RoleGuest
	}
}

// Capability names one guarded operation class.
type Capability string

const (
	CapabilityReadMinutes    Capability = "minutes:read"
	CapabilityWriteMinutes   Capability = "minutes:write"
	CapabilityApproveMinutes Capability = "minutes:approve"
	CapabilityManageSettings Capability = "settings:manage"
	CapabilityRunRetention   Capability = "retention:run"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleGuest: {},
	RoleViewer: {
		CapabilityReadMinutes: true,
	},
	RoleSecretary: {
		CapabilityReadMinutes:    true,
		CapabilityWriteMinutes:   true,
		CapabilityApproveMinutes: true,
		CapabilityManageSettings: true,
		CapabilityRunRetention:   true,
	},
	RoleAdmin: {
		CapabilityReadMinutes:    true,
		CapabilityWriteMinutes:   true,
		CapabilityApproveMinutes: true,
		CapabilityManageSettings: true,
		CapabilityRunRetention:   true,
	},
}

// Can reports whether the role holds the capability.
func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}

// Actor is the authenticated caller resolved by the auth middleware.
// The role is trusted as given; only capability checks happen here.
type Actor struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
