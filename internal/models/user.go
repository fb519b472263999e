package models

// UserRole is a view toggle, not an authorization boundary.
type UserRole string

const (
	RoleBuyer    UserRole = "BUYER"
	RoleTraveler UserRole = "TRAVELER"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	return r == RoleBuyer || r == RoleTraveler
}

// User represents the acting party of the marketplace.
type User struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Avatar  string   `json:"avatar"`
	Balance float64  `json:"balance"`
	Role    UserRole `json:"role"`
}
