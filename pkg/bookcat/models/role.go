package models

// Role is the authorization level of the current session.
type Role int

const (
	// RoleGuest can search and view but never mutate.
	RoleGuest Role = iota
	// RoleAdmin can view statistics and edit the catalog.
	RoleAdmin
)

func (r Role) String() string {
	if r == RoleAdmin {
		return "admin"
	}
	return "guest"
}

// CanEdit reports whether the role may open an edit session.
func (r Role) CanEdit() bool {
	return r == RoleAdmin
}

// CanViewStats reports whether aggregate statistics are visible to the role.
func (r Role) CanViewStats() bool {
	return r == RoleAdmin
}
