package model

// Role maps an identifier to a unique role name. Names carry the
// conventional "ROLE_" prefix, e.g. ROLE_USER and ROLE_ADMIN.
type Role struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// Well-known role names seeded at startup.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)
