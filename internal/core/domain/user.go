package domain

// Role is the authorization level carried by a user record.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

const (
	// SuperadminID is the reserved id of the permanent administrator record.
	SuperadminID = "superadmin"

	superadminLastname  = "Admin"
	superadminFirstname = "Super"
)

// User is a single entry of the user directory.
//
// Role is omitted from the JSON document when empty: records written before
// roles existed have no role field and must round-trip unchanged.
type User struct {
	ID        string `json:"id,omitempty"`
	Lastname  string `json:"lastname"`
	Firstname string `json:"firstname"`
	Role      Role   `json:"role,omitempty"`
}

// EffectiveRole returns the role used for authorization decisions.
// A missing role means RoleUser.
func (u User) EffectiveRole() Role {
	if u.Role == "" {
		return RoleUser
	}
	return u.Role
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.EffectiveRole() == RoleAdmin
}

// IsSuperadmin reports whether u is the reserved superadmin record.
func (u User) IsSuperadmin() bool {
	return u.ID == SuperadminID
}

// Persisted reports whether the user carries a server-assigned id.
// Guest identities fabricated at login have none.
func (u User) Persisted() bool {
	return u.ID != ""
}

// Superadmin returns the record seeded at startup.
func Superadmin() User {
	return User{
		ID:        SuperadminID,
		Lastname:  superadminLastname,
		Firstname: superadminFirstname,
		Role:      RoleAdmin,
	}
}
