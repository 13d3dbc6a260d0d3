package userclient

import "github.com/selim-ammari/user-management/internal/core/domain"

// Role is the access level of a user.
type Role = domain.Role

const (
	RoleUser  = domain.RoleUser
	RoleAdmin = domain.RoleAdmin
)

// SuperadminID is the reserved id of the built-in administrator.
const SuperadminID = domain.SuperadminID

// User is a directory entry as returned by the API. ID is empty for guest
// identities that were never stored. A missing role counts as user.
type User = domain.User

type namesRequest struct {
	Lastname  string `json:"lastname"`
	Firstname string `json:"firstname"`
}

type roleRequest struct {
	Role Role `json:"role"`
}

type createUserResponse struct {
	Success bool `json:"success"`
	User    User `json:"user"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// SessionResponse is the result of IssueSession.
type SessionResponse struct {
	User    User   `json:"user"`
	Matched bool   `json:"matched"`
	Token   string `json:"token,omitempty"`
}

// DemoUsers is the fallback dataset shown when the server is unreachable.
func DemoUsers() []User {
	return []User{
		{ID: "1", Lastname: "Dupont", Firstname: "Jean"},
		{ID: "2", Lastname: "Martin", Firstname: "Marie"},
	}
}
