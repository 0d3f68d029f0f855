package model

// Role identifies which dashboard panel a user is allowed to open.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleSeller  Role = "seller"
	RoleCourier Role = "courier"
	RoleBuyer   Role = "buyer"
)

// HasPanel reports whether the role has a dashboard panel. Buyers do not.
func (r Role) HasPanel() bool {
	switch r {
	case RoleAdmin, RoleSeller, RoleCourier:
		return true
	default:
		return false
	}
}

// Profile is the cached user record stored next to the session token.
type Profile struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  Role   `json:"role"`
}

// Credentials are forwarded to the marketplace login endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the marketplace response to a successful login.
type LoginResult struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}
