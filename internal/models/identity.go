package models

// Staff roles as stored in the user directory
const (
	RoleDoctor = "Doctor"
	RoleNurse  = "Nurse"
	RoleAdmin  = "Admin"
)

// Identity is the authenticated context of a connection, fixed for its
// lifetime. Re-authentication requires a new connection.
type Identity struct {
	UserID     string `json:"userId"`
	Role       string `json:"role"`
	Department string `json:"department"`
}
