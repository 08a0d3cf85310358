package entity

// Role classifies a clinician account. New signups default to RoleDoctor;
// roles carry no authorization weight yet.
type Role string

const (
	RoleDoctor Role = "doctor"
	RoleNurse  Role = "nurse"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDoctor, RoleNurse, RoleAdmin:
		return true
	}
	return false
}
