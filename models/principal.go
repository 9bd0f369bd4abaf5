package models

// Role identifies which side of the marketplace a principal acts on.
type Role string

const (
	RoleCustomer     Role = "customer"
	RoleProfessional Role = "professional"
	RoleAdmin        Role = "admin"
)

// Logical screen identifiers used as navigation targets. The concrete
// routing mechanism lives in the client.
const (
	ScreenLanding          = "landing"
	ScreenCustomerHome     = "customer-home"
	ScreenProfessionalHome = "professional-home"
	ScreenAdminHome        = "admin-home"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleProfessional, RoleAdmin:
		return true
	}
	return false
}

// HomeScreen returns the home screen identifier for the role.
func (r Role) HomeScreen() string {
	switch r {
	case RoleAdmin:
		return ScreenAdminHome
	case RoleProfessional:
		return ScreenProfessionalHome
	default:
		return ScreenCustomerHome
	}
}

// Principal is the authenticated actor of a session. Exactly one principal is
// active per session, or none (anonymous).
type Principal struct {
	ID          string `json:"id"`
	Role        Role   `json:"role"`
	DisplayName string `json:"displayName"`
}
