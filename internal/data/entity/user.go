package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// Identity is the authenticated caller handed over by the credential layer.
type Identity struct {
	ID   string   `json:"id"`
	Role UserRole `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
