package service

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Principal is the authenticated caller of an operation.
type Principal struct {
	Username string
	Role     string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
