package employee

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Employee is the minimal profile the engine needs: identity for joins and
// credentials for login. Full profile management lives outside this service.
type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
