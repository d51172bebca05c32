package user

import "time"

type Role string

const (
	RoleBuyer  Role = "BUYER"
	RoleSeller Role = "SELLER"
	RoleAgent  Role = "AGENT"
	RoleAdmin  Role = "ADMIN"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAgent:
		return true
	}
	return false
}

type User struct {
	ID        uint
	Name      string
	Email     string
	Password  string
	Role      Role
	CreatedAt time.Time
}
