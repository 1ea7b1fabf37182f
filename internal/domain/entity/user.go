package entity

import (
	"time"
)

const (
	RoleBuyer     = "buyer"
	RoleSupport   = "support"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// RoleLevel maps a role to its numeric tier. Display only; the server owns
// every authorization decision.
func RoleLevel(role string) int {
	switch role {
	case RoleAdmin:
		return 3
	case RoleModerator:
		return 2
	case RoleSupport:
		return 1
	default:
		return 0
	}
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"` // buyer, support, moderator, admin

	// Custom grant list, independent of the role.
	Permissions []string `json:"permissions,omitempty"`

	WalletBalanceJOD float64 `json:"wallet_balance_jod"`
	IsActive         bool    `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoleDefinition describes one assignable role as the roles endpoint
// reports it.
type RoleDefinition struct {
	Name        string   `json:"name"`
	Level       int      `json:"level"`
	Permissions []string `json:"permissions,omitempty"`
}
