package models

import "time"

const (
	RoleCustomer   = "customer"
	RoleSupervisor = "supervisor"
	RoleAdmin      = "admin"
)

// User is the identity record. Password holds the bcrypt hash and is never serialized.
// Joined references only load id, name and email, so the remaining fields are omitted when zero.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      string    `gorm:"type:varchar(20);index;not null" json:"role,omitzero"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}
