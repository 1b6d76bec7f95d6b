package services

import "github.com/yeremiapane/attendance-portal/models"

// Caller is the authenticated identity a request acts as.
type Caller struct {
	ID   uint
	Role string
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}
