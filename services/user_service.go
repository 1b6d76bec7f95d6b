package services

import (
	"context"

	"github.com/yeremiapane/attendance-portal/models"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetProfile returns the caller's own record. The password hash never leaves the model.
func (s *UserService) GetProfile(ctx context.Context, caller Caller) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Omit("password").
		First(&user, caller.ID).Error
	if err != nil {
		return nil, lookupError("User", "get profile", err)
	}
	return &user, nil
}

func (s *UserService) ListSupervisors(ctx context.Context) ([]models.User, error) {
	supervisors := make([]models.User, 0)
	err := s.db.WithContext(ctx).
		Select("id", "name", "email").
		Where("role = ?", models.RoleSupervisor).
		Order("name ASC").
		Find(&supervisors).Error
	if err != nil {
		return nil, storeError("list supervisors", err)
	}
	return supervisors, nil
}
