package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/yeremiapane/attendance-portal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

// TokenGenerator issues bearer tokens for authenticated users.
type TokenGenerator interface {
	GenerateToken(userID uint, role string) (string, error)
}

// AuthService registers accounts and exchanges credentials for tokens.
type AuthService struct {
	db     *gorm.DB
	tokens TokenGenerator
	cost   int
}

func NewAuthService(db *gorm.DB, tokens TokenGenerator) *AuthService {
	return &AuthService{db: db, tokens: tokens, cost: bcrypt.DefaultCost}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a customer or supervisor account. Admins are only created by EnsureAdmin.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = models.RoleCustomer
	}

	switch {
	case name == "" || email == "" || in.Password == "":
		return nil, validationErrorf("name, email and password are required")
	case !validEmail(email):
		return nil, validationErrorf("invalid email address")
	case len(in.Password) < minPasswordLength:
		return nil, validationErrorf("password must be at least %d characters", minPasswordLength)
	case role != models.RoleCustomer && role != models.RoleSupervisor:
		return nil, validationErrorf("role must be customer or supervisor")
	}

	return s.createUser(ctx, name, email, in.Password, role)
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func (s *AuthService) createUser(ctx context.Context, name, email, password, role string) (*models.User, error) {
	db := s.db.WithContext(ctx)

	var existing int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, storeError("check email", err)
	}
	if existing > 0 {
		return nil, validationErrorf("email is already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, storeError("create user", err)
	}
	return &user, nil
}

var errInvalidCredentials = &AuthError{Message: "invalid credentials"}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, storeError("find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: &user}, nil
}

// EnsureAdmin creates the bootstrap admin account unless the email already exists.
// It reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return false, validationErrorf("admin email and password are required")
	}
	if strings.TrimSpace(name) == "" {
		name = "Administrator"
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return false, storeError("find admin", err)
	}

	if _, err := s.createUser(ctx, name, email, password, models.RoleAdmin); err != nil {
		return false, err
	}
	return true, nil
}
