package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/Re1354/building-management-system/internal/apperr"
	"github.com/Re1354/building-management-system/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxFailedLogins = 5
	lockDuration    = 10 * time.Minute
)

// UserService owns admin accounts: registration and password login.
type UserService struct {
	db         *gorm.DB
	bcryptCost int
	now        func() time.Time
}

func NewUserService(db *gorm.DB, bcryptCost int) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{db: db, bcryptCost: bcryptCost, now: time.Now}
}

// Register creates an admin. Emails are compared case-insensitively.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return nil, apperr.Validation("Name, email and password are required")
	}
	if len(name) > 128 {
		return nil, apperr.Validation("Name is too long")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, apperr.Validation("Invalid email")
	}
	if !isStrongPassword(password) {
		return nil, apperr.Validation("Password must be 8-64 characters with upper, lower case letters and digits")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, apperr.Internal("hash password", err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.Conflict("User already exists")
		}
		if isValueTooLong(err) {
			return nil, apperr.Validation(msgValueTooLong)
		}
		return nil, apperr.Internal("create user", err)
	}
	return &user, nil
}

// Authenticate checks credentials. Five consecutive failures lock the
// account for ten minutes; a success clears the counter.
func (s *UserService) Authenticate(ctx context.Context, email, password, ip string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperr.Validation("Email and password are required")
	}

	db := s.db.WithContext(ctx)
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("Invalid credentials")
		}
		return nil, apperr.Internal("find user", err)
	}

	now := s.now()
	if user.LockedUntil != nil && now.Before(*user.LockedUntil) {
		return nil, apperr.Unauthorized("Account locked, try again later")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		user.FailedLoginAttempts++
		if user.FailedLoginAttempts >= maxFailedLogins {
			lockUntil := now.Add(lockDuration)
			user.LockedUntil = &lockUntil
			user.FailedLoginAttempts = 0
		}
		if err := db.Model(&user).Select("failed_login_attempts", "locked_until").Updates(&user).Error; err != nil {
			return nil, apperr.Internal("record failed login", err)
		}
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	user.LastLoginAt = &now
	user.LastLoginIP = ip
	if err := db.Model(&user).
		Select("failed_login_attempts", "locked_until", "last_login_at", "last_login_ip").
		Updates(&user).Error; err != nil {
		return nil, apperr.Internal("record login", err)
	}
	return &user, nil
}

// 8-64 characters with at least one upper case letter, one lower case letter and one digit
func isStrongPassword(pwd string) bool {
	if len(pwd) < 8 || len(pwd) > 64 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, ch := range pwd {
		switch {
		case ch >= 'A' && ch <= 'Z':
			hasUpper = true
		case ch >= 'a' && ch <= 'z':
			hasLower = true
		case ch >= '0' && ch <= '9':
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}
