package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/bizledger/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	letterPattern   = regexp.MustCompile(`[a-zA-Z]`)
	digitPattern    = regexp.MustCompile(`[0-9]`)
)

// Password cost for bcrypt
const bcryptCost = bcrypt.DefaultCost

// Role is the coarse permission level of a user
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is an account that can sign in.
// Username and email are unique; both are stored lower-cased.
type User struct {
	shared.BaseEntity
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewUser validates credentials and hashes the password.
// An empty role defaults to RoleUser.
func NewUser(username, password, email string, role Role, now time.Time) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if role == "" {
		role = RoleUser
	}
	if !role.IsValid() {
		return nil, shared.Validation("role must be 'admin' or 'user', got %q", role)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.Validation("failed to hash password")
	}

	return &User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		Role:         role,
		CreatedAt:    now,
	}, nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// ChangePassword replaces the hash after checking the old password
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError(shared.CodeUnauthorized, "current password is incorrect")
	}
	if oldPassword == newPassword {
		return shared.Validation("new password must differ from the current one")
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return shared.Validation("failed to hash password")
	}
	u.PasswordHash = hash
	return nil
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NormalizeUsername is the form usernames are stored and looked up in
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// NormalizeEmail is the form emails are stored and looked up in
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateUsername(username string) error {
	if username == "" {
		return shared.Validation("username cannot be empty")
	}
	if len(username) < 3 {
		return shared.Validation("username must be at least 3 characters")
	}
	if len(username) > 100 {
		return shared.Validation("username cannot exceed 100 characters")
	}
	if !usernamePattern.MatchString(username) {
		return shared.Validation("username can only contain letters, numbers, underscores, hyphens, and dots")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.Validation("password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.Validation("password cannot exceed 72 characters")
	}
	if !letterPattern.MatchString(password) || !digitPattern.MatchString(password) {
		return shared.Validation("password must contain at least one letter and one number")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.Validation("email cannot be empty")
	}
	if len(email) > 200 {
		return shared.Validation("email cannot exceed 200 characters")
	}
	if !emailPattern.MatchString(email) {
		return shared.Validation("invalid email format")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
