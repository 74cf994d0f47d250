package model

import "time"

// Role distinguishes standard shoppers from back-office admins.
type Role string

const (
	RoleStandard Role = "standard"
	RoleAdmin    Role = "admin"
)

// User represents a user row in the database. PasswordHash always holds a
// bcrypt hash, never plaintext.
type User struct {
	ID             int64
	Name           string
	Email          string
	PasswordHash   string
	Phone          string
	Address        string
	SecurityAnswer string
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PublicUser is the public projection of a User, safe for API responses:
// no password hash, no security answer.
type PublicUser struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Role    Role   `json:"role"`
}

// Public returns the public projection of u.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: u.Address,
		Role:    u.Role,
	}
}

// UserUpdate is a partial update: nil fields are left untouched.
type UserUpdate struct {
	Name         *string
	Phone        *string
	Address      *string
	PasswordHash *string
}

// Empty reports whether the update would change nothing.
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Phone == nil && u.Address == nil && u.PasswordHash == nil
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Answer   string `json:"answer"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest resets a password using the security-question answer
// as a second factor.
type ForgotPasswordRequest struct {
	Email       string `json:"email"`
	Answer      string `json:"answer"`
	NewPassword string `json:"newPassword"`
}

// UpdateProfileRequest is a self-service profile update. Every update must
// re-prove the current password via OldPassword. Email is accepted for
// symmetry with the profile form but is never changed by this flow.
type UpdateProfileRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
	Address         string `json:"address"`
	Phone           string `json:"phone"`
}
