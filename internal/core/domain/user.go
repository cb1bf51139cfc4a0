package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin           = "admin"
	RoleSalesExecutive  = "sales_executive"
	RoleRegionalOfficer = "regional_officer"
	RoleServiceStaff    = "service_staff"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid token")
var ErrUserNotFound = errors.New("user not found")

// User models an account in the back-office system. Only active users with
// the service_staff role may authenticate against the technician API.
type User struct {
	ID           int64     `json:"id" bson:"id"`
	Username     string    `json:"username" bson:"username"`
	FullName     string    `json:"full_name" bson:"full_name"`
	Email        string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// CanAuthenticate reports whether this account may log in as a technician.
func (u *User) CanAuthenticate() bool {
	return u.IsActive && u.Role == RoleServiceStaff
}

// Identity is the decoded subject of a validated session token. It is built
// once at the trust boundary and passed explicitly to downstream calls.
type Identity struct {
	UserID   int64
	FullName string
	Role     string
}
