package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Role is the closed set of portal roles.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleManager     Role = "manager"
	RoleCoordinator Role = "coordinator"
	RoleStudent     Role = "student"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUnknownRole = errors.New("unknown role")
var ErrTooManyAttempts = errors.New("too many login attempts")

// legacyRoleCodes maps the pre-migration role identifiers (numeric ids from
// the old roles table and the short string codes some rows carry) onto the
// canonical enum. Normalization happens at the auth boundary only; everything
// past it sees Role values.
var legacyRoleCodes = map[string]Role{
	"1": RoleAdmin, "adm": RoleAdmin,
	"2": RoleManager, "mgr": RoleManager,
	"3": RoleCoordinator, "coord": RoleCoordinator,
	"4": RoleStudent, "stu": RoleStudent,
}

// NormalizeRole converts any stored or claimed role representation to the
// canonical Role. Accepts the enum values themselves (case-insensitive),
// numeric ids, and legacy string codes.
func NormalizeRole(v any) (Role, error) {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case Role:
		s = string(t)
	case int:
		s = strconv.Itoa(t)
	case int64:
		s = strconv.FormatInt(t, 10)
	case float64: // JSON numbers decode as float64
		s = strconv.Itoa(int(t))
	default:
		return "", ErrUnknownRole
	}

	s = strings.ToLower(strings.TrimSpace(s))
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleCoordinator, RoleStudent:
		return Role(s), nil
	}
	if r, ok := legacyRoleCodes[s]; ok {
		return r, nil
	}
	return "", ErrUnknownRole
}

// User models an account in the portal.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FacultyID    string    `json:"faculty_id"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	LastLoginAt  time.Time `json:"last_login_at,omitzero"`
}
