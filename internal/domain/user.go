package domain

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID        int64
	Email     string
	Password  string // bcrypt hash, never serialized
	Name      string
	Surname   string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserFilter carries optional listing criteria. String fields match by
// substring, Role exactly.
type UserFilter struct {
	Email   string
	Name    string
	Surname string
	Role    Role
}
