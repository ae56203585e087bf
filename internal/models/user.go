package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Role string

const (
	RoleAttendee  Role = "attendee"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

type UserStatus string

const (
	UserActive  UserStatus = "active"
	UserBanned  UserStatus = "banned"
	UserPending UserStatus = "pending"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64      `json:"id" bun:"id,pk,autoincrement"`
	FirstName    string     `json:"first_name" bun:"first_name"`
	LastName     string     `json:"last_name" bun:"last_name"`
	Email        string     `json:"email" bun:"email"`
	Phone        string     `json:"phone" bun:"phone"`
	PasswordHash string     `json:"-" bun:"password"`
	Role         Role       `json:"role" bun:"role"`
	Status       UserStatus `json:"status" bun:"status"`
	CreatedAt    time.Time  `json:"created_at" bun:"created_at"`
}

type SignupRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type AuthResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
}
