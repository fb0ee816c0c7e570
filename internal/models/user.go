package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Role         string    `json:"role" db:"role"`
	Affiliation  string    `json:"affiliation" db:"affiliation"`
	Bio          string    `json:"bio" db:"bio"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type CreateUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Name        string `json:"name" binding:"required"`
	Role        string `json:"role" binding:"required,oneof=author reviewer admin"`
	Affiliation string `json:"affiliation"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type UpdateProfileRequest struct {
	Name        string `json:"name"`
	Affiliation string `json:"affiliation"`
	Bio         string `json:"bio"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

func (u *User) IsRole(role string) bool {
	return u.Role == role
}

func (u *User) IsAuthor() bool {
	return u.Role == "author"
}

func (u *User) IsReviewer() bool {
	return u.Role == "reviewer"
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
