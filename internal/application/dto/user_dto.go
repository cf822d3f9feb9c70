package dto

import "time"

// CreateUserRequest entrada para crear un usuario (solo administrador).
type CreateUserRequest struct {
	Name           string `json:"name"`
	Role           string `json:"role"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Password       string `json:"password"`
}

// UpdateUserRequest entrada para actualizar un usuario. Password vacío
// conserva la contraseña actual.
type UpdateUserRequest struct {
	Name           string `json:"name"`
	Role           string `json:"role"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Password       string `json:"password,omitempty"`
}

// UserResponse salida de un usuario (sin hash).
type UserResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	DocumentType   string    `json:"document_type"`
	DocumentNumber string    `json:"document_number"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LoginRequest body de /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token JWT más el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
