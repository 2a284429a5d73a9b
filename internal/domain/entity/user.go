package entity

import "time"

// Roles de usuario del consultorio.
const (
	RoleAdmin     = "admin"
	RoleAsistente = "asistente"
	RoleReadonly  = "readonly"
)

// User es un usuario del sistema (personal del consultorio).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
