package entity

import "time"

// Patient representa un paciente del consultorio.
// Document es el documento de identidad (cédula) y es único en el sistema.
type Patient struct {
	ID        string
	Document  string
	FullName  string
	BirthDate *time.Time
	Phone     string
	Email     string
	Address   string
	EPS       string // entidad promotora de salud del paciente
	Notes     string
	CreatedAt time.Time
}
