package dto

import "time"

// CreatePatientRequest alta de paciente.
type CreatePatientRequest struct {
	Document  string `json:"document"`
	FullName  string `json:"fullName"`
	BirthDate string `json:"birthDate"` // YYYY-MM-DD, opcional
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	EPS       string `json:"eps"`
	Notes     string `json:"notes"`
}

// UpdatePatientRequest actualización de paciente (mismos campos que el alta).
type UpdatePatientRequest = CreatePatientRequest

// PatientResponse paciente para la API.
type PatientResponse struct {
	ID        string     `json:"id"`
	Document  string     `json:"document"`
	FullName  string     `json:"fullName"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email,omitempty"`
	Address   string     `json:"address,omitempty"`
	EPS       string     `json:"eps,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}
