// Package patients contiene los casos de uso del directorio de pacientes.
package patients

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/intelguy8000/odontologia/internal/application/dto"
	"github.com/intelguy8000/odontologia/internal/domain"
	"github.com/intelguy8000/odontologia/internal/domain/entity"
	"github.com/intelguy8000/odontologia/internal/domain/repository"
)

// UseCase CRUD de pacientes.
type UseCase struct {
	patientRepo repository.PatientRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(patientRepo repository.PatientRepository) *UseCase {
	return &UseCase{patientRepo: patientRepo}
}

// Create da de alta un paciente. Devuelve ErrDuplicate si el documento ya
// está registrado.
func (uc *UseCase) Create(ctx context.Context, in dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	if in.Document == "" || in.FullName == "" {
		return nil, domain.ErrInvalidInput
	}
	birthDate, err := parseBirthDate(in.BirthDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	patient := &entity.Patient{
		ID:        uuid.New().String(),
		Document:  in.Document,
		FullName:  in.FullName,
		BirthDate: birthDate,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		EPS:       in.EPS,
		Notes:     in.Notes,
		CreatedAt: time.Now(),
	}
	if err := uc.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}
	out := toPatientResponse(patient)
	return &out, nil
}

// GetByID devuelve un paciente por su ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.PatientResponse, error) {
	patient, err := uc.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toPatientResponse(patient)
	return &out, nil
}

// List devuelve todos los pacientes, el más reciente primero.
func (uc *UseCase) List(ctx context.Context) ([]dto.PatientResponse, error) {
	rows, err := uc.patientRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PatientResponse, 0, len(rows))
	for _, patient := range rows {
		out = append(out, toPatientResponse(patient))
	}
	return out, nil
}

// Update actualiza los datos del paciente.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	if in.Document == "" || in.FullName == "" {
		return nil, domain.ErrInvalidInput
	}
	birthDate, err := parseBirthDate(in.BirthDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	patient, err := uc.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patient.Document = in.Document
	patient.FullName = in.FullName
	patient.BirthDate = birthDate
	patient.Phone = in.Phone
	patient.Email = in.Email
	patient.Address = in.Address
	patient.EPS = in.EPS
	patient.Notes = in.Notes
	if err := uc.patientRepo.Update(ctx, patient); err != nil {
		return nil, err
	}
	out := toPatientResponse(patient)
	return &out, nil
}

// Delete elimina un paciente. Si tiene ventas o planes de pago asociados se
// rechaza con ErrConflict: el historial clínico-financiero no se rompe.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.patientRepo.GetByID(ctx, id); err != nil {
		return err
	}
	hasHistory, err := uc.patientRepo.HasSalesOrPlans(ctx, id)
	if err != nil {
		return err
	}
	if hasHistory {
		return domain.ErrConflict
	}
	return uc.patientRepo.Delete(ctx, id)
}

func parseBirthDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toPatientResponse(patient *entity.Patient) dto.PatientResponse {
	return dto.PatientResponse{
		ID:        patient.ID,
		Document:  patient.Document,
		FullName:  patient.FullName,
		BirthDate: patient.BirthDate,
		Phone:     patient.Phone,
		Email:     patient.Email,
		Address:   patient.Address,
		EPS:       patient.EPS,
		Notes:     patient.Notes,
		CreatedAt: patient.CreatedAt,
	}
}
