package repository

import (
	"context"

	"github.com/intelguy8000/odontologia/internal/domain/entity"
)

// PatientRepository define el puerto de persistencia para Patient.
type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	GetByID(ctx context.Context, id string) (*entity.Patient, error)
	// List devuelve todos los pacientes ordenados por fecha de creación descendente.
	List(ctx context.Context) ([]*entity.Patient, error)
	Update(ctx context.Context, patient *entity.Patient) error
	Delete(ctx context.Context, id string) error
	// HasSalesOrPlans indica si el paciente tiene ventas o planes de pago
	// asociados (en cuyo caso no puede eliminarse).
	HasSalesOrPlans(ctx context.Context, id string) (bool, error)
}
