package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/intelguy8000/odontologia/internal/domain"
	"github.com/intelguy8000/odontologia/internal/domain/entity"
	"github.com/intelguy8000/odontologia/internal/domain/repository"
)

var _ repository.PatientRepository = (*PatientRepo)(nil)

// PatientRepo implementación de PatientRepository sobre PostgreSQL.
type PatientRepo struct {
	q Querier
}

// NewPatientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPatientRepository(q Querier) *PatientRepo {
	return &PatientRepo{q: q}
}

const patientColumns = `id, document, full_name, birth_date, phone, email, address, eps, notes, created_at`

// Create inserta un paciente. Devuelve ErrDuplicate si el documento ya existe.
func (r *PatientRepo) Create(ctx context.Context, p *entity.Patient) error {
	query := `
		INSERT INTO patients (id, document, full_name, birth_date, phone, email, address, eps, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Document, p.FullName, p.BirthDate, p.Phone, p.Email, p.Address, p.EPS, p.Notes, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create patient: %w", err)
	}
	return nil
}

// GetByID obtiene un paciente; ErrNotFound si no existe.
func (r *PatientRepo) GetByID(ctx context.Context, id string) (*entity.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1`
	p, err := scanPatient(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return p, nil
}

// List devuelve todos los pacientes, el más reciente primero.
func (r *PatientRepo) List(ctx context.Context) ([]*entity.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	var out []*entity.Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update actualiza los datos del paciente.
func (r *PatientRepo) Update(ctx context.Context, p *entity.Patient) error {
	query := `
		UPDATE patients
		SET document = $2, full_name = $3, birth_date = $4, phone = $5, email = $6,
		    address = $7, eps = $8, notes = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Document, p.FullName, p.BirthDate, p.Phone, p.Email, p.Address, p.EPS, p.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el paciente.
func (r *PatientRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HasSalesOrPlans indica si el paciente tiene historial de ventas o planes.
func (r *PatientRepo) HasSalesOrPlans(ctx context.Context, id string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM sales WHERE patient_id = $1)
		    OR EXISTS (SELECT 1 FROM payment_plans WHERE patient_id = $1)`
	var has bool
	if err := r.q.QueryRow(ctx, query, id).Scan(&has); err != nil {
		return false, fmt.Errorf("patient history: %w", err)
	}
	return has, nil
}

func scanPatient(row pgx.Row) (*entity.Patient, error) {
	var p entity.Patient
	err := row.Scan(
		&p.ID, &p.Document, &p.FullName, &p.BirthDate, &p.Phone, &p.Email, &p.Address, &p.EPS, &p.Notes, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
