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

var _ repository.ClinicConfigRepository = (*ClinicConfigRepo)(nil)

// ClinicConfigRepo persiste la fila única de configuración del consultorio.
type ClinicConfigRepo struct {
	q Querier
}

// NewClinicConfigRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClinicConfigRepository(q Querier) *ClinicConfigRepo {
	return &ClinicConfigRepo{q: q}
}

// Get obtiene la configuración; ErrNotFound si nunca se guardó.
func (r *ClinicConfigRepo) Get(ctx context.Context) (*entity.ClinicConfig, error) {
	query := `SELECT id, name, address, phone, email, website FROM clinic_config WHERE id = $1`
	var c entity.ClinicConfig
	err := r.q.QueryRow(ctx, query, entity.ClinicConfigID).Scan(
		&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email, &c.Website,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get clinic config: %w", err)
	}
	return &c, nil
}

// Upsert inserta o actualiza la fila única.
func (r *ClinicConfigRepo) Upsert(ctx context.Context, c *entity.ClinicConfig) error {
	query := `
		INSERT INTO clinic_config (id, name, address, phone, email, website)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id)
		DO UPDATE SET name = EXCLUDED.name, address = EXCLUDED.address, phone = EXCLUDED.phone,
		              email = EXCLUDED.email, website = EXCLUDED.website`
	_, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Address, c.Phone, c.Email, c.Website)
	if err != nil {
		return fmt.Errorf("upsert clinic config: %w", err)
	}
	return nil
}
