package repository

import (
	"context"

	"github.com/intelguy8000/odontologia/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// ClinicConfigRepository persiste la fila única de configuración del consultorio.
type ClinicConfigRepository interface {
	Get(ctx context.Context) (*entity.ClinicConfig, error)
	Upsert(ctx context.Context, cfg *entity.ClinicConfig) error
}
