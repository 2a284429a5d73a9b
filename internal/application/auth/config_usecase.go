package auth

import (
	"context"
	"errors"

	"github.com/intelguy8000/odontologia/internal/application/dto"
	"github.com/intelguy8000/odontologia/internal/domain"
	"github.com/intelguy8000/odontologia/internal/domain/entity"
	"github.com/intelguy8000/odontologia/internal/domain/repository"
)

// ConfigUseCase lectura y actualización de la configuración del consultorio
// (fila única).
type ConfigUseCase struct {
	configRepo repository.ClinicConfigRepository
}

// NewConfigUseCase construye el caso de uso.
func NewConfigUseCase(configRepo repository.ClinicConfigRepository) *ConfigUseCase {
	return &ConfigUseCase{configRepo: configRepo}
}

// Get devuelve la configuración. Si nunca se guardó, devuelve una vacía en
// lugar de 404: el frontend siempre puede pintar el formulario.
func (uc *ConfigUseCase) Get(ctx context.Context) (*dto.ClinicConfigDTO, error) {
	cfg, err := uc.configRepo.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return &dto.ClinicConfigDTO{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &dto.ClinicConfigDTO{
		Name:    cfg.Name,
		Address: cfg.Address,
		Phone:   cfg.Phone,
		Email:   cfg.Email,
		Website: cfg.Website,
	}, nil
}

// Update guarda la configuración (upsert sobre la fila única).
func (uc *ConfigUseCase) Update(ctx context.Context, in dto.ClinicConfigDTO) (*dto.ClinicConfigDTO, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	cfg := &entity.ClinicConfig{
		ID:      entity.ClinicConfigID,
		Name:    in.Name,
		Address: in.Address,
		Phone:   in.Phone,
		Email:   in.Email,
		Website: in.Website,
	}
	if err := uc.configRepo.Upsert(ctx, cfg); err != nil {
		return nil, err
	}
	return &in, nil
}
