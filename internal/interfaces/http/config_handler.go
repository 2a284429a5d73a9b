package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/intelguy8000/odontologia/internal/application/auth"
	"github.com/intelguy8000/odontologia/internal/application/dto"
)

// ConfigHandler maneja la configuración general del consultorio.
type ConfigHandler struct {
	uc *auth.ConfigUseCase
}

// NewConfigHandler construye el handler.
func NewConfigHandler(uc *auth.ConfigUseCase) *ConfigHandler {
	return &ConfigHandler{uc: uc}
}

// Get godoc
// @Summary      Configuración del consultorio
// @Tags         config
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ClinicConfigDTO
// @Router       /api/config [get]
func (h *ConfigHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar configuración del consultorio
// @Tags         config
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClinicConfigDTO  true  "Datos del consultorio"
// @Success      200   {object}  dto.ClinicConfigDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/config [put]
func (h *ConfigHandler) Update(c *fiber.Ctx) error {
	var in dto.ClinicConfigDTO
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
