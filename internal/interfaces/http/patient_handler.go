package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/intelguy8000/odontologia/internal/application/dto"
	"github.com/intelguy8000/odontologia/internal/application/patients"
)

// PatientHandler maneja las peticiones HTTP del directorio de pacientes.
type PatientHandler struct {
	uc *patients.UseCase
}

// NewPatientHandler construye el handler.
func NewPatientHandler(uc *patients.UseCase) *PatientHandler {
	return &PatientHandler{uc: uc}
}

// Create godoc
// @Summary      Crear paciente
// @Tags         pacientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePatientRequest  true  "Datos del paciente"
// @Success      201   {object}  dto.PatientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pacientes [post]
func (h *PatientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePatientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Document == "" || in.FullName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "document y fullName son requeridos"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pacientes
// @Tags         pacientes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PatientResponse
// @Router       /api/pacientes [get]
func (h *PatientHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener paciente por ID
// @Tags         pacientes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del paciente"
// @Success      200  {object}  dto.PatientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pacientes/{id} [get]
func (h *PatientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar paciente
// @Tags         pacientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del paciente"
// @Param        body  body  dto.UpdatePatientRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.PatientResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pacientes/{id} [put]
func (h *PatientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePatientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar paciente
// @Tags         pacientes
// @Security     Bearer
// @Param        id  path  string  true  "ID del paciente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "el paciente tiene ventas o planes asociados"
// @Router       /api/pacientes/{id} [delete]
func (h *PatientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
