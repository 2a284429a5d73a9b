package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/intelguy8000/odontologia/internal/application/dto"
	"github.com/intelguy8000/odontologia/internal/application/receivables"
)

// ReceivableHandler maneja las peticiones HTTP de cuentas por cobrar.
type ReceivableHandler struct {
	uc *receivables.UseCase
}

// NewReceivableHandler construye el handler.
func NewReceivableHandler(uc *receivables.UseCase) *ReceivableHandler {
	return &ReceivableHandler{uc: uc}
}

// KPIs godoc
// @Summary      KPIs de cartera
// @Tags         cuentas-por-cobrar
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReceivableKPIsDTO
// @Router       /api/cuentas-por-cobrar/kpis [get]
func (h *ReceivableHandler) KPIs(c *fiber.Ctx) error {
	out, err := h.uc.GetKPIs(c.UserContext())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ListPlans godoc
// @Summary      Listar planes de pago activos con estado derivado
// @Tags         cuentas-por-cobrar
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PaymentPlanDTO
// @Router       /api/cuentas-por-cobrar [get]
func (h *ReceivableHandler) ListPlans(c *fiber.Ctx) error {
	out, err := h.uc.ListPlans(c.UserContext())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// CreatePlan godoc
// @Summary      Crear plan de pagos con cronograma de cuotas
// @Tags         cuentas-por-cobrar
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePaymentPlanRequest  true  "Datos del plan"
// @Success      201   {object}  dto.PaymentPlanDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cuentas-por-cobrar [post]
func (h *ReceivableHandler) CreatePlan(c *fiber.Ctx) error {
	var in dto.CreatePaymentPlanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreatePlan(c.UserContext(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RegisterPayment godoc
// @Summary      Registrar pago de la siguiente cuota del plan
// @Tags         cuentas-por-cobrar
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del plan"
// @Success      200  {object}  dto.RegisterPaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "plan completado, sin cuotas pendientes"
// @Router       /api/cuentas-por-cobrar/{id}/pagos [post]
func (h *ReceivableHandler) RegisterPayment(c *fiber.Ctx) error {
	out, err := h.uc.RegisterPayment(c.UserContext(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
