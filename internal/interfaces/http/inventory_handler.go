package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/intelguy8000/odontologia/internal/application/dto"
	"github.com/intelguy8000/odontologia/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP del inventario de insumos.
type InventoryHandler struct {
	uc         *inventory.UseCase
	movementUC *inventory.RegisterMovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase, movementUC *inventory.RegisterMovementUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, movementUC: movementUC}
}

// List godoc
// @Summary      Listar insumos con su estado de stock
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InventoryItemDTO
// @Router       /api/inventario [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Insumos bajo mínimo con faltante
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InventoryAlertDTO
// @Router       /api/inventario/alertas [get]
func (h *InventoryHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.uc.Alerts(c.UserContext())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Resumen global del inventario
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryStatsDTO
// @Router       /api/inventario/estadisticas [get]
func (h *InventoryHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de un insumo con sus últimos movimientos
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del insumo"
// @Success      200  {object}  dto.InventoryItemDetailDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventario/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear insumo
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryItemRequest  true  "Datos del insumo"
// @Success      201   {object}  dto.InventoryItemDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Code == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code y name son requeridos"})
	}
	out, err := h.uc.CreateItem(c.UserContext(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar datos maestros del insumo
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del insumo"
// @Param        body  body  dto.UpdateInventoryItemRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.InventoryItemDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventario/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventoryItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateItem(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// RegisterMovement godoc
// @Summary      Registrar movimiento manual de inventario
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento (entrada o salida)"
// @Success      201   {object}  dto.InventoryItemDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.movementUC.RegisterMovement(c.UserContext(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
