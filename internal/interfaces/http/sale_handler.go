package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/intelguy8000/odontologia/internal/application/dto"
	"github.com/intelguy8000/odontologia/internal/application/sales"
)

// SaleHandler maneja las peticiones HTTP de ventas/tratamientos.
type SaleHandler struct {
	createUC  *sales.CreateSaleUseCase
	queryUC   *sales.QueryUseCase
	receiptUC *sales.ReceiptUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(createUC *sales.CreateSaleUseCase, queryUC *sales.QueryUseCase, receiptUC *sales.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{createUC: createUC, queryUC: queryUC, receiptUC: receiptUC}
}

// Create godoc
// @Summary      Registrar venta (descuenta inventario)
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Datos de la venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente"
// @Router       /api/ventas [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.createUC.CreateSale(c.UserContext(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        pacienteId  query  string  false  "Filtrar por paciente"
// @Param        estado      query  string  false  "completada | pendiente | cancelada"
// @Param        desde       query  string  false  "YYYY-MM-DD"
// @Param        hasta       query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/ventas [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.queryUC.List(c.UserContext(), sales.ListFilters{
		PatientID: c.Query("pacienteId"),
		Status:    c.Query("estado"),
		DateFrom:  c.Query("desde"),
		DateTo:    c.Query("hasta"),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.queryUC.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una venta
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.UpdateSaleStatusRequest  true  "Nuevo estado"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/estado [patch]
func (h *SaleHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateSaleStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.queryUC.UpdateStatus(c.UserContext(), c.Params("id"), in.Status); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receipt godoc
// @Summary      Descargar recibo de la venta (PDF)
// @Tags         ventas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/recibo [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.receiptUC.DownloadReceipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
