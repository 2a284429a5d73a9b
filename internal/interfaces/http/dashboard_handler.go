package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/intelguy8000/odontologia/internal/application/analytics"
)

// DashboardHandler maneja las peticiones HTTP del dashboard.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// KPIs godoc
// @Summary      KPIs del mes: ventas, utilidad y pacientes activos
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardKPIsDTO
// @Router       /api/dashboard/kpis [get]
func (h *DashboardHandler) KPIs(c *fiber.Ctx) error {
	out, err := h.uc.GetKPIs(c.UserContext())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// SalesLast7Days godoc
// @Summary      Serie diaria de ventas de los últimos 7 días
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SalesDataPointDTO
// @Router       /api/dashboard/ventas-7-dias [get]
func (h *DashboardHandler) SalesLast7Days(c *fiber.Ctx) error {
	out, err := h.uc.GetSalesLast7Days(c.UserContext())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// TopTreatments godoc
// @Summary      Tratamientos con más ingresos (últimos 30 días)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de tratamientos"  default(5)
// @Success      200  {array}  dto.TopTreatmentDTO
// @Router       /api/dashboard/top-tratamientos [get]
func (h *DashboardHandler) TopTreatments(c *fiber.Ctx) error {
	out, err := h.uc.GetTopTreatments(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
