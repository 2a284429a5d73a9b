package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/intelguy8000/odontologia/internal/application/chat"
	"github.com/intelguy8000/odontologia/internal/application/dto"
	"github.com/intelguy8000/odontologia/internal/domain"
	"github.com/intelguy8000/odontologia/pkg/logger"
)

// chatErrorMessage respuesta fija cuando el intercambio con el modelo falla.
const chatErrorMessage = "Error al procesar mensaje"

// ChatHandler maneja las peticiones HTTP del asistente.
type ChatHandler struct {
	uc  *chat.UseCase
	log *logger.Logger
}

// NewChatHandler construye el handler.
func NewChatHandler(uc *chat.UseCase, log *logger.Logger) *ChatHandler {
	return &ChatHandler{uc: uc, log: log}
}

// Message godoc
// @Summary      Enviar mensaje al asistente
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "Mensaje del usuario"
// @Success      200   {object}  dto.ChatResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ChatResponse
// @Router       /api/chat [post]
func (h *ChatHandler) Message(c *fiber.Ctx) error {
	var in dto.ChatRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	answer, err := h.uc.Answer(c.UserContext(), in.Message)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "message es requerido"})
		}
		// El detalle queda en el log; el cliente recibe la respuesta fija
		h.log.Error().Err(err).Msg("chat: intercambio fallido")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ChatResponse{Error: chatErrorMessage})
	}
	return c.JSON(dto.ChatResponse{Response: answer})
}
