// Package chat implementa el asistente del consultorio: un ciclo de despacho
// de funciones en dos rondas contra un modelo de lenguaje externo.
//
// Máquina de estados: Esperando Respuesta del Modelo → Ejecutando Función
// (opcional) → Terminado. Se procesa a lo sumo UNA llamada a función por
// mensaje del usuario; la segunda ronda se envía sin catálogo de funciones.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/intelguy8000/odontologia/internal/application/ports"
	"github.com/intelguy8000/odontologia/internal/domain"
)

// systemPrompt instruye al modelo como asistente del consultorio. Tomado tal
// cual de la configuración del producto: respuestas cortas, en pesos
// colombianos, sin información extra.
const systemPrompt = `Eres un asistente de CR Dental Studio en Colombia.
Responde SOLO lo que se pregunta. Sin información extra.
Si preguntan "ventas", solo di el monto. Si preguntan "inventario bajo", solo di los productos.
Máximo 10 palabras. Usa formato: $7.480.000 COP.
Profesional, directo, sin explicaciones adicionales.`

// fallbackReply se devuelve cuando el modelo responde con texto vacío.
const fallbackReply = "No pude procesar tu pregunta."

// llmTimeout límite por intercambio completo (las dos rondas).
const llmTimeout = 30 * time.Second

// FunctionDispatcher resuelve el catálogo de funciones y su ejecución.
// Todas las funciones son de solo lectura sobre los agregadores.
type FunctionDispatcher interface {
	Schemas() []ports.FunctionSchema
	// Dispatch ejecuta la función por nombre. Un nombre desconocido o un error
	// del agregador retornan error; el ciclo lo convierte en un objeto
	// {"error": ...} para el modelo en lugar de abortar el intercambio.
	Dispatch(ctx context.Context, name string, args json.RawMessage) (any, error)
}

// UseCase orquesta el intercambio con el modelo.
type UseCase struct {
	llm        ports.LLMService
	dispatcher FunctionDispatcher
}

// NewUseCase construye el caso de uso.
func NewUseCase(llm ports.LLMService, dispatcher FunctionDispatcher) *UseCase {
	return &UseCase{llm: llm, dispatcher: dispatcher}
}

// Answer procesa un mensaje del usuario y devuelve el texto final del
// asistente. Un fallo del modelo en cualquiera de las dos rondas retorna
// error (el handler lo traduce a la respuesta fija de error del chat).
func (uc *UseCase) Answer(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", domain.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	// Ronda 1: mensaje del usuario + prompt de sistema + catálogo de funciones.
	first, err := uc.llm.CreateTurn(ctx, ports.TurnInput{
		System:      systemPrompt,
		UserMessage: message,
		Tools:       uc.dispatcher.Schemas(),
	})
	if err != nil {
		return "", fmt.Errorf("chat: primera ronda: %w", err)
	}

	// Sin llamada a función: el texto de la primera ronda es terminal.
	if first.Call == nil {
		return textOrFallback(first.Text), nil
	}

	// Ejecutando Función. Los errores del despacho no abortan el intercambio:
	// se devuelven al modelo como objeto de error.
	result, dispatchErr := uc.dispatcher.Dispatch(ctx, first.Call.Name, first.Call.Arguments)
	if dispatchErr != nil {
		result = map[string]string{"error": dispatchErr.Error()}
	}
	payload, err := json.Marshal(result)
	if err != nil {
		payload = []byte(`{"error":"resultado no serializable"}`)
	}

	// Ronda 2: historial aumentado con el resultado, sin catálogo (a lo sumo
	// una llamada a función por mensaje).
	second, err := uc.llm.CreateTurn(ctx, ports.TurnInput{
		PreviousResponseID: first.ResponseID,
		Result: &ports.FunctionResult{
			CallID:  first.Call.CallID,
			Payload: string(payload),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat: segunda ronda: %w", err)
	}
	return textOrFallback(second.Text), nil
}

func textOrFallback(text string) string {
	if strings.TrimSpace(text) == "" {
		return fallbackReply
	}
	return text
}
