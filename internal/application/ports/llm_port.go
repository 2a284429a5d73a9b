package ports

import (
	"context"
	"encoding/json"
)

// FunctionSchema describe una función del catálogo que el modelo puede invocar.
// Parameters es un JSON Schema de los argumentos.
type FunctionSchema struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// FunctionCall es la solicitud del modelo de ejecutar una función del catálogo.
type FunctionCall struct {
	CallID    string
	Name      string
	Arguments json.RawMessage
}

// FunctionResult es el resultado serializado de una función, a devolver al
// modelo en la segunda ronda.
type FunctionResult struct {
	CallID  string
	Payload string
}

// TurnInput es la entrada de un turno contra el modelo. En la primera ronda se
// envían System, UserMessage y Tools; en la segunda, PreviousResponseID y
// Result (sin Tools: a lo sumo una llamada a función por mensaje).
type TurnInput struct {
	System             string
	UserMessage        string
	Tools              []FunctionSchema
	PreviousResponseID string
	Result             *FunctionResult
}

// ModelReply es la respuesta de un turno: texto y, si el modelo la solicitó,
// a lo sumo una llamada a función.
type ModelReply struct {
	ResponseID string
	Text       string
	Call       *FunctionCall
}

// LLMService define el puerto de salida hacia el modelo de lenguaje.
// Cualquier adaptador (OpenAI, mock de tests) debe implementar esta interfaz.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type LLMService interface {
	CreateTurn(ctx context.Context, in TurnInput) (*ModelReply, error)
}
