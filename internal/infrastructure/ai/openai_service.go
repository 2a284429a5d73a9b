// Package ai contiene el adaptador hacia el modelo de lenguaje del asistente.
package ai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/intelguy8000/odontologia/internal/application/ports"
)

// Verificar en tiempo de compilación que OpenAIService implementa LLMService.
var _ ports.LLMService = (*OpenAIService)(nil)

// OpenAIService adaptador que implementa LLMService sobre la Responses API de
// OpenAI, con function calling para las consultas del consultorio.
type OpenAIService struct {
	client openai.Client
	model  string
}

// NewOpenAIService construye el adaptador. model suele ser "gpt-4o-mini".
// Si apiKey está vacío las llamadas fallan con error descriptivo; el handler
// de chat lo convierte en una respuesta controlada.
func NewOpenAIService(apiKey, model string) *OpenAIService {
	return &OpenAIService{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// CreateTurn ejecuta un turno contra el modelo. Primera ronda: mensaje del
// usuario + catálogo de funciones. Segunda ronda: resultado de la función
// encadenado vía PreviousResponseID.
func (s *OpenAIService) CreateTurn(ctx context.Context, in ports.TurnInput) (*ports.ModelReply, error) {
	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(s.model),
	}
	if in.System != "" {
		params.Instructions = openai.String(in.System)
	}
	if len(in.Tools) > 0 {
		params.Tools = toolParams(in.Tools)
	}

	switch {
	case in.Result != nil:
		// Segunda ronda: devolver el output de la función al modelo
		if in.PreviousResponseID == "" {
			return nil, fmt.Errorf("openai: falta previous_response_id para el resultado de función")
		}
		params.PreviousResponseID = openai.String(in.PreviousResponseID)
		params.Input = responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfFunctionCallOutput(in.Result.CallID, in.Result.Payload),
			},
		}
	default:
		params.Input = responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(in.UserMessage),
		}
	}

	resp, err := s.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai: crear respuesta: %w", err)
	}

	reply := &ports.ModelReply{
		ResponseID: resp.ID,
		Text:       resp.OutputText(),
	}
	for _, item := range resp.Output {
		if item.Type == "function_call" {
			fc := item.AsFunctionCall()
			reply.Call = &ports.FunctionCall{
				CallID:    fc.CallID,
				Name:      fc.Name,
				Arguments: []byte(fc.Arguments),
			}
			break // a lo sumo una llamada por turno
		}
	}
	return reply, nil
}

func toolParams(tools []ports.FunctionSchema) []responses.ToolUnionParam {
	out := make([]responses.ToolUnionParam, 0, len(tools))
	for _, t := range tools {
		out = append(out, responses.ToolUnionParam{
			OfFunction: &responses.FunctionToolParam{
				Name:        t.Name,
				Description: openai.String(t.Description),
				Parameters:  t.Parameters,
			},
		})
	}
	return out
}
