package mcptool

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/google/uuid"

	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/nutrition"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoremodel"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoring"
)

var (
	ErrUnknownTool   = errors.New("unknown tool")
	ErrInvalidParams = errors.New("invalid parameters")
)

type ScoreFoodParams struct {
	Model     string                   `json:"model,omitempty" description:"Scoring model name (defaults to the configured default)"`
	Mode      scoring.Mode             `json:"mode,omitempty" description:"per_100g (default) or portion_aware"`
	Serving   string                   `json:"serving,omitempty" description:"Declared serving, e.g. \"250 ml\""`
	Nutrients nutrition.FoodNutrients  `json:"nutrients" description:"Nutrient quantities for the declared serving"`
	Context   nutrition.FoodContext    `json:"context" description:"Processing level, category and other food metadata"`
	Profile   *nutrition.HealthProfile `json:"profile,omitempty" description:"Health markers and condition flags of the person"`
}

type GetModelParams struct {
	Name string `json:"name" description:"Model name"`
}

// extractParams converts the request arguments into target.
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

func (s *Server) handleScoreFood(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ScoreFoodParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.Mode != "" && params.Mode != scoring.PerHundred && params.Mode != scoring.PortionAware {
		return nil, fmt.Errorf("%w: mode must be per_100g or portion_aware", ErrInvalidParams)
	}

	body := scoring.ScoreRequest{
		Model:   params.Model,
		Mode:    params.Mode,
		Profile: params.Profile,
		Food: scoring.FoodInput{
			Nutrients: params.Nutrients,
			Context:   params.Context,
			Serving:   params.Serving,
		},
	}
	res, err := s.scoring.Score(body.Model, body.ToRequest())
	if err != nil {
		return nil, err
	}
	return createJSONResponse(scoring.ScoreResponse{
		EvaluationID: uuid.NewString(),
		Result:       res,
	})
}

func (s *Server) handleListModels(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	return createJSONResponse(map[string]interface{}{
		"models": s.models.List(),
	})
}

func (s *Server) handleGetModel(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params GetModelParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	m, err := s.models.Get(params.Name)
	if err != nil {
		return nil, err
	}
	return createJSONResponse(m)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnknownTool), errors.Is(err, scoremodel.ErrModelNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidParams):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
