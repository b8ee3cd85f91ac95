package scoring

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/nutrition"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoremodel"
)

const maxBatch = 100

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// FoodInput is the food half of a scoring request. Serving may carry the
// label text ("250 ml") instead of a numeric serving_size.
type FoodInput struct {
	Nutrients nutrition.FoodNutrients `json:"nutrients"`
	Context   nutrition.FoodContext   `json:"context"`
	Serving   string                  `json:"serving,omitempty"`
}

func (f FoodInput) nutrients() nutrition.FoodNutrients {
	if f.Serving != "" && f.Nutrients.ServingSize == nil {
		return WithServingText(f.Nutrients, f.Serving)
	}
	return f.Nutrients
}

type ScoreRequest struct {
	Model   string                   `json:"model,omitempty"`
	Mode    Mode                     `json:"mode,omitempty"`
	Food    FoodInput                `json:"food"`
	Profile *nutrition.HealthProfile `json:"profile,omitempty"`
}

// ToRequest converts the wire form into an engine request.
func (r ScoreRequest) ToRequest() Request {
	req := Request{
		Nutrients: r.Food.nutrients(),
		Context:   r.Food.Context,
		Mode:      r.Mode,
	}
	if r.Profile != nil {
		req.Profile = *r.Profile
	}
	return req
}

type BatchRequest struct {
	Model   string                   `json:"model,omitempty"`
	Mode    Mode                     `json:"mode,omitempty"`
	Foods   []FoodInput              `json:"foods"`
	Profile *nutrition.HealthProfile `json:"profile,omitempty"`
}

type ScoreResponse struct {
	EvaluationID string `json:"evaluation_id"`
	Result
}

func validMode(m Mode) bool {
	return m == "" || m == PerHundred || m == PortionAware
}

func modelError(c *gin.Context, err error) {
	if errors.Is(err, scoremodel.ErrModelNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[SCORING] %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "scoring failed"})
}

//
// --------------------------------------------------
// POST /score
// --------------------------------------------------
//

func (h *Handler) Score() gin.HandlerFunc {
	return func(c *gin.Context) {

		var body ScoreRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if !validMode(body.Mode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be per_100g or portion_aware"})
			return
		}

		res, err := h.service.Score(body.Model, body.ToRequest())
		if err != nil {
			modelError(c, err)
			return
		}

		c.JSON(http.StatusOK, ScoreResponse{
			EvaluationID: uuid.NewString(),
			Result:       res,
		})
	}
}

//
// --------------------------------------------------
// POST /score/batch
// --------------------------------------------------
//

func (h *Handler) ScoreBatch() gin.HandlerFunc {
	return func(c *gin.Context) {

		var body BatchRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if !validMode(body.Mode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be per_100g or portion_aware"})
			return
		}
		if len(body.Foods) == 0 || len(body.Foods) > maxBatch {
			c.JSON(http.StatusBadRequest, gin.H{"error": "foods must contain between 1 and 100 items"})
			return
		}

		reqs := make([]Request, len(body.Foods))
		for i, f := range body.Foods {
			reqs[i] = ScoreRequest{Mode: body.Mode, Food: f, Profile: body.Profile}.ToRequest()
		}

		results, err := h.service.ScoreBatch(body.Model, reqs)
		if err != nil {
			modelError(c, err)
			return
		}

		out := make([]ScoreResponse, len(results))
		for i, r := range results {
			out[i] = ScoreResponse{EvaluationID: uuid.NewString(), Result: r}
		}
		c.JSON(http.StatusOK, gin.H{"results": out})
	}
}

//
// --------------------------------------------------
// POST /users/me/score
// --------------------------------------------------
//

func (h *Handler) ScoreForUser() gin.HandlerFunc {
	return func(c *gin.Context) {

		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var body ScoreRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if !validMode(body.Mode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be per_100g or portion_aware"})
			return
		}

		// The stored profile wins over anything sent in the body.
		body.Profile = nil

		res, err := h.service.ScoreForUser(
			c.Request.Context(),
			userID.(string),
			body.Model,
			body.ToRequest(),
		)
		if err != nil {
			modelError(c, err)
			return
		}

		c.JSON(http.StatusOK, ScoreResponse{
			EvaluationID: uuid.NewString(),
			Result:       res,
		})
	}
}
