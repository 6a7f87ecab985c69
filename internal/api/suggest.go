package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealmate/backend/internal/metrics"
	"github.com/pageza/mealmate/backend/internal/middleware"
	"github.com/pageza/mealmate/backend/internal/service"
)

// SuggestRequest is the body of POST /api/suggest_meal. Absent keys decode
// to the empty string and are then rejected by validation.
type SuggestRequest struct {
	Ingredient  string `json:"ingredient"`
	Restriction string `json:"restriction"`
}

// textField is a JSON string that may be absent but never null or another type
type textField string

func (f *textField) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return errors.New("expected a string, got null")
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = textField(s)
	return nil
}

// decodeSuggestRequest accepts exactly one JSON object with no trailing data
func decodeSuggestRequest(body []byte) (SuggestRequest, error) {
	var wire *struct {
		Ingredient  textField `json:"ingredient"`
		Restriction textField `json:"restriction"`
	}
	if err := json.Unmarshal(body, &wire); err != nil {
		return SuggestRequest{}, err
	}
	if wire == nil {
		return SuggestRequest{}, errors.New("request body must be a JSON object, got null")
	}
	return SuggestRequest{
		Ingredient:  string(wire.Ingredient),
		Restriction: string(wire.Restriction),
	}, nil
}

// SuggestHandler handles meal suggestion requests
type SuggestHandler struct {
	suggestions *service.SuggestionService
}

// NewSuggestHandler creates a new SuggestHandler instance
func NewSuggestHandler(suggestions *service.SuggestionService) *SuggestHandler {
	return &SuggestHandler{suggestions: suggestions}
}

// RegisterRoutes registers the suggestion routes
func (h *SuggestHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/suggest_meal", h.SuggestMeal)
}

// SuggestMeal handles POST /api/suggest_meal
func (h *SuggestHandler) SuggestMeal(c *gin.Context) {
	req, err := readSuggestRequest(c)
	if err != nil {
		result := service.RequestFormatFailure(err)
		metrics.IncSuggestion(result.Outcome())
		middleware.Logger(c).WithError(err).Warn("invalid suggestion request body")
		c.JSON(result.StatusCode(), gin.H{"error": result.Failure.Message})
		return
	}

	result := h.suggestions.Suggest(c.Request.Context(), req.Ingredient, req.Restriction)
	if !result.OK() {
		c.JSON(result.StatusCode(), gin.H{"error": result.Failure.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": result.Recipe})
}

func readSuggestRequest(c *gin.Context) (SuggestRequest, error) {
	body, err := c.GetRawData()
	if err != nil {
		return SuggestRequest{}, err
	}
	return decodeSuggestRequest(body)
}
