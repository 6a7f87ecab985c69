package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pageza/mealmate/backend/internal/metrics"
	"github.com/pageza/mealmate/backend/internal/model"
)

const (
	// DefaultModel is the Gemini model used for meal suggestions
	DefaultModel = "gemini-2.5-flash"
	// Temperature is kept low so the model sticks to the Markdown layout
	Temperature = 0.4
)

// FailureKind tags why a suggestion could not be produced
type FailureKind string

const (
	KindUnavailable   FailureKind = "unavailable"
	KindValidation    FailureKind = "validation"
	KindRequestFormat FailureKind = "request_format"
	KindUpstream      FailureKind = "upstream"
	KindUnexpected    FailureKind = "unexpected"
)

// Failure is the error half of a SuggestionResult
type Failure struct {
	Kind       FailureKind
	Message    string
	StatusCode int
}

// SuggestionResult holds either a recipe or a Failure, never both
type SuggestionResult struct {
	Recipe  string
	Failure *Failure
}

// OK reports whether the result carries a recipe
func (r SuggestionResult) OK() bool {
	return r.Failure == nil
}

// StatusCode is the HTTP status the result maps to
func (r SuggestionResult) StatusCode() int {
	if r.Failure != nil {
		return r.Failure.StatusCode
	}
	return http.StatusOK
}

// Outcome is the label used for metrics and the journal
func (r SuggestionResult) Outcome() string {
	if r.Failure != nil {
		return string(r.Failure.Kind)
	}
	return "success"
}

// RequestFormatFailure builds the result for a body that could not be decoded
func RequestFormatFailure(err error) SuggestionResult {
	return fail(KindRequestFormat, http.StatusBadRequest, fmt.Sprintf("Invalid request body format: %v", err))
}

func fail(kind FailureKind, status int, msg string) SuggestionResult {
	return SuggestionResult{Failure: &Failure{Kind: kind, Message: msg, StatusCode: status}}
}

const agentInstruction = "You are a helpful and creative Mobile Meal Planner Agent. " +
	"Your task is to generate a simple, easy-to-follow recipe for a beginner. " +
	"Do not use complex or rare ingredients. The total time to prepare should be under 30 minutes. " +
	"The response MUST be a single, structured Markdown string using the following format:\n\n" +
	"## 🍽️ [Recipe Name]\n\n" +
	"**Time:** [Total Time]\n\n" +
	"**Ingredients:**\n* [Ingredient 1]\n* [Ingredient 2]\n* ...\n\n" +
	"**Instructions:**\n1. [Step 1]\n2. [Step 2]\n3. ..."

// BuildPrompt places the fixed instruction block before the user request.
// Both values are inserted verbatim, once each.
func BuildPrompt(ingredient, restriction string) string {
	userRequest := "Generate a recipe using the main ingredient: *" + ingredient + "*. " +
		"The recipe must strictly follow the dietary requirement: *" + restriction + "*."
	return agentInstruction + "\n\n" + userRequest
}

// SuggestionService validates meal suggestion requests and resolves them
// through the generator. Journal and archiver are optional.
type SuggestionService struct {
	generator Generator
	model     string
	journal   Journal
	archiver  Archiver
	log       logrus.FieldLogger
}

// NewSuggestionService creates a new SuggestionService. A nil generator leaves
// the service permanently unavailable.
func NewSuggestionService(generator Generator, model string, journal Journal, archiver Archiver, log logrus.FieldLogger) *SuggestionService {
	if model == "" {
		model = DefaultModel
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SuggestionService{
		generator: generator,
		model:     model,
		journal:   journal,
		archiver:  archiver,
		log:       log.WithField("component", "suggestion"),
	}
}

// Available reports whether a generator was configured
func (s *SuggestionService) Available() bool {
	return s.generator != nil
}

// Journal returns the configured journal, or nil
func (s *SuggestionService) Journal() Journal {
	return s.journal
}

// Suggest resolves one meal suggestion. It makes at most one generator call
// and never returns a partial result.
func (s *SuggestionService) Suggest(ctx context.Context, ingredient, restriction string) SuggestionResult {
	start := time.Now()
	ingredient = strings.TrimSpace(ingredient)
	restriction = strings.TrimSpace(restriction)

	result := s.resolve(ctx, ingredient, restriction)
	metrics.IncSuggestion(result.Outcome())

	s.record(ctx, ingredient, restriction, result, time.Since(start))
	return result
}

func (s *SuggestionService) resolve(ctx context.Context, ingredient, restriction string) SuggestionResult {
	if s.generator == nil {
		return fail(KindUnavailable, http.StatusInternalServerError,
			"Service Error: AI Client not available. Check server configuration.")
	}

	if ingredient == "" || restriction == "" {
		return fail(KindValidation, http.StatusBadRequest,
			"Validation Error: Both ingredient and restriction are required.")
	}

	return s.generate(ctx, BuildPrompt(ingredient, restriction))
}

// generate performs the single upstream call and maps its outcome
func (s *SuggestionService) generate(ctx context.Context, prompt string) SuggestionResult {
	start := time.Now()
	text, err := s.generator.Generate(ctx, GenerateRequest{
		Model:       s.model,
		Prompt:      prompt,
		Temperature: Temperature,
	})

	var apiErr *APIError
	switch {
	case err == nil:
		metrics.ObserveGeneration(s.model, "success", time.Since(start))
		return SuggestionResult{Recipe: text}
	case errors.As(err, &apiErr):
		metrics.ObserveGeneration(s.model, "api_error", time.Since(start))
		s.log.WithError(err).Error("generation service returned an error")
		return fail(KindUpstream, http.StatusInternalServerError,
			fmt.Sprintf("API Error: Failed to generate content. Detail: %v", err))
	default:
		metrics.ObserveGeneration(s.model, "error", time.Since(start))
		s.log.WithError(err).Error("generation call failed")
		return fail(KindUnexpected, http.StatusInternalServerError,
			fmt.Sprintf("Unexpected Server Error: %v", err))
	}
}

// record archives successful recipes and journals every outcome. Failures
// here are logged and never change the result.
func (s *SuggestionService) record(ctx context.Context, ingredient, restriction string, result SuggestionResult, elapsed time.Duration) {
	if s.journal == nil && s.archiver == nil {
		return
	}

	entry := &model.Suggestion{
		ID:          uuid.New(),
		CreatedAt:   time.Now().UTC(),
		RequestID:   RequestIDFromContext(ctx),
		Ingredient:  ingredient,
		Restriction: restriction,
		Model:       s.model,
		Outcome:     result.Outcome(),
		StatusCode:  result.StatusCode(),
		Recipe:      result.Recipe,
		DurationMS:  elapsed.Milliseconds(),
	}
	if result.Failure != nil {
		entry.Error = result.Failure.Message
	}

	log := s.log.WithField("suggestion_id", entry.ID.String())

	if s.archiver != nil && result.OK() {
		key, err := s.archiver.Archive(ctx, entry)
		if err != nil {
			metrics.IncError("archive", "upload")
			log.WithError(err).Warn("failed to archive recipe")
		} else {
			entry.ArchiveKey = key
		}
	}

	if s.journal != nil {
		if err := s.journal.Record(ctx, entry); err != nil {
			metrics.IncError("journal", "record")
			log.WithError(err).Warn("failed to record suggestion")
		}
	}
}

type requestIDKey struct{}

// ContextWithRequestID attaches a request id for journal records
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id set by ContextWithRequestID
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
