package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealmate/backend/internal/logging"
	"github.com/pageza/mealmate/backend/internal/middleware"
	"github.com/pageza/mealmate/backend/internal/mocks"
	"github.com/pageza/mealmate/backend/internal/model"
	"github.com/pageza/mealmate/backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSetupRouterRoutes(t *testing.T) {
	gen := new(mocks.MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return("## Pasta", nil)
	svc := service.NewSuggestionService(gen, "", nil, nil, logging.Discard())
	router := SetupRouter(svc, nil, logging.Discard())

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		code   int
	}{
		{name: "index", method: http.MethodGet, path: "/", code: http.StatusOK},
		{name: "script", method: http.MethodGet, path: "/script.js", code: http.StatusOK},
		{name: "health", method: http.MethodGet, path: "/health", code: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", code: http.StatusOK},
		{name: "suggest", method: http.MethodPost, path: "/api/suggest_meal", body: `{"ingredient":"pasta","restriction":"none"}`, code: http.StatusOK},
		{name: "suggest wrong method", method: http.MethodGet, path: "/api/suggest_meal", code: http.StatusNotFound},
		{name: "history without journal", method: http.MethodGet, path: "/api/suggestions", code: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.code, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestSetupRouterHistoryWithJournal(t *testing.T) {
	journal := new(mocks.MockJournal)
	journal.On("Recent", mock.Anything, 20).Return([]*model.Suggestion{}, nil)
	svc := service.NewSuggestionService(nil, "", journal, nil, logging.Discard())

	w := serve(SetupRouter(svc, nil, logging.Discard()), http.MethodGet, "/api/suggestions", "")

	assert.Equal(t, http.StatusOK, w.Code)
	journal.AssertExpectations(t)
}

func TestSetupRouterCORSPreflight(t *testing.T) {
	svc := service.NewSuggestionService(nil, "", nil, nil, logging.Discard())
	router := SetupRouter(svc, nil, logging.Discard())

	req := httptest.NewRequest(http.MethodOptions, "/api/suggest_meal", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Less(t, w.Code, 300)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
