package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/mealmate/backend/internal/api"
	"github.com/pageza/mealmate/backend/internal/metrics"
	"github.com/pageza/mealmate/backend/internal/middleware"
	"github.com/pageza/mealmate/backend/internal/service"
	"github.com/pageza/mealmate/backend/internal/web"
)

// SetupRouter configures the application routes
func SetupRouter(suggestions *service.SuggestionService, corsOrigins []string, log logrus.FieldLogger) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(corsOrigins))

	router.GET("/health", api.Health(suggestions))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	web.RegisterRoutes(router)

	apiGroup := router.Group("/api")
	api.NewSuggestHandler(suggestions).RegisterRoutes(apiGroup)

	// History is only exposed when a journal backend is configured
	if journal := suggestions.Journal(); journal != nil {
		api.NewHistoryHandler(journal).RegisterRoutes(apiGroup)
	}

	return router
}
