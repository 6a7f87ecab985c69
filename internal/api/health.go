package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealmate/backend/internal/service"
)

// Health reports liveness. The service stays up without a generator, so a
// missing API key shows as "unavailable" rather than a failed check.
func Health(suggestions *service.SuggestionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		generator := "available"
		if !suggestions.Available() {
			generator = "unavailable"
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "generator": generator})
	}
}
