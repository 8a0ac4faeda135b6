package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// Health reports liveness plus a database ping.
func Health(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /health"

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Database unavailable")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "CRM Backend API is running",
		})
	}
}
