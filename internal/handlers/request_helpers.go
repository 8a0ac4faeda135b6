package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"backend/internal/authz"
	"backend/internal/models"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func ensureDBConnection(ctx context.Context, db *mongo.Database) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return db.Client().Ping(checkCtx, readpref.Primary())
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

// respondLookupError maps a FindOne failure: an absent document answers
// 404 with notFoundMessage, anything else is a server fault and must not
// masquerade as a missing resource.
func respondLookupError(c *gin.Context, route string, err error, notFoundMessage, serverMessage string) {
	if err == mongo.ErrNoDocuments {
		respondWithError(c, http.StatusNotFound, route, notFoundMessage)
		return
	}
	log.Printf("[%s] lookup failed: %v", route, err)
	respondWithError(c, http.StatusInternalServerError, route, serverMessage)
}

func respondValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := lowerCamel(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"message": strings.Join(details, ", "),
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// currentActor rebuilds the authenticated identity injected by the auth
// middleware. A missing identity means the route was wired without the
// middleware, which is answered with 401 rather than a panic.
func currentActor(c *gin.Context) (authz.Actor, bool) {
	userIDValue, ok := c.Get("userId")
	if !ok {
		return authz.Actor{}, false
	}
	userID, ok := userIDValue.(primitive.ObjectID)
	if !ok {
		return authz.Actor{}, false
	}

	roleValue, ok := c.Get("role")
	if !ok {
		return authz.Actor{}, false
	}
	role, ok := roleValue.(models.Role)
	if !ok {
		return authz.Actor{}, false
	}

	return authz.Actor{UserID: userID, Role: role}, true
}

func requireActor(c *gin.Context, route string) (authz.Actor, bool) {
	actor, ok := currentActor(c)
	if !ok {
		respondWithError(c, http.StatusUnauthorized, route, "No token provided")
	}
	return actor, ok
}
