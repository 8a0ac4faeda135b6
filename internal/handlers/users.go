package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

type ProfileUpdateRequest struct {
	Phone       *string `json:"phone"`
	Location    *string `json:"location"`
	MemberSince *string `json:"memberSince"`
}

// ContactStats is the per-employee breakdown over their contacts.
type ContactStats struct {
	Total    int `json:"total"`
	Called   int `json:"called"`
	Rejected int `json:"rejected"`
	Leads    int `json:"leads"`
	Later    int `json:"later"`
}

type EmployeeStats struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Email string       `json:"email"`
	Stats ContactStats `json:"stats"`
}

// GetUsers returns every account without password hashes, sorted by name.
// Admin only; useful for picking owner ids when assigning contacts.
func GetUsers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /users"
		defer handlePanic(c, route)

		users, err := findUsers(c.Request.Context(), db, bson.M{})
		if err != nil {
			log.Println("[USERS] [ERROR] list users failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Failed to fetch users")
			return
		}

		c.JSON(http.StatusOK, publicViews(users))
	}
}

// GetEmployees returns all employee-role accounts, sorted by name.
func GetEmployees(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /users/employees"
		defer handlePanic(c, route)

		employees, err := findUsers(c.Request.Context(), db, bson.M{"role": models.RoleEmployee})
		if err != nil {
			log.Println("[USERS] [ERROR] list employees failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Failed to fetch employees")
			return
		}

		c.JSON(http.StatusOK, publicViews(employees))
	}
}

// GetEmployeeStats computes contact counts per employee, fresh on every
// call. The dataset is small scale, so no caching or aggregation pipeline.
func GetEmployeeStats(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /users/employees/stats"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		employees, err := findUsers(ctx, db, bson.M{"role": models.RoleEmployee})
		if err != nil {
			log.Println("[USERS] [ERROR] stats employee fetch failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Failed to fetch employee stats")
			return
		}

		result := make([]EmployeeStats, 0, len(employees))
		for _, employee := range employees {
			cursor, err := db.Collection("contacts").Find(ctx, bson.M{"userId": employee.ID})
			if err != nil {
				log.Println("[USERS] [ERROR] stats contact fetch failed:", err)
				respondWithError(c, http.StatusInternalServerError, route, "Failed to fetch employee stats")
				return
			}

			var contacts []models.Contact
			if err := cursor.All(ctx, &contacts); err != nil {
				log.Println("[USERS] [ERROR] stats contact decode failed:", err)
				respondWithError(c, http.StatusInternalServerError, route, "Failed to fetch employee stats")
				return
			}

			result = append(result, EmployeeStats{
				ID:    employee.ID.Hex(),
				Name:  employee.Name,
				Email: employee.Email,
				Stats: computeContactStats(contacts),
			})
		}

		c.JSON(http.StatusOK, result)
	}
}

// GetMe returns the caller's own profile.
func GetMe(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /users/me"
		defer handlePanic(c, route)

		actor, ok := requireActor(c, route)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": actor.UserID}).Decode(&user); err != nil {
			respondLookupError(c, route, err, "User not found", "Failed to fetch profile")
			return
		}

		c.JSON(http.StatusOK, user.Public())
	}
}

// UpdateMe partially updates the caller's phone, location and memberSince.
func UpdateMe(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /users/me"
		defer handlePanic(c, route)

		actor, ok := requireActor(c, route)
		if !ok {
			return
		}

		var req ProfileUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Invalid request body")
			return
		}

		updateFields, err := buildProfileUpdate(req, time.Now())
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		if len(updateFields) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "No fields to update")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.User
		err = db.Collection("users").FindOneAndUpdate(
			ctx,
			bson.M{"_id": actor.UserID},
			bson.M{"$set": updateFields},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "User not found")
				return
			}
			log.Println("[USERS] [ERROR] update me failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Failed to update profile")
			return
		}

		log.Println("[USERS] [INFO] profile updated:", updated.Email)
		c.JSON(http.StatusOK, updated.Public())
	}
}

func findUsers(ctx context.Context, db *mongo.Database, filter bson.M) ([]models.User, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := db.Collection("users").Find(queryCtx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(queryCtx)

	var users []models.User
	if err := cursor.All(queryCtx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func publicViews(users []models.User) []models.PublicView {
	views := make([]models.PublicView, 0, len(users))
	for _, user := range users {
		views = append(views, user.Public())
	}
	return views
}

func computeContactStats(contacts []models.Contact) ContactStats {
	stats := ContactStats{Total: len(contacts)}
	for _, contact := range contacts {
		if contact.Called {
			stats.Called++
		}
		switch contact.Status {
		case models.StatusRejected:
			stats.Rejected++
		case models.StatusLead:
			stats.Leads++
		case models.StatusFuture:
			stats.Later++
		}
	}
	return stats
}

// buildProfileUpdate turns the patch request into a $set document. A blank
// memberSince resets to now; an unparsable one is a validation error.
func buildProfileUpdate(req ProfileUpdateRequest, now time.Time) (bson.M, error) {
	updateFields := bson.M{}

	if req.Phone != nil {
		updateFields["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Location != nil {
		updateFields["location"] = strings.TrimSpace(*req.Location)
	}
	if req.MemberSince != nil {
		raw := strings.TrimSpace(*req.MemberSince)
		if raw == "" {
			updateFields["memberSince"] = now
		} else {
			parsed, err := parseDateInput(raw)
			if err != nil {
				return nil, errInvalidMemberSince
			}
			updateFields["memberSince"] = parsed
		}
	}

	return updateFields, nil
}
