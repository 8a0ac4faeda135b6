package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/authz"
	"backend/internal/models"
)

type CreateContactRequest struct {
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone" binding:"required"`
	UserID string `json:"userId"`
}

type ReplaceContactRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Remark string `json:"remark"`
	Status string `json:"status"`
}

// CreateContact inserts a new contact. The owner defaults to the caller;
// only admins may name another user, per the ownership policy.
func CreateContact(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /contacts"
		defer handlePanic(c, route)

		actor, ok := requireActor(c, route)
		if !ok {
			return
		}

		var req CreateContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		name := strings.TrimSpace(req.Name)
		phone := strings.TrimSpace(req.Phone)
		if name == "" || phone == "" {
			respondWithError(c, http.StatusBadRequest, route, "Name and phone are required fields")
			return
		}

		ownerID, err := authz.ResolveOwner(actor, req.UserID)
		if err != nil {
			switch err {
			case authz.ErrForbidden:
				respondWithError(c, http.StatusForbidden, route, "You can only assign contacts to yourself")
			default:
				respondWithError(c, http.StatusBadRequest, route, "Invalid userId")
			}
			return
		}

		now := time.Now()
		contact := models.Contact{
			UserID:    ownerID,
			Name:      name,
			Phone:     phone,
			Remark:    "",
			Status:    models.StatusFuture,
			Called:    false,
			CreatedAt: now,
			UpdatedAt: now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("contacts").InsertOne(ctx, contact)
		if err != nil {
			log.Println("[CONTACTS] [ERROR] insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Failed to create contact")
			return
		}

		contact.ID, _ = res.InsertedID.(primitive.ObjectID)
		log.Println("[CONTACTS] [INFO] contact created:", contact.ID.Hex())
		c.JSON(http.StatusCreated, contact)
	}
}

// GetContacts lists contacts visible to the caller, newest first. Admins
// see every owner; employees are implicitly scoped to themselves.
func GetContacts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /contacts"
		defer handlePanic(c, route)

		actor, ok := requireActor(c, route)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("contacts").Find(ctx, authz.ListFilter(actor), findOptions)
		if err != nil {
			log.Println("[CONTACTS] [ERROR] list failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Failed to fetch contacts")
			return
		}
		defer cursor.Close(ctx)

		contacts := make([]models.Contact, 0)
		if err := cursor.All(ctx, &contacts); err != nil {
			log.Println("[CONTACTS] [ERROR] list decode failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Failed to fetch contacts")
			return
		}

		c.JSON(http.StatusOK, contacts)
	}
}

// GetContact returns a single contact. An absent contact is 404; an
// existing one the caller may not see is 403 — never conflated.
func GetContact(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /contacts/:id"
		defer handlePanic(c, route)

		actor, ok := requireActor(c, route)
		if !ok {
			return
		}

		contact, ok := fetchContactAuthorized(c, db, actor, route)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, contact)
	}
}

// UpdateContact applies a partial update to remark, status, followUpDate
// and called. Untouched fields stay as they are; updatedAt is refreshed.
func UpdateContact(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /contacts/:id"
		defer handlePanic(c, route)

		actor, ok := requireActor(c, route)
		if !ok {
			return
		}

		var payload map[string]interface{}
		if err := c.ShouldBindJSON(&payload); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Invalid request body")
			return
		}

		contact, ok := fetchContactAuthorized(c, db, actor, route)
		if !ok {
			return
		}

		updateFields, err := buildContactUpdate(payload, time.Now())
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		// Conditional write: the employee filter includes the owner, so a
		// delete racing this update surfaces as NotFound instead of
		// writing through a stale ownership check.
		var updated models.Contact
		err = db.Collection("contacts").FindOneAndUpdate(
			ctx,
			authz.MutationFilter(actor, contact.ID),
			bson.M{"$set": updateFields},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "Contact not found")
				return
			}
			log.Println("[CONTACTS] [ERROR] update failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Failed to update contact")
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// ReplaceContact overwrites name, phone, remark and status with the
// supplied values. Unlike the partial update it does not check status
// against the enum; the two routes have always disagreed on strictness
// and clients rely on the loose one. Ownership is never altered.
func ReplaceContact(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /contacts/:id"
		defer handlePanic(c, route)

		actor, ok := requireActor(c, route)
		if !ok {
			return
		}

		var req ReplaceContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Invalid request body")
			return
		}

		contact, ok := fetchContactAuthorized(c, db, actor, route)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Contact
		err := db.Collection("contacts").FindOneAndUpdate(
			ctx,
			authz.MutationFilter(actor, contact.ID),
			bson.M{"$set": bson.M{
				"name":      req.Name,
				"phone":     req.Phone,
				"remark":    req.Remark,
				"status":    req.Status,
				"updatedAt": time.Now(),
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "Contact not found")
				return
			}
			log.Println("[CONTACTS] [ERROR] replace failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Failed to update contact")
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// DeleteContact removes a contact. Deleting an already-deleted id answers
// 404, not success.
func DeleteContact(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /contacts/:id"
		defer handlePanic(c, route)

		actor, ok := requireActor(c, route)
		if !ok {
			return
		}

		contact, ok := fetchContactAuthorized(c, db, actor, route)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("contacts").DeleteOne(ctx, authz.MutationFilter(actor, contact.ID))
		if err != nil {
			log.Println("[CONTACTS] [ERROR] delete failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Failed to delete contact")
			return
		}
		if result.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "Contact not found")
			return
		}

		log.Println("[CONTACTS] [INFO] contact deleted:", contact.ID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "Contact deleted successfully"})
	}
}

// fetchContactAuthorized loads the contact and runs the ownership policy.
// It writes the error response itself and reports success via the second
// return value, keeping the 404-before-403 ordering in one place.
func fetchContactAuthorized(c *gin.Context, db *mongo.Database, actor authz.Actor, route string) (models.Contact, bool) {
	contactID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
	if err != nil {
		respondWithError(c, http.StatusBadRequest, route, "Invalid contact id")
		return models.Contact{}, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var contact models.Contact
	if err := db.Collection("contacts").FindOne(ctx, bson.M{"_id": contactID}).Decode(&contact); err != nil {
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "Contact not found")
			return models.Contact{}, false
		}
		log.Println("[CONTACTS] [ERROR] lookup failed:", err)
		respondWithError(c, http.StatusInternalServerError, route, "Failed to fetch contact")
		return models.Contact{}, false
	}

	if !authz.CanAccess(actor, contact.UserID) {
		respondWithError(c, http.StatusForbidden, route, "Access denied")
		return models.Contact{}, false
	}

	return contact, true
}

// buildContactUpdate turns a partial-update payload into a $set document.
// Status must name a known state; followUpDate clears on null or blank;
// called coerces the way a loosely typed client would expect.
func buildContactUpdate(payload map[string]interface{}, now time.Time) (bson.M, error) {
	updateFields := bson.M{"updatedAt": now}

	if value, present := payload["status"]; present {
		status, ok := value.(string)
		if !ok || !models.ValidStatus(status) {
			return nil, fmt.Errorf("Invalid status. Must be one of: %s, %s, %s",
				models.StatusFuture, models.StatusRejected, models.StatusLead)
		}
		updateFields["status"] = status
	}

	if value, present := payload["remark"]; present {
		remark, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("Invalid remark")
		}
		updateFields["remark"] = remark
	}

	if value, present := payload["followUpDate"]; present {
		switch v := value.(type) {
		case nil:
			updateFields["followUpDate"] = nil
		case string:
			if strings.TrimSpace(v) == "" {
				updateFields["followUpDate"] = nil
			} else {
				parsed, err := parseDateInput(v)
				if err != nil {
					return nil, errInvalidFollowUpDate
				}
				updateFields["followUpDate"] = parsed
			}
		case float64:
			// Numeric input is milliseconds since epoch; zero clears the
			// date the same way a blank string does.
			if v == 0 {
				updateFields["followUpDate"] = nil
			} else {
				updateFields["followUpDate"] = time.UnixMilli(int64(v))
			}
		default:
			return nil, errInvalidFollowUpDate
		}
	}

	if value, present := payload["called"]; present {
		updateFields["called"] = coerceBool(value)
	}

	return updateFields, nil
}

func coerceBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case nil:
		return false
	default:
		return true
	}
}
