package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"backend/internal/models"
	"backend/internal/token"
)

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup registers a new account and answers with a fresh session token.
// An unknown role value downgrades to employee instead of failing; clients
// depend on that behavior.
func Signup(db *mongo.Database, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/signup"
		defer handlePanic(c, route)

		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		name := strings.TrimSpace(req.Name)
		email := strings.ToLower(strings.TrimSpace(req.Email))
		password := req.Password
		if name == "" || email == "" || password == "" {
			respondWithError(c, http.StatusBadRequest, route, "Name, email, and password are required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			log.Println("[AUTH] [ERROR] signup db error:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Server error during signup")
			return
		}
		if count > 0 {
			log.Println("[AUTH] [ERROR] signup email exists:", email)
			respondWithError(c, http.StatusBadRequest, route, "User with this email already exists")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Println("[AUTH] [ERROR] signup password hash failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Server error during signup")
			return
		}

		user := models.User{
			Name:      name,
			Email:     email,
			Password:  string(hash),
			Role:      models.ParseRole(req.Role),
			CreatedAt: time.Now(),
		}

		res, err := db.Collection("users").InsertOne(ctx, user)
		if err != nil {
			// The unique index closes the race between the count above and
			// a concurrent signup with the same email.
			if mongo.IsDuplicateKeyError(err) {
				respondWithError(c, http.StatusBadRequest, route, "User with this email already exists")
				return
			}
			log.Println("[AUTH] [ERROR] signup insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Server error during signup")
			return
		}

		user.ID, _ = res.InsertedID.(primitive.ObjectID)
		signed, err := token.Issue(user.ID, user.Role, jwtSecret, tokenTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] signup token generation failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Server error during signup")
			return
		}

		log.Println("[AUTH] [INFO] user registered:", email)
		c.JSON(http.StatusCreated, gin.H{
			"message": "User created successfully",
			"token":   signed,
			"user":    user.Public(),
		})
	}
}

// Login authenticates email+password. Unknown email and wrong password
// answer with the same message so the endpoint cannot be used to probe
// which emails are registered.
func Login(db *mongo.Database, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/login"
		defer handlePanic(c, route)

		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || req.Password == "" {
			respondWithError(c, http.StatusBadRequest, route, "Email and password are required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				log.Println("[AUTH] [ERROR] login unknown email")
				respondWithError(c, http.StatusUnauthorized, route, "Invalid email or password")
				return
			}
			log.Println("[AUTH] [ERROR] login user lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Server error during login")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			log.Println("[AUTH] [ERROR] login invalid credentials")
			respondWithError(c, http.StatusUnauthorized, route, "Invalid email or password")
			return
		}

		signed, err := token.Issue(user.ID, user.Role, jwtSecret, tokenTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] login token generation failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Server error during login")
			return
		}

		log.Println("[AUTH] [INFO] login succeeded:", email)
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"token":   signed,
			"user":    user.Public(),
		})
	}
}
