package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureContactIndexes(db); err != nil {
		log.Printf("contact index warning: %v", err)
	}

	r := gin.Default()
	r.Static("/uploads", config.AppEnv.UploadDir)

	api := r.Group("/api")

	api.GET("/health", handlers.Health(db))

	auth := api.Group("/auth")
	{
		auth.POST("/signup", handlers.Signup(db, config.AppEnv.JWTSecret, config.AppEnv.TokenTTL))
		auth.POST("/login", handlers.Login(db, config.AppEnv.JWTSecret, config.AppEnv.TokenTTL))
	}

	users := api.Group("/users")
	users.Use(middleware.Authenticate(config.AppEnv.JWTSecret))
	{
		users.GET("", middleware.AdminOnly(), handlers.GetUsers(db))
		users.GET("/employees", middleware.AdminOnly(), handlers.GetEmployees(db))
		users.GET("/employees/stats", middleware.AdminOnly(), handlers.GetEmployeeStats(db))

		users.GET("/me", handlers.GetMe(db))
		users.PATCH("/me", handlers.UpdateMe(db))
		users.POST("/me/profile-picture", handlers.UploadProfilePicture(db, config.AppEnv.UploadDir))
	}

	contacts := api.Group("/contacts")
	contacts.Use(middleware.Authenticate(config.AppEnv.JWTSecret))
	{
		contacts.GET("", handlers.GetContacts(db))
		contacts.POST("", handlers.CreateContact(db))
		contacts.GET("/:id", handlers.GetContact(db))
		contacts.PATCH("/:id", handlers.UpdateContact(db))
		contacts.PUT("/:id", handlers.ReplaceContact(db))
		contacts.DELETE("/:id", handlers.DeleteContact(db))
	}

	r.Run(":" + config.AppEnv.Port)
}
