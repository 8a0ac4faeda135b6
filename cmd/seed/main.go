// Seed inserts a handful of demo contacts for every employee account.
// Development tooling: run it against a local database after signing up a
// few employees to get data into the contact list and the stats view.
package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/models"
)

var demoContacts = []struct {
	Name  string
	Phone string
}{
	{"John Doe", "1234567890"},
	{"Jane Smith", "0987654321"},
	{"Bob Johnson", "5555555555"},
	{"Alice Williams", "4444444444"},
}

func demoContactFor(employeeID primitive.ObjectID, name, phone string, now time.Time) models.Contact {
	return models.Contact{
		UserID:    employeeID,
		Name:      name,
		Phone:     phone,
		Remark:    "",
		Status:    models.StatusFuture,
		Called:    false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer client.Disconnect(ctx)

	cursor, err := db.Collection("users").Find(ctx, bson.M{"role": models.RoleEmployee})
	if err != nil {
		log.Fatal("employee lookup failed:", err)
	}

	var employees []models.User
	if err := cursor.All(ctx, &employees); err != nil {
		log.Fatal("employee decode failed:", err)
	}
	if len(employees) == 0 {
		log.Println("no employees found, nothing to seed")
		return
	}

	for _, employee := range employees {
		for _, demo := range demoContacts {
			contact := demoContactFor(employee.ID, demo.Name, demo.Phone, time.Now())
			if _, err := db.Collection("contacts").InsertOne(ctx, contact); err != nil {
				log.Printf("failed to create contact %q for %s: %v", demo.Name, employee.Email, err)
				continue
			}
			log.Printf("created contact %q for employee %s", demo.Name, employee.Email)
		}
	}
}
