// Command seed bootstraps the first admin account. It is idempotent:
// rerunning with the same email updates the password and role instead
// of inserting a duplicate.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"suraksha/internal/config"
	"suraksha/internal/models"
	"suraksha/internal/utils"
	"suraksha/pkg/database"
)

func main() {
	name := getenv("ADMIN_NAME", "Administrator")
	email := getenv("ADMIN_EMAIL", "")
	password := getenv("ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewMongoDB(&database.Config{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	result, err := db.Collection("users").UpdateOne(ctx,
		bson.M{"email": utils.NormalizeEmail(email)},
		bson.M{
			"$set": bson.M{
				"name":       name,
				"password":   string(hashed),
				"role":       models.RoleAdmin,
				"updated_at": now,
			},
			"$setOnInsert": bson.M{
				"created_at": now,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	if result.UpsertedCount > 0 {
		log.Printf("Admin account created: %s", email)
	} else {
		log.Printf("Admin account updated: %s", email)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
