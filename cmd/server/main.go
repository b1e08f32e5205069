package main

import (
	"context"
	"log"

	"github.com/OyhamburoDev/luna-backend/internal/legacy"
	"github.com/OyhamburoDev/luna-backend/internal/router"
	"github.com/OyhamburoDev/luna-backend/internal/storage"
	"github.com/OyhamburoDev/luna-backend/internal/store"
	"github.com/OyhamburoDev/luna-backend/pkg/config"
	"github.com/OyhamburoDev/luna-backend/pkg/firebase"
	"github.com/OyhamburoDev/luna-backend/pkg/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.StorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Select the document store backend
	var documents store.DocumentStore
	switch cfg.StoreBackend {
	case "mongo":
		documents = store.NewMongoStore(db.Mongo.Database(cfg.MongoDatabase))
		log.Println("Using MongoDB document store.")
	default:
		documents = store.NewFirestoreStore(firebaseApp.Firestore)
		log.Println("Using Firestore document store.")
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, router.Deps{
		Store:      documents,
		Postgres:   db.Postgres,
		AuthClient: firebaseApp.AuthClient,
		Uploader:   storage.NewGCSUploader(firebaseApp.Bucket, firebaseApp.BucketName),
		Geocoder:   legacy.NewGeocodeClient(cfg.LegacyAPIBaseURL),
	})

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
