package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/OyhamburoDev/luna-backend/internal/handlers"
	"github.com/OyhamburoDev/luna-backend/internal/legacy"
	"github.com/OyhamburoDev/luna-backend/internal/middleware"
	"github.com/OyhamburoDev/luna-backend/internal/models"
	"github.com/OyhamburoDev/luna-backend/internal/repositories"
	"github.com/OyhamburoDev/luna-backend/internal/services"
	"github.com/OyhamburoDev/luna-backend/internal/storage"
	"github.com/OyhamburoDev/luna-backend/internal/store"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// collection holding the per-user adoption submission counters
const requestLimitsCollection = "requestLimits"

// Deps carries the external collaborators the routes are wired against.
type Deps struct {
	Store      store.DocumentStore
	Postgres   *gorm.DB // optional; nil disables the notification inbox
	AuthClient *auth.Client
	Uploader   storage.Uploader
	Geocoder   *legacy.GeocodeClient
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Deps) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	requestRepo := repositories.NewStoreAdoptionRequestRepository(deps.Store)
	counterRepo := repositories.NewStoreCounterRepository(deps.Store, requestLimitsCollection)
	petRepo := repositories.NewStorePetRepository(deps.Store)
	likeRepo := repositories.NewStoreLikeRepository(deps.Store, repositories.CollectionPets)
	pinRepo := repositories.NewStorePinRepository(deps.Store)

	var notificationRepo repositories.NotificationRepository
	if deps.Postgres != nil {
		if err := deps.Postgres.AutoMigrate(&models.Notification{}); err != nil {
			log.Fatalf("Failed to auto migrate models: %v", err)
		}
		notificationRepo = repositories.NewPostgresNotificationRepository(deps.Postgres)
		log.Println("PostgreSQL auto-migrations completed.")
	} else {
		log.Println("PostgreSQL not configured; notification inbox disabled.")
	}

	// --- Protected routes (require a Firebase ID token) ---
	api := e.Group("/api/v1")
	api.Use(middleware.FirebaseAuthMiddleware(deps.AuthClient))
	log.Println("Firebase authentication middleware applied to /api/v1 group.")

	// Adoption request routes
	adoptionService := services.NewAdoptionService(requestRepo, petRepo, counterRepo, notificationRepo)
	adoptionHandler := handlers.NewAdoptionHandler(adoptionService)
	adoptionHandler.RegisterAdoptionRoutes(api)
	log.Println("Adoption routes configured.")

	// Pet routes
	petHandler := handlers.NewPetHandler(services.NewPetService(petRepo))
	petHandler.RegisterPetRoutes(api)
	log.Println("Pet routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(services.NewLikeService(likeRepo))
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	// Pin routes
	pinHandler := handlers.NewPinHandler(services.NewPinService(pinRepo, deps.Uploader))
	pinHandler.RegisterPinRoutes(api)
	log.Println("Pin routes configured.")

	// Notification routes
	if notificationRepo != nil {
		notificationHandler := handlers.NewNotificationHandler(notificationRepo)
		notificationHandler.RegisterNotificationRoutes(api)
		log.Println("Notification routes configured.")
	}

	// Legacy geocoding routes
	geocodeHandler := handlers.NewGeocodeHandler(deps.Geocoder)
	geocodeHandler.RegisterGeocodeRoutes(api)
	log.Println("Geocode routes configured.")

	log.Println("All routes configured.")
}
