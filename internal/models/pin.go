package models

import "time"

// Pin categories, as the mobile app labels them
const (
	PinCategoryLost    = "PERDIDO"
	PinCategorySighted = "AVISTADO"
	PinCategoryFound   = "ENCONTRADO"
)

// MapPin is a geotagged lost/found/sighted report shown on the map screen.
type MapPin struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Animal      string    `json:"animal"`
	Trait       string    `json:"trait"`
	Description string    `json:"description"`
	MarkerURL   string    `json:"marker_url"`
	PhotoURL    string    `json:"photo_url"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Address     string    `json:"address"`
	CreatorID   string    `json:"creator_id"`
	ReportCount int       `json:"report_count"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreatePinRequest defines the request body for creating a map pin. The two
// images arrive base64-encoded from the mobile shell.
type CreatePinRequest struct {
	Category    string  `json:"category" validate:"required,oneof=PERDIDO AVISTADO ENCONTRADO"`
	Animal      string  `json:"animal" validate:"required,min=2,max=60"`
	Trait       string  `json:"trait" validate:"required,min=2,max=80"`
	Description string  `json:"description" validate:"required,min=5,max=1000"`
	Latitude    float64 `json:"latitude" validate:"required,latitude"`
	Longitude   float64 `json:"longitude" validate:"required,longitude"`
	Address     string  `json:"address" validate:"required"`
	MarkerImage string  `json:"marker_image" validate:"required,base64"`
	Photo       string  `json:"photo" validate:"required,base64"`
}
