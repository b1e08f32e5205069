package models

import "time"

// Pet is a pet put up for adoption. It doubles as the likeable feed post,
// carrying the denormalized likes counter the like workflow mutates.
type Pet struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Species     string    `json:"species"`
	Breed       string    `json:"breed,omitempty"`
	AgeMonths   int       `json:"age_months"`
	Size        string    `json:"size"`
	Description string    `json:"description"`
	ImageURLs   []string  `json:"image_urls,omitempty"`
	OwnerID     string    `json:"owner_id"`
	LikesCount  int       `json:"likes_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreatePetRequest defines the request body for registering a pet. The
// mobile wizard collects this over several steps and posts it once.
type CreatePetRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=60"`
	Species     string   `json:"species" validate:"required,oneof=dog cat other"`
	Breed       string   `json:"breed,omitempty" validate:"omitempty,max=60"`
	AgeMonths   int      `json:"age_months" validate:"gte=0,lte=480"`
	Size        string   `json:"size" validate:"required,oneof=small medium large"`
	Description string   `json:"description" validate:"required,min=5,max=2000"`
	ImageURLs   []string `json:"image_urls,omitempty" validate:"omitempty,max=6,dive,url"`
}
