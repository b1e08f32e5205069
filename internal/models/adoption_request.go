package models

import "time"

// Adoption request statuses
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// ApplicantProfile is the free-form profile the applicant attaches to a
// request: who they are, how to reach them, and why they want the pet.
type ApplicantProfile struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Housing    string `json:"housing"`
	HasYard    bool   `json:"has_yard"`
	OtherPets  string `json:"other_pets,omitempty"`
	Motivation string `json:"motivation"`
}

// AdoptionRequest represents one user's request to adopt one pet. At most one
// live request may exist per (applicant, pet) pair.
type AdoptionRequest struct {
	ID          string           `json:"id"`
	ApplicantID string           `json:"applicant_id"`
	PetID       string           `json:"pet_id"`
	OwnerID     string           `json:"owner_id"`
	Status      string           `json:"status"`
	Profile     ApplicantProfile `json:"profile"`
	SubmittedAt time.Time        `json:"submitted_at"`
}

// SubmitAdoptionRequest defines the request body for submitting an adoption request
type SubmitAdoptionRequest struct {
	PetID      string `json:"pet_id" validate:"required"`
	FullName   string `json:"full_name" validate:"required,min=2,max=100"`
	Phone      string `json:"phone" validate:"required,min=6,max=30"`
	Email      string `json:"email" validate:"required,email"`
	Housing    string `json:"housing" validate:"required,oneof=house apartment rural other"`
	HasYard    bool   `json:"has_yard"`
	OtherPets  string `json:"other_pets,omitempty" validate:"omitempty,max=300"`
	Motivation string `json:"motivation" validate:"required,min=10,max=1000"`
}
