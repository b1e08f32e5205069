package models

import "time"

// Notification types
const (
	NotificationRequestReceived = "request_received"
	NotificationRequestApproved = "request_approved"
	NotificationRequestRejected = "request_rejected"
)

// Notification represents an inbox entry (PostgreSQL). Actor and recipient
// are Firebase UIDs.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"`
	ActorID     string    `json:"actor_id" gorm:"size:128;index"`
	RecipientID string    `json:"recipient_id" gorm:"size:128;index"`
	TargetID    string    `json:"target_id"`                  // request ID, pet ID, etc.
	TargetType  string    `json:"target_type" gorm:"size:20"` // request, pet, pin
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
