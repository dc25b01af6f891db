package domain

import "time"

// RegistrationStatus is the state of a seat claim
type RegistrationStatus string

const (
	RegistrationConfirmed RegistrationStatus = "CONFIRMED"
	RegistrationCancelled RegistrationStatus = "CANCELLED"
)

// Registration Model
type Registration struct {
	ID               uint               `gorm:"primaryKey" json:"id"`                                      // Primary key
	EventID          uint               `gorm:"not null;index:idx_registration_event_user" json:"eventId"` // Foreign key to Event
	UserID           uint               `gorm:"not null;index:idx_registration_event_user" json:"userId"`  // Foreign key to User
	User             *User              `gorm:"constraint:OnDelete:CASCADE;" json:"-"`                     // Registered user
	RegistrationDate time.Time          `gorm:"not null" json:"registrationDate"`                          // When the seat was claimed
	Status           RegistrationStatus `gorm:"size:20;not null;index" json:"status"`                      // CONFIRMED or CANCELLED
}
