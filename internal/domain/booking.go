package domain

import "time"

// BookingStatus is the state of a booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"   // Created, awaiting payment
	BookingConfirmed BookingStatus = "CONFIRMED" // Paid
)

// Booking Model
type Booking struct {
	ID           uint          `gorm:"primaryKey" json:"id"`                                             // Primary key
	EventName    string        `gorm:"size:255;not null" json:"eventName"`                               // Free text, not a foreign key
	CustomerName string        `gorm:"size:255;not null" json:"customerName"`                            // Free text
	BookingDate  time.Time     `gorm:"not null" json:"bookingDate"`                                      // Day the booking was made
	Status       BookingStatus `gorm:"size:20;not null" json:"status"`                                   // PENDING until paid
	Payment      *Payment      `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;" json:"payment"` // At most one payment
}
