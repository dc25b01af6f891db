package domain

import (
	"time"

	"github.com/shopspring/decimal" // Exact decimal amounts
)

// PaymentStatus is the state of a payment
type PaymentStatus string

// PaymentCompleted is the only status a payment is ever created with
const PaymentCompleted PaymentStatus = "COMPLETED"

// Payment Model
type Payment struct {
	ID          uint            `gorm:"primaryKey" json:"id"`                      // Primary key
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"` // Positive amount
	PaymentDate time.Time       `gorm:"not null" json:"paymentDate"`               // Day the payment was made
	Status      PaymentStatus   `gorm:"size:20;not null" json:"status"`            // Always COMPLETED
	BookingID   uint            `gorm:"not null;uniqueIndex" json:"bookingId"`     // Exactly one booking per payment
}
