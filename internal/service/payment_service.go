package service

import (
	"context"
	"errors"

	"event_management/internal/domain"
	"event_management/internal/monitoring"
	"event_management/internal/store"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// PaymentService records payments against bookings.
type PaymentService struct {
	store store.Gateway
	clock Clock
}

// NewPaymentService wires dependencies for the payment service.
func NewPaymentService(gw store.Gateway, clock Clock) *PaymentService {
	return &PaymentService{store: gw, clock: clock}
}

// MakePaymentParams is the input of MakePayment.
type MakePaymentParams struct {
	BookingID uint
	Amount    decimal.Decimal
}

// MakePayment creates a COMPLETED payment for the booking and confirms the
// booking. Both writes happen in one transaction; if either fails neither is
// visible. Returns the new payment ID.
func (s *PaymentService) MakePayment(ctx context.Context, params MakePaymentParams) (uint, error) {
	vErr := &ValidationError{}
	if params.BookingID == 0 {
		vErr.Add("bookingId", "Booking ID is required")
	}
	amount := params.Amount.Round(2)
	switch {
	case !params.Amount.Equal(amount):
		vErr.Add("amount", "Amount must have at most 2 decimal places")
	case !amount.IsPositive():
		vErr.Add("amount", "Amount must be greater than 0")
	}
	if err := vErr.errOrNil(); err != nil {
		return 0, err
	}

	log := logrus.WithField("booking_id", params.BookingID)
	log.Info("Initiating payment")

	payment := &domain.Payment{
		Amount:      amount,
		PaymentDate: today(s.clock.now()),
		Status:      domain.PaymentCompleted,
		BookingID:   params.BookingID,
	}
	err := s.store.Transaction(ctx, func(tx store.Gateway) error {
		booking, err := tx.FindBooking(ctx, params.BookingID)
		if errors.Is(err, store.ErrNotFound) {
			return notFound("Booking", params.BookingID)
		}
		if err != nil {
			return err
		}
		if booking.Payment != nil {
			return ErrAlreadyPaid
		}
		if err := tx.CreatePayment(ctx, payment); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return ErrAlreadyPaid
			}
			return err
		}
		return tx.UpdateBookingStatus(ctx, booking.ID, domain.BookingConfirmed)
	})
	if err != nil {
		log.WithError(err).Error("Payment failed")
		return 0, err
	}

	paid, _ := payment.Amount.Float64()
	monitoring.TrackPaymentCompleted(paid)
	log.WithField("payment_id", payment.ID).Info("Booking confirmed by payment")
	return payment.ID, nil
}

// GetPayment returns a payment by ID.
func (s *PaymentService) GetPayment(ctx context.Context, id uint) (*domain.Payment, error) {
	payment, err := s.store.FindPayment(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		logrus.WithField("payment_id", id).Warn("Payment not found")
		return nil, notFound("Payment", id)
	}
	return payment, err
}

// GetPaymentStatus returns the status of a payment.
func (s *PaymentService) GetPaymentStatus(ctx context.Context, id uint) (domain.PaymentStatus, error) {
	payment, err := s.GetPayment(ctx, id)
	if err != nil {
		return "", err
	}
	return payment.Status, nil
}
