package service

import (
	"context"
	"errors"
	"strings"

	"event_management/internal/domain"
	"event_management/internal/monitoring"
	"event_management/internal/store"

	"github.com/sirupsen/logrus"
)

// BookingService creates bookings and reports their status.
type BookingService struct {
	store store.Gateway
	clock Clock
}

// NewBookingService wires dependencies for the booking service.
func NewBookingService(gw store.Gateway, clock Clock) *BookingService {
	return &BookingService{store: gw, clock: clock}
}

// CreateBookingParams is the input of CreateBooking.
type CreateBookingParams struct {
	EventName    string
	CustomerName string
}

// CreateBooking stores a PENDING booking dated today and returns its ID.
func (s *BookingService) CreateBooking(ctx context.Context, params CreateBookingParams) (uint, error) {
	vErr := &ValidationError{}
	if blank(params.EventName) {
		vErr.Add("eventName", "Event name is required")
	}
	if blank(params.CustomerName) {
		vErr.Add("customerName", "Customer name is required")
	}
	if err := vErr.errOrNil(); err != nil {
		return 0, err
	}

	booking := &domain.Booking{
		EventName:    strings.TrimSpace(params.EventName),
		CustomerName: strings.TrimSpace(params.CustomerName),
		BookingDate:  today(s.clock.now()),
		Status:       domain.BookingPending,
	}
	if err := s.store.CreateBooking(ctx, booking); err != nil {
		return 0, err
	}
	monitoring.TrackBookingCreated()
	logrus.WithFields(logrus.Fields{
		"booking_id":    booking.ID,
		"event_name":    booking.EventName,
		"customer_name": booking.CustomerName,
	}).Info("Booking created")
	return booking.ID, nil
}

// GetBooking returns the booking with its payment, if any.
func (s *BookingService) GetBooking(ctx context.Context, id uint) (*domain.Booking, error) {
	booking, err := s.store.FindBooking(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Booking", id)
	}
	return booking, err
}

// GetBookingStatus returns the current status of a booking.
func (s *BookingService) GetBookingStatus(ctx context.Context, id uint) (domain.BookingStatus, error) {
	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return "", err
	}
	return booking.Status, nil
}
