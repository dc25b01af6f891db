package store

import (
	"context"

	"event_management/internal/domain"

	"gorm.io/gorm/clause"
)

func (s *GormStore) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Create(booking).Error)
}

// UpdateBookingStatus writes only the status column.
func (s *GormStore) UpdateBookingStatus(ctx context.Context, id uint, status domain.BookingStatus) error {
	res := s.conn(ctx).Model(&domain.Booking{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindBooking loads the booking with its payment, if any.
func (s *GormStore) FindBooking(ctx context.Context, id uint) (*domain.Booking, error) {
	var booking domain.Booking
	if err := s.conn(ctx).Preload("Payment").First(&booking, id).Error; err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

func (s *GormStore) CreatePayment(ctx context.Context, payment *domain.Payment) error {
	return translate(s.conn(ctx).Create(payment).Error)
}

func (s *GormStore) FindPayment(ctx context.Context, id uint) (*domain.Payment, error) {
	var payment domain.Payment
	if err := s.conn(ctx).First(&payment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}
