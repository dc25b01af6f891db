package store

import (
	"context"

	"event_management/internal/domain"

	"gorm.io/gorm/clause"
)

func (s *GormStore) CreateRegistration(ctx context.Context, registration *domain.Registration) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Create(registration).Error)
}

func (s *GormStore) SaveRegistration(ctx context.Context, registration *domain.Registration) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Save(registration).Error)
}

func (s *GormStore) FindRegistration(ctx context.Context, id uint) (*domain.Registration, error) {
	var registration domain.Registration
	if err := s.conn(ctx).First(&registration, id).Error; err != nil {
		return nil, translate(err)
	}
	return &registration, nil
}

func (s *GormStore) CountConfirmedRegistrations(ctx context.Context, eventID uint) (int64, error) {
	var n int64
	err := s.conn(ctx).Model(&domain.Registration{}).
		Where("event_id = ? AND status = ?", eventID, domain.RegistrationConfirmed).
		Count(&n).Error
	return n, err
}

func (s *GormStore) HasConfirmedRegistration(ctx context.Context, eventID, userID uint) (bool, error) {
	var n int64
	err := s.conn(ctx).Model(&domain.Registration{}).
		Where("event_id = ? AND user_id = ? AND status = ?", eventID, userID, domain.RegistrationConfirmed).
		Count(&n).Error
	return n > 0, err
}

func (s *GormStore) ListRegistrationsByEvent(ctx context.Context, eventID uint) ([]domain.Registration, error) {
	var registrations []domain.Registration
	err := s.conn(ctx).Where("event_id = ?", eventID).Order("registration_date, id").Find(&registrations).Error
	return registrations, err
}

func (s *GormStore) ListRegistrationsByUser(ctx context.Context, userID uint) ([]domain.Registration, error) {
	var registrations []domain.Registration
	err := s.conn(ctx).Where("user_id = ?", userID).Order("registration_date, id").Find(&registrations).Error
	return registrations, err
}
