package store

import (
	"context"
	"strings"

	"event_management/internal/domain"

	"gorm.io/gorm/clause"
)

// CreateEvent inserts the event and links its categories without writing the
// category rows themselves.
func (s *GormStore) CreateEvent(ctx context.Context, event *domain.Event) error {
	return translate(s.conn(ctx).Omit("Categories.*", "Organizer", "Registrations").Create(event).Error)
}

// SaveEvent updates every column of the event. Associations are left alone.
func (s *GormStore) SaveEvent(ctx context.Context, event *domain.Event) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Save(event).Error)
}

func (s *GormStore) ReplaceEventCategories(ctx context.Context, event *domain.Event, categories []domain.Category) error {
	return translate(s.conn(ctx).Model(event).Association("Categories").Replace(categories))
}

// DeleteEvent removes the event's registrations, its category links and the
// event row, in that order.
func (s *GormStore) DeleteEvent(ctx context.Context, id uint) error {
	db := s.conn(ctx)
	if err := db.Where("event_id = ?", id).Delete(&domain.Registration{}).Error; err != nil {
		return err
	}
	if err := db.Model(&domain.Event{ID: id}).Association("Categories").Clear(); err != nil {
		return err
	}
	res := db.Delete(&domain.Event{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) FindEvent(ctx context.Context, id uint) (*domain.Event, error) {
	var event domain.Event
	if err := s.conn(ctx).Preload("Categories").Preload("Organizer").First(&event, id).Error; err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

// LockEvent loads the event row with SELECT ... FOR UPDATE. It only holds the
// lock when called on a gateway obtained from Transaction. SQLite has no row
// locks; its single writer already serializes the transaction.
func (s *GormStore) LockEvent(ctx context.Context, id uint) (*domain.Event, error) {
	var event domain.Event
	query := s.conn(ctx)
	if query.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.First(&event, id).Error; err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

// ListEvents returns the events matching filter ordered by start date.
func (s *GormStore) ListEvents(ctx context.Context, filter EventFilter) ([]domain.Event, error) {
	db := s.conn(ctx)
	query := db.Model(&domain.Event{}).Preload("Categories").Preload("Organizer")
	if filter.Keyword != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Keyword)+"%")
	}
	if filter.CategoryID != 0 {
		linked := db.Table("event_categories").Select("event_id").Where("category_id = ?", filter.CategoryID)
		query = query.Where("id IN (?)", linked)
	}
	if filter.OrganizerID != 0 {
		query = query.Where("organizer_id = ?", filter.OrganizerID)
	}
	if filter.StartsAfter != nil {
		query = query.Where("start_date > ?", *filter.StartsAfter)
	}
	if filter.StartsFrom != nil {
		query = query.Where("start_date >= ?", *filter.StartsFrom)
	}
	if filter.StartsBefore != nil {
		query = query.Where("start_date <= ?", *filter.StartsBefore)
	}
	var events []domain.Event
	if err := query.Order("start_date, id").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
