// Package store implements the persistence gateways on top of GORM.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"event_management/internal/domain"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup by key matches no row.
	ErrNotFound = errors.New("store: record not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("store: duplicate key")
)

// EventFilter narrows ListEvents. Zero fields are ignored.
type EventFilter struct {
	Keyword      string     // Case-insensitive substring of the name
	CategoryID   uint       // Events linked to this category
	OrganizerID  uint       // Events owned by this organizer
	StartsAfter  *time.Time // Events starting strictly after this instant
	StartsFrom   *time.Time // Inclusive lower bound on start date
	StartsBefore *time.Time // Inclusive upper bound on start date
}

// Gateway is the persistence boundary the services are written against.
type Gateway interface {
	// Transaction runs fn against a gateway bound to one database transaction.
	// A non-nil error from fn rolls back every write made through tx.
	Transaction(ctx context.Context, fn func(tx Gateway) error) error

	CreateUser(ctx context.Context, user *domain.User) error
	SaveUser(ctx context.Context, user *domain.User) error
	FindUser(ctx context.Context, id uint) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListUsers(ctx context.Context, offset, limit int) ([]domain.User, int64, error)

	CreateEvent(ctx context.Context, event *domain.Event) error
	SaveEvent(ctx context.Context, event *domain.Event) error
	ReplaceEventCategories(ctx context.Context, event *domain.Event, categories []domain.Category) error
	DeleteEvent(ctx context.Context, id uint) error
	FindEvent(ctx context.Context, id uint) (*domain.Event, error)
	LockEvent(ctx context.Context, id uint) (*domain.Event, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]domain.Event, error)

	CreateRegistration(ctx context.Context, registration *domain.Registration) error
	SaveRegistration(ctx context.Context, registration *domain.Registration) error
	FindRegistration(ctx context.Context, id uint) (*domain.Registration, error)
	CountConfirmedRegistrations(ctx context.Context, eventID uint) (int64, error)
	HasConfirmedRegistration(ctx context.Context, eventID, userID uint) (bool, error)
	ListRegistrationsByEvent(ctx context.Context, eventID uint) ([]domain.Registration, error)
	ListRegistrationsByUser(ctx context.Context, userID uint) ([]domain.Registration, error)

	CreateCategory(ctx context.Context, category *domain.Category) error
	SaveCategory(ctx context.Context, category *domain.Category) error
	DeleteCategory(ctx context.Context, id uint) error
	FindCategory(ctx context.Context, id uint) (*domain.Category, error)
	FindCategoryByName(ctx context.Context, name string) (*domain.Category, error)
	FindCategories(ctx context.Context, ids []uint) ([]domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CountCategoryEvents(ctx context.Context, id uint) (int64, error)

	CreateBooking(ctx context.Context, booking *domain.Booking) error
	UpdateBookingStatus(ctx context.Context, id uint, status domain.BookingStatus) error
	FindBooking(ctx context.Context, id uint) (*domain.Booking, error)

	CreatePayment(ctx context.Context, payment *domain.Payment) error
	FindPayment(ctx context.Context, id uint) (*domain.Payment, error)
}

// GormStore implements Gateway with GORM.
type GormStore struct {
	db *gorm.DB
}

// New wraps an open GORM connection.
func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Transaction implements Gateway.
func (s *GormStore) Transaction(ctx context.Context, fn func(tx Gateway) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// translate maps GORM errors onto the store sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isDuplicateMessage(err.Error()):
		return ErrDuplicate
	}
	return err
}

// isDuplicateMessage catches unique violations from drivers that do not
// implement gorm's error translation.
func isDuplicateMessage(msg string) bool {
	for _, marker := range []string{"UNIQUE constraint failed", "Duplicate entry", "duplicate key value"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
