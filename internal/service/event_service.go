package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"event_management/internal/domain"
	"event_management/internal/monitoring"
	"event_management/internal/store"

	"github.com/sirupsen/logrus"
)

// EventService manages the event catalog and seat registrations.
type EventService struct {
	store store.Gateway
	clock Clock
}

// NewEventService wires dependencies for the event service.
func NewEventService(gw store.Gateway, clock Clock) *EventService {
	return &EventService{store: gw, clock: clock}
}

// EventInput carries the client-editable fields of an event. Registrations are
// never accepted from clients.
type EventInput struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Location    string
	ImageURL    string
	Capacity    int
	OrganizerID *uint
	// CategoryIDs replaces the event's categories. On update a nil slice
	// leaves them untouched while an empty one clears them.
	CategoryIDs []uint
}

func (in EventInput) validate() error {
	vErr := &ValidationError{}
	if blank(in.Name) {
		vErr.Add("name", "Name is required")
	}
	if in.StartDate.IsZero() {
		vErr.Add("startDate", "Start date is required")
	}
	if in.EndDate.IsZero() {
		vErr.Add("endDate", "End date is required")
	}
	if !in.StartDate.IsZero() && !in.EndDate.IsZero() && in.EndDate.Before(in.StartDate) {
		vErr.Add("endDate", "End date must not be before start date")
	}
	if in.Capacity < 0 {
		vErr.Add("capacity", "Capacity must not be negative")
	}
	if len(in.Description) > 1000 {
		vErr.Add("description", "Description must be at most 1000 characters")
	}
	return vErr.errOrNil()
}

func (s *EventService) GetAllEvents(ctx context.Context) ([]domain.Event, error) {
	return s.store.ListEvents(ctx, store.EventFilter{})
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (*domain.Event, error) {
	event, err := s.store.FindEvent(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		logrus.WithField("event_id", id).Warn("Event not found")
		return nil, notFound("Event", id)
	}
	return event, err
}

// GetUpcomingEvents returns events starting after now.
func (s *EventService) GetUpcomingEvents(ctx context.Context) ([]domain.Event, error) {
	now := s.clock.now()
	return s.store.ListEvents(ctx, store.EventFilter{StartsAfter: &now})
}

// SearchEvents matches keyword against event names, ignoring case.
func (s *EventService) SearchEvents(ctx context.Context, keyword string) ([]domain.Event, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		vErr := &ValidationError{}
		vErr.Add("keyword", "Keyword is required")
		return nil, vErr
	}
	return s.store.ListEvents(ctx, store.EventFilter{Keyword: keyword})
}

func (s *EventService) GetEventsByCategory(ctx context.Context, categoryID uint) ([]domain.Event, error) {
	return s.store.ListEvents(ctx, store.EventFilter{CategoryID: categoryID})
}

func (s *EventService) GetEventsByOrganizer(ctx context.Context, organizerID uint) ([]domain.Event, error) {
	return s.store.ListEvents(ctx, store.EventFilter{OrganizerID: organizerID})
}

// GetEventsInRange returns events starting within [from, to].
func (s *EventService) GetEventsInRange(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	if to.Before(from) {
		vErr := &ValidationError{}
		vErr.Add("to", "Range end must not be before range start")
		return nil, vErr
	}
	return s.store.ListEvents(ctx, store.EventFilter{StartsFrom: &from, StartsBefore: &to})
}

// resolveCategories loads every category in ids or fails with ErrNotFound.
func resolveCategories(ctx context.Context, gw store.Gateway, ids []uint) ([]domain.Category, error) {
	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	categories, err := gw.FindCategories(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(unique) {
		found := make(map[uint]bool, len(categories))
		for _, c := range categories {
			found[c.ID] = true
		}
		for _, id := range unique {
			if !found[id] {
				return nil, notFound("Category", id)
			}
		}
	}
	return categories, nil
}

// CreateEvent stores a new event without any registrations.
func (s *EventService) CreateEvent(ctx context.Context, in EventInput) (*domain.Event, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	logrus.WithField("name", in.Name).Info("Creating new event")

	event := &domain.Event{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		StartDate:   in.StartDate.UTC(),
		EndDate:     in.EndDate.UTC(),
		Location:    in.Location,
		ImageURL:    in.ImageURL,
		Capacity:    in.Capacity,
		OrganizerID: in.OrganizerID,
	}
	err := s.store.Transaction(ctx, func(tx store.Gateway) error {
		if in.OrganizerID != nil {
			if _, err := tx.FindUser(ctx, *in.OrganizerID); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return notFound("Organizer", *in.OrganizerID)
				}
				return err
			}
		}
		categories, err := resolveCategories(ctx, tx, in.CategoryIDs)
		if err != nil {
			return err
		}
		event.Categories = categories
		return tx.CreateEvent(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithField("event_id", event.ID).Info("Event created")
	return s.GetEvent(ctx, event.ID)
}

// UpdateEvent overwrites the event field by field. Categories are replaced
// only when in.CategoryIDs is non-nil; the organizer is never changed.
func (s *EventService) UpdateEvent(ctx context.Context, id uint, in EventInput) (*domain.Event, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	logrus.WithField("event_id", id).Info("Updating event")

	err := s.store.Transaction(ctx, func(tx store.Gateway) error {
		event, err := tx.FindEvent(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return notFound("Event", id)
		}
		if err != nil {
			return err
		}
		event.Name = strings.TrimSpace(in.Name)
		event.Description = in.Description
		event.StartDate = in.StartDate.UTC()
		event.EndDate = in.EndDate.UTC()
		event.Location = in.Location
		event.ImageURL = in.ImageURL
		event.Capacity = in.Capacity
		if err := tx.SaveEvent(ctx, event); err != nil {
			return err
		}
		if in.CategoryIDs == nil {
			return nil
		}
		categories, err := resolveCategories(ctx, tx, in.CategoryIDs)
		if err != nil {
			return err
		}
		return tx.ReplaceEventCategories(ctx, event, categories)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithField("event_id", id).Info("Event updated")
	return s.GetEvent(ctx, id)
}

// DeleteEvent removes the event together with its registrations.
func (s *EventService) DeleteEvent(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx store.Gateway) error {
		return tx.DeleteEvent(ctx, id)
	})
	if errors.Is(err, store.ErrNotFound) {
		return notFound("Event", id)
	}
	if err != nil {
		return err
	}
	logrus.WithField("event_id", id).Info("Event deleted")
	return nil
}

// RegisterForEvent claims a seat for the user. The event row is locked for
// the duration of the check-then-insert so concurrent registrations cannot
// overshoot the capacity. A cancelled registration does not block a new one.
func (s *EventService) RegisterForEvent(ctx context.Context, eventID, userID uint) (*domain.Registration, error) {
	log := logrus.WithFields(logrus.Fields{"event_id": eventID, "user_id": userID})
	log.Info("Registering user for event")

	var registration *domain.Registration
	err := s.store.Transaction(ctx, func(tx store.Gateway) error {
		event, err := tx.LockEvent(ctx, eventID)
		if errors.Is(err, store.ErrNotFound) {
			return notFound("Event", eventID)
		}
		if err != nil {
			return err
		}
		if _, err := tx.FindUser(ctx, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return notFound("User", userID)
			}
			return err
		}

		confirmed, err := tx.CountConfirmedRegistrations(ctx, eventID)
		if err != nil {
			return err
		}
		if !event.Unlimited() && confirmed >= int64(event.Capacity) {
			monitoring.TrackRegistration(monitoring.OutcomeCapacityExceeded)
			return ErrCapacityExceeded
		}

		registered, err := tx.HasConfirmedRegistration(ctx, eventID, userID)
		if err != nil {
			return err
		}
		if registered {
			monitoring.TrackRegistration(monitoring.OutcomeDuplicate)
			return ErrAlreadyRegistered
		}

		registration = &domain.Registration{
			EventID:          eventID,
			UserID:           userID,
			RegistrationDate: s.clock.now(),
			Status:           domain.RegistrationConfirmed,
		}
		return tx.CreateRegistration(ctx, registration)
	})
	if err != nil {
		log.WithError(err).Warn("Registration failed")
		return nil, err
	}
	monitoring.TrackRegistration(monitoring.OutcomeConfirmed)
	log.WithField("registration_id", registration.ID).Info("User registered")
	return registration, nil
}

// CancelRegistration marks the registration CANCELLED. Cancelling twice is not
// an error.
func (s *EventService) CancelRegistration(ctx context.Context, id uint) error {
	registration, err := s.store.FindRegistration(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return notFound("Registration", id)
	}
	if err != nil {
		return err
	}
	registration.Status = domain.RegistrationCancelled
	if err := s.store.SaveRegistration(ctx, registration); err != nil {
		return err
	}
	monitoring.TrackRegistration(monitoring.OutcomeCancelled)
	logrus.WithField("registration_id", id).Info("Registration cancelled")
	return nil
}

// ListEventRegistrations returns every registration of an event.
func (s *EventService) ListEventRegistrations(ctx context.Context, eventID uint) ([]domain.Registration, error) {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.store.ListRegistrationsByEvent(ctx, eventID)
}

// ListUserRegistrations returns every registration made by a user.
func (s *EventService) ListUserRegistrations(ctx context.Context, userID uint) ([]domain.Registration, error) {
	if _, err := s.store.FindUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("User", userID)
		}
		return nil, err
	}
	return s.store.ListRegistrationsByUser(ctx, userID)
}
