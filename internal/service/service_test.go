package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"event_management/internal/domain"
	"event_management/internal/store"
	"event_management/internal/store/storetest"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newGateway(t *testing.T) *store.GormStore {
	t.Helper()
	return store.New(storetest.NewDB(t))
}

func seedUser(t *testing.T, gw store.Gateway, email string) *domain.User {
	t.Helper()
	user := &domain.User{Email: email, Password: "hash", Role: domain.RoleUser}
	require.NoError(t, gw.CreateUser(context.Background(), user))
	return user
}

func seedEvent(t *testing.T, gw store.Gateway, capacity int) *domain.Event {
	t.Helper()
	event := &domain.Event{
		Name:      "Tech Conference",
		StartDate: fixedNow.Add(24 * time.Hour),
		EndDate:   fixedNow.Add(30 * time.Hour),
		Capacity:  capacity,
	}
	require.NoError(t, gw.CreateEvent(context.Background(), event))
	return event
}

// failingGateway fails UpdateBookingStatus, including inside transactions.
type failingGateway struct {
	store.Gateway
	err error
}

func (f *failingGateway) Transaction(ctx context.Context, fn func(tx store.Gateway) error) error {
	return f.Gateway.Transaction(ctx, func(tx store.Gateway) error {
		return fn(&failingGateway{Gateway: tx, err: f.err})
	})
}

func (f *failingGateway) UpdateBookingStatus(context.Context, uint, domain.BookingStatus) error {
	return f.err
}

var errInjected = errors.New("injected failure")
