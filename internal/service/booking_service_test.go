package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"scheduler/internal/db"
	"scheduler/internal/entities"
	"scheduler/internal/events"
)

func newBookingFixture(t *testing.T) (*BookingService, *memStore, *recordingNotifier, *fakePublisher, *db.Slot) {
	t.Helper()
	store := newMemStore()
	slot := &db.Slot{Date: date(2024, 6, 10), Time: "9am", Available: true}
	require.NoError(t, store.Create(context.Background(), slot))

	notifier := &recordingNotifier{}
	pub := &fakePublisher{}
	svc := NewBookingService(store, store, notifier, pub, zap.NewNop())
	return svc, store, notifier, pub, slot
}

func TestBookingService_GetBookableSlot(t *testing.T) {
	svc, _, _, _, slot := newBookingFixture(t)
	ctx := context.Background()

	got, err := svc.GetBookableSlot(ctx, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, "9am", got.Time)

	_, err = svc.GetBookableSlot(ctx, 404)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestBookingService_CreateBookingScenario(t *testing.T) {
	svc, store, notifier, pub, slot := newBookingFixture(t)
	ctx := context.Background()

	booking, err := svc.CreateBooking(ctx, slot.ID, entities.BookingRequest{Name: "Alice", Email: "a@x.com"})
	require.NoError(t, err)
	svc.Wait()

	assert.Equal(t, slot.ID, booking.SlotID)
	assert.Equal(t, "Alice", booking.Name)
	assert.Equal(t, "a@x.com", booking.Email)

	slots, err := store.ListOrderedByDate(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.False(t, slots[0].Available)

	require.Len(t, notifier.bookings, 1)
	assert.Equal(t, booking.ID, notifier.bookings[0].ID)
	assert.Equal(t, []string{events.RKBookingCreated}, pub.keys())
}

func TestBookingService_BookedSlotIsNotFoundEveryTime(t *testing.T) {
	svc, store, _, _, slot := newBookingFixture(t)
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, slot.ID, entities.BookingRequest{Name: "Alice", Email: "a@x.com"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := svc.CreateBooking(ctx, slot.ID, entities.BookingRequest{Name: "Bob", Email: "b@x.com"})
		assert.ErrorIs(t, err, ErrSlotNotFound)
		_, err = svc.GetBookableSlot(ctx, slot.ID)
		assert.ErrorIs(t, err, ErrSlotNotFound)
	}
	svc.Wait()
	assert.Equal(t, 1, store.bookingCount())
}

func TestBookingService_ConcurrentRequestsBookOnce(t *testing.T) {
	svc, store, _, _, slot := newBookingFixture(t)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateBooking(context.Background(), slot.ID, entities.BookingRequest{Name: "Racer", Email: "r@x.com"})
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, ErrSlotNotFound)
		}()
	}
	wg.Wait()
	svc.Wait()

	assert.Equal(t, 1, success)
	assert.Equal(t, 1, store.bookingCount())
}

func TestBookingService_StoreErrorIsNotNotFound(t *testing.T) {
	svc, store, notifier, _, slot := newBookingFixture(t)
	store.err = errors.New("db down")

	_, err := svc.CreateBooking(context.Background(), slot.ID, entities.BookingRequest{Name: "Alice", Email: "a@x.com"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrSlotNotFound))
	svc.Wait()
	assert.Empty(t, notifier.bookings)
}
