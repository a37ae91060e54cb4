package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"scheduler/internal/db"
	"scheduler/internal/entities"
	"scheduler/internal/events"
	"scheduler/internal/repository"
)

// ErrSlotNotFound covers both unknown slots and slots that are already booked.
var ErrSlotNotFound = errors.New("slot not found")

const afterBookingTimeout = 30 * time.Second

// BookingNotifier is told about each committed booking.
type BookingNotifier interface {
	BookingCreated(ctx context.Context, slot db.Slot, booking db.Booking)
}

type BookingService struct {
	slots    repository.SlotRepository
	bookings repository.BookingRepository
	notifier BookingNotifier
	events   events.Publisher
	log      *zap.Logger

	wg sync.WaitGroup
}

func NewBookingService(slots repository.SlotRepository, bookings repository.BookingRepository,
	notifier BookingNotifier, pub events.Publisher, log *zap.Logger) *BookingService {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &BookingService{
		slots:    slots,
		bookings: bookings,
		notifier: notifier,
		events:   pub,
		log:      log,
	}
}

func (s *BookingService) GetBookableSlot(ctx context.Context, slotID uint) (*db.Slot, error) {
	slot, err := s.slots.GetAvailable(ctx, slotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return slot, nil
}

// CreateBooking books an open slot. The availability flip and the insert
// commit together; a slot that was taken in the meantime yields
// ErrSlotNotFound.
func (s *BookingService) CreateBooking(ctx context.Context, slotID uint, req entities.BookingRequest) (*db.Booking, error) {
	slot, err := s.GetBookableSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}

	booking := &db.Booking{
		Name:   req.Name,
		Email:  req.Email,
		SlotID: slot.ID,
	}
	if err := s.bookings.CreateForSlot(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Info("slot taken before booking committed", zap.Uint("slot_id", slotID))
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}
	slot.Available = false

	s.log.Info("booking created",
		zap.Uint("booking_id", booking.ID),
		zap.Uint("slot_id", slot.ID),
		zap.String("date", slot.DateKey()),
		zap.String("time", slot.Time),
	)

	s.wg.Add(1)
	go s.afterBooking(*slot, *booking)

	return booking, nil
}

// Wait blocks until background work for committed bookings has finished.
func (s *BookingService) Wait() {
	s.wg.Wait()
}

func (s *BookingService) afterBooking(slot db.Slot, booking db.Booking) {
	defer s.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), afterBookingTimeout)
	defer cancel()

	if s.notifier != nil {
		s.notifier.BookingCreated(ctx, slot, booking)
	}

	evt := events.BookingCreated{
		EventID:   uuid.NewString(),
		BookingID: booking.ID,
		SlotID:    slot.ID,
		Date:      slot.DateKey(),
		Time:      slot.Time,
		Name:      booking.Name,
		Email:     booking.Email,
		At:        booking.CreatedAt,
	}
	if err := s.events.PublishJSON(ctx, events.RKBookingCreated, evt); err != nil {
		s.log.Warn("could not publish event", zap.String("key", events.RKBookingCreated), zap.Error(err))
	}
}
