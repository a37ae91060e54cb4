package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"scheduler/internal/db"
	"scheduler/internal/entities"
	"scheduler/internal/events"
	"scheduler/internal/repository"
	"scheduler/internal/utils"
)

type SlotService struct {
	Repo   repository.SlotRepository
	events events.Publisher
	log    *zap.Logger
}

func NewSlotService(repo repository.SlotRepository, pub events.Publisher, log *zap.Logger) *SlotService {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &SlotService{Repo: repo, events: pub, log: log}
}

// CreateSlot stores a new available slot. Duplicate (date, time) pairs are
// accepted.
func (s *SlotService) CreateSlot(ctx context.Context, req entities.SlotRequest) (*db.Slot, error) {
	slot := &db.Slot{
		Date:      req.Date,
		Time:      req.Time,
		Available: true,
	}
	if err := s.Repo.Create(ctx, slot); err != nil {
		return nil, err
	}
	s.log.Info("slot created", zap.Uint("slot_id", slot.ID), zap.String("date", slot.DateKey()), zap.String("time", slot.Time))
	if !utils.IsDisplayedLabel(slot.Time) {
		s.log.Warn("slot label is not one of the calendar labels, it will only show in the admin list",
			zap.Uint("slot_id", slot.ID), zap.String("time", slot.Time))
	}

	evt := events.SlotCreated{
		EventID: uuid.NewString(),
		SlotID:  slot.ID,
		Date:    slot.DateKey(),
		Time:    slot.Time,
		At:      time.Now().UTC(),
	}
	if err := s.events.PublishJSON(ctx, events.RKSlotCreated, evt); err != nil {
		s.log.Warn("could not publish event", zap.String("key", events.RKSlotCreated), zap.Error(err))
	}
	return slot, nil
}

// ListSlots returns every slot ordered by date, with bookings attached.
func (s *SlotService) ListSlots(ctx context.Context) ([]db.Slot, error) {
	slots, err := s.Repo.ListOrderedByDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}
