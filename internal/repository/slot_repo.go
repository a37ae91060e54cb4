package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"scheduler/internal/db"
)

type SlotRepository interface {
	Create(ctx context.Context, slot *db.Slot) error
	ListOrderedByDate(ctx context.Context) ([]db.Slot, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]db.Slot, error)
	GetAvailable(ctx context.Context, id uint) (*db.Slot, error)
}

type slotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(gdb *gorm.DB) SlotRepository {
	return &slotRepository{db: gdb}
}

func (r *slotRepository) Create(ctx context.Context, slot *db.Slot) error {
	if err := r.db.WithContext(ctx).Create(slot).Error; err != nil {
		return fmt.Errorf("error creating slot: %w", err)
	}
	return nil
}

// ListOrderedByDate returns every slot, oldest date first, with its booking.
func (r *slotRepository) ListOrderedByDate(ctx context.Context) ([]db.Slot, error) {
	var slots []db.Slot
	err := r.db.WithContext(ctx).
		Preload("Booking").
		Order("date ASC").Order("id ASC").
		Find(&slots).Error
	if err != nil {
		return nil, fmt.Errorf("error listing slots: %w", err)
	}
	return slots, nil
}

// ListBetween returns slots whose date lies in [from, to), with their bookings.
func (r *slotRepository) ListBetween(ctx context.Context, from, to time.Time) ([]db.Slot, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("end date must be after start date")
	}
	var slots []db.Slot
	err := r.db.WithContext(ctx).
		Preload("Booking").
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC").Order("id ASC").
		Find(&slots).Error
	if err != nil {
		return nil, fmt.Errorf("error querying slots between %s and %s: %w",
			from.Format(time.DateOnly), to.Format(time.DateOnly), err)
	}
	return slots, nil
}

// GetAvailable returns ErrNotFound both for unknown ids and for booked slots.
func (r *slotRepository) GetAvailable(ctx context.Context, id uint) (*db.Slot, error) {
	var slot db.Slot
	err := r.db.WithContext(ctx).
		Where("id = ? AND available = ?", id, true).
		Take(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying slot %d: %w", id, err)
	}
	return &slot, nil
}
