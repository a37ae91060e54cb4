package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"scheduler/internal/db"
)

type BookingRepository interface {
	CreateForSlot(ctx context.Context, booking *db.Booking) error
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(gdb *gorm.DB) BookingRepository {
	return &bookingRepository{db: gdb}
}

// CreateForSlot claims booking.SlotID and inserts the booking in one
// transaction. The claim is a conditional update, so of two concurrent
// callers only one sees a changed row; the other gets ErrNotFound.
func (r *bookingRepository) CreateForSlot(ctx context.Context, booking *db.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db.Slot{}).
			Where("id = ? AND available = ?", booking.SlotID, true).
			Update("available", false)
		if res.Error != nil {
			return fmt.Errorf("error claiming slot %d: %w", booking.SlotID, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.Create(booking).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrNotFound
			}
			return fmt.Errorf("error creating booking for slot %d: %w", booking.SlotID, err)
		}
		return nil
	})
}
