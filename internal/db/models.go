package db

import "time"

// Slot is a bookable (date, time label) offering.
type Slot struct {
	ID        uint      `gorm:"primaryKey"`
	Date      time.Time `gorm:"type:date;not null;index"`
	Time      string    `gorm:"size:20;not null"`
	Available bool      `gorm:"not null;default:true"`
	CreatedAt time.Time

	// Set once the slot has been booked; deleting the slot removes it.
	Booking *Booking `gorm:"foreignKey:SlotID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

type Booking struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Email     string `gorm:"size:254;not null"`
	SlotID    uint   `gorm:"not null;uniqueIndex"`
	CreatedAt time.Time
}

// DateKey is the calendar day of the slot, independent of the location the
// driver scanned it in.
func (s Slot) DateKey() string {
	return s.Date.Format(time.DateOnly)
}

func (s Slot) String() string {
	return s.DateKey() + " " + s.Time
}
