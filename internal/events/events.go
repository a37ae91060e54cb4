package events

import "time"

// Routing keys.
const (
	RKSlotCreated    = "slot.created"
	RKBookingCreated = "booking.created"
)

type SlotCreated struct {
	EventID string    `json:"event_id"`
	SlotID  uint      `json:"slot_id"`
	Date    string    `json:"date"`
	Time    string    `json:"time"`
	At      time.Time `json:"at"`
}

type BookingCreated struct {
	EventID   string    `json:"event_id"`
	BookingID uint      `json:"booking_id"`
	SlotID    uint      `json:"slot_id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	At        time.Time `json:"at"`
}
