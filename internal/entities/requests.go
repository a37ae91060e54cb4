package entities

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"
)

// ValidationError reports a missing or malformed form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type SlotRequest struct {
	Date time.Time
	Time string
}

// ParseSlotForm reads the owner's "date" (YYYY-MM-DD) and "time" fields.
// The time label is free text.
func ParseSlotForm(form url.Values) (SlotRequest, error) {
	rawDate := strings.TrimSpace(form.Get("date"))
	if rawDate == "" {
		return SlotRequest{}, &ValidationError{Field: "date", Message: "this field is required"}
	}
	d, err := time.Parse(time.DateOnly, rawDate)
	if err != nil {
		return SlotRequest{}, &ValidationError{Field: "date", Message: "expected YYYY-MM-DD"}
	}
	label := strings.TrimSpace(form.Get("time"))
	if label == "" {
		return SlotRequest{}, &ValidationError{Field: "time", Message: "this field is required"}
	}
	if len(label) > 20 {
		return SlotRequest{}, &ValidationError{Field: "time", Message: "at most 20 characters"}
	}
	return SlotRequest{Date: d, Time: label}, nil
}

type BookingRequest struct {
	Name  string
	Email string
}

// ParseBookingForm reads the requester's "name" and "email" fields. The email
// only has to look like an address.
func ParseBookingForm(form url.Values) (BookingRequest, error) {
	name := strings.TrimSpace(form.Get("name"))
	if name == "" {
		return BookingRequest{}, &ValidationError{Field: "name", Message: "this field is required"}
	}
	if len(name) > 100 {
		return BookingRequest{}, &ValidationError{Field: "name", Message: "at most 100 characters"}
	}
	email := strings.TrimSpace(form.Get("email"))
	if email == "" {
		return BookingRequest{}, &ValidationError{Field: "email", Message: "this field is required"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return BookingRequest{}, &ValidationError{Field: "email", Message: "enter a valid email address"}
	}
	return BookingRequest{Name: name, Email: email}, nil
}
