package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"go.uber.org/zap"

	"scheduler/internal/db"
	"scheduler/internal/entities"
	"scheduler/internal/templates"
)

// SenderService tells the requester and the owner about new bookings.
// A nil mailer or sms sender disables that channel.
type SenderService struct {
	mailer     Mailer
	sms        SMSSender
	ownerEmail string
	ownerPhone string
	tmpl       *template.Template
	log        *zap.Logger
}

func NewSenderService(mailer Mailer, sms SMSSender, ownerEmail, ownerPhone string, log *zap.Logger) (*SenderService, error) {
	tmpl, err := templates.Email("booking_confirmation.html")
	if err != nil {
		return nil, fmt.Errorf("parse booking email template: %w", err)
	}
	return &SenderService{
		mailer:     mailer,
		sms:        sms,
		ownerEmail: ownerEmail,
		ownerPhone: ownerPhone,
		tmpl:       tmpl,
		log:        log,
	}, nil
}

// BookingCreated implements BookingNotifier. Failures are logged only.
func (s *SenderService) BookingCreated(ctx context.Context, slot db.Slot, booking db.Booking) {
	if err := s.SendBookingEmail(ctx, slot, booking); err != nil {
		s.log.Error("booking confirmation email failed", zap.Uint("booking_id", booking.ID), zap.Error(err))
	}
	if err := s.SendOwnerEmail(ctx, slot, booking); err != nil {
		s.log.Error("owner booking email failed", zap.Uint("booking_id", booking.ID), zap.Error(err))
	}
	if err := s.SendOwnerSMS(ctx, slot, booking); err != nil {
		s.log.Error("owner booking sms failed", zap.Uint("booking_id", booking.ID), zap.Error(err))
	}
}

func (s *SenderService) SendBookingEmail(ctx context.Context, slot db.Slot, booking db.Booking) error {
	if s.mailer == nil {
		return nil
	}
	data := entities.BookingEmailData{
		UserName:    booking.Name,
		SlotDate:    slot.DateKey(),
		SlotTime:    slot.Time,
		BookingID:   booking.ID,
		CurrentYear: time.Now().Year(),
	}

	var html bytes.Buffer
	if err := s.tmpl.Execute(&html, data); err != nil {
		return fmt.Errorf("render booking email: %w", err)
	}

	subject := fmt.Sprintf("Your appointment on %s at %s is confirmed", data.SlotDate, data.SlotTime)
	plain := fmt.Sprintf(
		"Hello %s,\n\nYour appointment is confirmed.\n\nDate: %s\nTime: %s\nBooking: #%d\n",
		data.UserName, data.SlotDate, data.SlotTime, data.BookingID,
	)
	return s.mailer.SendEmail(ctx, booking.Email, booking.Name, subject, plain, html.String())
}

func (s *SenderService) SendOwnerEmail(ctx context.Context, slot db.Slot, booking db.Booking) error {
	if s.mailer == nil || s.ownerEmail == "" {
		return nil
	}
	subject := fmt.Sprintf("New booking: %s", slot)
	plain := fmt.Sprintf("%s <%s> booked %s at %s.", booking.Name, booking.Email, slot.DateKey(), slot.Time)
	html := "<p>" + template.HTMLEscapeString(plain) + "</p>"
	return s.mailer.SendEmail(ctx, s.ownerEmail, "", subject, plain, html)
}

func (s *SenderService) SendOwnerSMS(ctx context.Context, slot db.Slot, booking db.Booking) error {
	if s.sms == nil || s.ownerPhone == "" {
		return nil
	}
	body := fmt.Sprintf("Scheduler: %s booked %s at %s.", booking.Name, slot.DateKey(), slot.Time)
	return s.sms.SendSMS(ctx, s.ownerPhone, body)
}
