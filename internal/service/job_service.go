package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"go.uber.org/zap"

	"scheduler/internal/entities"
	"scheduler/internal/repository"
	"scheduler/internal/templates"
)

type JobService struct {
	Repo       repository.SlotRepository
	mailer     Mailer
	ownerEmail string
	tmpl       *template.Template
	now        func() time.Time
	log        *zap.Logger
}

func NewJobService(repo repository.SlotRepository, mailer Mailer, ownerEmail string, now func() time.Time, log *zap.Logger) (*JobService, error) {
	tmpl, err := templates.Email("daily_agenda.html")
	if err != nil {
		return nil, fmt.Errorf("parse agenda email template: %w", err)
	}
	if now == nil {
		now = time.Now
	}
	return &JobService{Repo: repo, mailer: mailer, ownerEmail: ownerEmail, tmpl: tmpl, now: now, log: log}, nil
}

// SendTodayAgenda mails the owner today's bookings. Used as the cron entry.
func (s *JobService) SendTodayAgenda() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := s.SendDailyAgenda(ctx, s.now())
	if err != nil {
		s.log.Error("Cron Job: daily agenda failed", zap.Error(err))
		return
	}
	s.log.Info("Cron Job: daily agenda done", zap.Int("bookings", n))
}

// SendDailyAgenda emails the owner the booked slots of day and returns how
// many were listed. Nothing is sent for a day without bookings.
func (s *JobService) SendDailyAgenda(ctx context.Context, day time.Time) (int, error) {
	if s.mailer == nil || s.ownerEmail == "" {
		return 0, nil
	}
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	slots, err := s.Repo.ListBetween(ctx, from, from.AddDate(0, 0, 1))
	if err != nil {
		return 0, fmt.Errorf("cron job: failed to load slots: %w", err)
	}

	data := entities.AgendaEmailData{Date: from.Format(time.DateOnly), CurrentYear: from.Year()}
	var plain strings.Builder
	fmt.Fprintf(&plain, "Appointments for %s:\n", data.Date)
	for _, slot := range slots {
		if slot.Booking == nil {
			continue
		}
		data.Entries = append(data.Entries, entities.AgendaEntry{
			Time:  slot.Time,
			Name:  slot.Booking.Name,
			Email: slot.Booking.Email,
		})
		fmt.Fprintf(&plain, "- %s %s (%s)\n", slot.Time, slot.Booking.Name, slot.Booking.Email)
	}

	if len(data.Entries) == 0 {
		s.log.Info("Cron Job: no bookings today", zap.String("date", data.Date))
		return 0, nil
	}

	var html bytes.Buffer
	if err := s.tmpl.Execute(&html, data); err != nil {
		return 0, fmt.Errorf("cron job: render agenda: %w", err)
	}
	subject := fmt.Sprintf("Agenda for %s (%d)", data.Date, len(data.Entries))
	if err := s.mailer.SendEmail(ctx, s.ownerEmail, "", subject, plain.String(), html.String()); err != nil {
		return 0, fmt.Errorf("cron job: send agenda: %w", err)
	}
	return len(data.Entries), nil
}
