package service

import (
	"context"
	"fmt"
	"time"

	"scheduler/internal/db"
	"scheduler/internal/entities"
	"scheduler/internal/repository"
	"scheduler/internal/utils"
)

type CalendarService struct {
	Repo repository.SlotRepository
	now  func() time.Time
}

func NewCalendarService(repo repository.SlotRepository, now func() time.Time) *CalendarService {
	if now == nil {
		now = time.Now
	}
	return &CalendarService{Repo: repo, now: now}
}

// CurrentMonth builds the calendar for the month of the server clock.
func (s *CalendarService) CurrentMonth(ctx context.Context) (*entities.CalendarView, error) {
	today := s.now()
	return s.Month(ctx, today.Year(), today.Month())
}

func (s *CalendarService) Month(ctx context.Context, year int, month time.Month) (*entities.CalendarView, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	slots, err := s.Repo.ListBetween(ctx, first, first.AddDate(0, 1, 0))
	if err != nil {
		return nil, fmt.Errorf("error loading slots for %d/%d: %w", month, year, err)
	}
	view := BuildMonth(year, month, slots)
	return &view, nil
}

// BuildMonth lays out whole Monday-first weeks covering the month and marks
// each displayed time label of each in-month day as open, booked or none.
// When several slots share a cell, an open one wins over a booked one and
// the lowest open id is linked.
func BuildMonth(year int, month time.Month, slots []db.Slot) entities.CalendarView {
	type cellKey struct {
		date  string
		label string
	}
	cells := make(map[cellKey]entities.CalendarCell, len(slots))
	for _, s := range slots {
		k := cellKey{date: s.DateKey(), label: s.Time}
		cur, seen := cells[k]
		switch {
		case s.Available && (!cur.IsOpen() || s.ID < cur.SlotID):
			cells[k] = entities.CalendarCell{Label: s.Time, State: entities.CellOpen, SlotID: s.ID}
		case !s.Available && !seen:
			cells[k] = entities.CalendarCell{Label: s.Time, State: entities.CellBooked}
		}
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	start := first.AddDate(0, 0, -mondayIndex(first.Weekday()))
	end := last.AddDate(0, 0, 6-mondayIndex(last.Weekday()))

	view := entities.CalendarView{Year: year, Month: month}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := entities.CalendarDay{Date: d, InMonth: d.Month() == month}
		if day.InMonth {
			key := d.Format(time.DateOnly)
			day.Cells = make([]entities.CalendarCell, 0, len(utils.TimeLabels))
			for _, label := range utils.TimeLabels {
				c, ok := cells[cellKey{date: key, label: label}]
				if !ok {
					c = entities.CalendarCell{Label: label, State: entities.CellNone}
				}
				day.Cells = append(day.Cells, c)
			}
		}
		view.Days = append(view.Days, day)
	}
	return view
}

// mondayIndex maps Monday..Sunday to 0..6.
func mondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}
