package entities

import "time"

type CellState string

const (
	CellNone   CellState = "none"
	CellOpen   CellState = "open"
	CellBooked CellState = "booked"
)

// CalendarCell is one time label of one day.
type CalendarCell struct {
	Label  string
	State  CellState
	SlotID uint // set only when State is CellOpen
}

func (c CalendarCell) IsOpen() bool   { return c.State == CellOpen }
func (c CalendarCell) IsBooked() bool { return c.State == CellBooked }

// CalendarDay is one square of the month grid. Days of adjacent months are
// placeholders and carry no cells.
type CalendarDay struct {
	Date    time.Time
	InMonth bool
	Cells   []CalendarCell
}

type CalendarView struct {
	Year  int
	Month time.Month
	// Days covers whole Monday-first weeks, so len(Days) is a multiple of 7.
	Days []CalendarDay
}

func (v CalendarView) MonthNumber() int { return int(v.Month) }

// Weeks splits Days into rows of seven.
func (v CalendarView) Weeks() [][]CalendarDay {
	var weeks [][]CalendarDay
	for i := 0; i+7 <= len(v.Days); i += 7 {
		weeks = append(weeks, v.Days[i:i+7])
	}
	return weeks
}
