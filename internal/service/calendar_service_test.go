package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheduler/internal/db"
	"scheduler/internal/entities"
	"scheduler/internal/utils"
)

func cellAt(t *testing.T, view entities.CalendarView, d time.Time, label string) entities.CalendarCell {
	t.Helper()
	for _, day := range view.Days {
		if day.Date.Equal(d) {
			require.True(t, day.InMonth, "day %s is outside the month", d.Format(time.DateOnly))
			for _, c := range day.Cells {
				if c.Label == label {
					return c
				}
			}
			t.Fatalf("label %q not in day %s", label, d.Format(time.DateOnly))
		}
	}
	t.Fatalf("day %s not in grid", d.Format(time.DateOnly))
	return entities.CalendarCell{}
}

func TestBuildMonth_GridShape(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		wantDays  int
		wantFirst time.Time
		wantLast  time.Time
	}{
		{name: "june 2024 starts saturday", year: 2024, month: time.June, wantDays: 35, wantFirst: date(2024, 5, 27), wantLast: date(2024, 6, 30)},
		{name: "february 2021 fits four weeks", year: 2021, month: time.February, wantDays: 28, wantFirst: date(2021, 2, 1), wantLast: date(2021, 2, 28)},
		{name: "september 2024 spans six weeks", year: 2024, month: time.September, wantDays: 42, wantFirst: date(2024, 8, 26), wantLast: date(2024, 10, 6)},
		{name: "leap february", year: 2024, month: time.February, wantDays: 35, wantFirst: date(2024, 1, 29), wantLast: date(2024, 3, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := BuildMonth(tt.year, tt.month, nil)
			require.Len(t, view.Days, tt.wantDays)
			assert.Zero(t, len(view.Days)%7)
			assert.Len(t, view.Weeks(), tt.wantDays/7)
			assert.Equal(t, tt.wantFirst, view.Days[0].Date)
			assert.Equal(t, tt.wantLast, view.Days[len(view.Days)-1].Date)
			assert.Equal(t, time.Monday, view.Days[0].Date.Weekday())
			assert.Equal(t, int(tt.month), view.MonthNumber())

			for _, day := range view.Days {
				if day.Date.Month() != tt.month {
					assert.False(t, day.InMonth)
					assert.Empty(t, day.Cells, "placeholder %s has cells", day.Date)
					continue
				}
				assert.True(t, day.InMonth)
				require.Len(t, day.Cells, len(utils.TimeLabels))
				for i, c := range day.Cells {
					assert.Equal(t, utils.TimeLabels[i], c.Label)
					assert.Equal(t, entities.CellNone, c.State)
				}
			}
		})
	}
}

func TestBuildMonth_States(t *testing.T) {
	slots := []db.Slot{
		{ID: 1, Date: date(2024, 6, 10), Time: "9am", Available: true},
		{ID: 2, Date: date(2024, 6, 10), Time: "10am", Available: false},
		{ID: 3, Date: date(2024, 6, 11), Time: "5pm", Available: true},
	}
	view := BuildMonth(2024, time.June, slots)

	open := cellAt(t, view, date(2024, 6, 10), "9am")
	assert.True(t, open.IsOpen())
	assert.Equal(t, uint(1), open.SlotID)

	booked := cellAt(t, view, date(2024, 6, 10), "10am")
	assert.True(t, booked.IsBooked())
	assert.Zero(t, booked.SlotID)

	none := cellAt(t, view, date(2024, 6, 10), "11am")
	assert.Equal(t, entities.CellNone, none.State)

	for _, c := range view.Days {
		for _, cell := range c.Cells {
			assert.NotEqual(t, "5pm", cell.Label)
		}
	}
}

func TestBuildMonth_DuplicateSlots(t *testing.T) {
	tests := []struct {
		name      string
		slots     []db.Slot
		wantState entities.CellState
		wantID    uint
	}{
		{
			name: "open wins over booked",
			slots: []db.Slot{
				{ID: 4, Date: date(2024, 6, 10), Time: "9am", Available: false},
				{ID: 7, Date: date(2024, 6, 10), Time: "9am", Available: true},
			},
			wantState: entities.CellOpen, wantID: 7,
		},
		{
			name: "booked listed after open",
			slots: []db.Slot{
				{ID: 7, Date: date(2024, 6, 10), Time: "9am", Available: true},
				{ID: 4, Date: date(2024, 6, 10), Time: "9am", Available: false},
			},
			wantState: entities.CellOpen, wantID: 7,
		},
		{
			name: "lowest open id",
			slots: []db.Slot{
				{ID: 9, Date: date(2024, 6, 10), Time: "9am", Available: true},
				{ID: 5, Date: date(2024, 6, 10), Time: "9am", Available: true},
			},
			wantState: entities.CellOpen, wantID: 5,
		},
		{
			name: "all booked",
			slots: []db.Slot{
				{ID: 1, Date: date(2024, 6, 10), Time: "9am", Available: false},
				{ID: 2, Date: date(2024, 6, 10), Time: "9am", Available: false},
			},
			wantState: entities.CellBooked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := BuildMonth(2024, time.June, tt.slots)
			c := cellAt(t, view, date(2024, 6, 10), "9am")
			assert.Equal(t, tt.wantState, c.State)
			assert.Equal(t, tt.wantID, c.SlotID)
		})
	}
}

func TestBuildMonth_IgnoresOtherMonths(t *testing.T) {
	slots := []db.Slot{{ID: 1, Date: date(2024, 5, 31), Time: "9am", Available: true}}
	view := BuildMonth(2024, time.June, slots)

	for _, day := range view.Days {
		for _, c := range day.Cells {
			assert.Equal(t, entities.CellNone, c.State)
		}
	}
}

func TestCalendarService_CurrentMonthUsesClock(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &db.Slot{Date: date(2024, 6, 10), Time: "9am", Available: true}))
	require.NoError(t, store.Create(ctx, &db.Slot{Date: date(2023, 6, 10), Time: "10am", Available: true}))
	require.NoError(t, store.Create(ctx, &db.Slot{Date: date(2024, 7, 1), Time: "9am", Available: true}))

	svc := NewCalendarService(store, func() time.Time { return time.Date(2024, 6, 15, 13, 0, 0, 0, time.UTC) })
	view, err := svc.CurrentMonth(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2024, view.Year)
	assert.Equal(t, time.June, view.Month)
	assert.True(t, cellAt(t, *view, date(2024, 6, 10), "9am").IsOpen())
	assert.Equal(t, entities.CellNone, cellAt(t, *view, date(2024, 6, 10), "10am").State, "slot from another year leaked in")
}

func TestCalendarService_RepoError(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("db down")

	svc := NewCalendarService(store, nil)
	_, err := svc.Month(context.Background(), 2024, time.June)
	assert.ErrorIs(t, err, store.err)
}
