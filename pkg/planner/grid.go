package planner

import "time"

// GridCells is the fixed size of the month grid: 6 weeks of 7 days, padded
// with leading and trailing days from the adjacent months.
const GridCells = 42

// GridCell annotates one day cell of the month grid.
type GridCell struct {
	Date       time.Time `json:"date"`
	Key        DayKey    `json:"-"`
	InMonth    bool      `json:"in_month"`
	Today      bool      `json:"today"`
	HasEvents  bool      `json:"has_events"`
	EventCount int       `json:"event_count"`
}

// MonthDays returns the 42 days of the grid for the month containing ref:
// as many trailing days of the previous month as the weekday of day 1
// (Sunday = 0), every day of the month, then leading days of the next month
// up to exactly GridCells entries.
func MonthDays(ref time.Time) []time.Time {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	days := make([]time.Time, 0, GridCells)

	for i := int(first.Weekday()); i > 0; i-- {
		days = append(days, first.AddDate(0, 0, -i))
	}

	next := first.AddDate(0, 1, 0)
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	for i := 0; len(days) < GridCells; i++ {
		days = append(days, next.AddDate(0, 0, i))
	}

	return days
}

// AnnotateGrid marks each day with session presence and count from the
// store. It is a pure derivation over the store's current snapshot.
func AnnotateGrid(days []time.Time, store *Store, today time.Time) []GridCell {
	month := ref(days)
	todayKey := KeyOf(today)

	cells := make([]GridCell, len(days))
	for i, day := range days {
		key := KeyOf(day)
		count := len(store.SessionsForDay(key))
		cells[i] = GridCell{
			Date:       day,
			Key:        key,
			InMonth:    day.Month() == month,
			Today:      key == todayKey,
			HasEvents:  count > 0,
			EventCount: count,
		}
	}
	return cells
}

// MonthGrid combines MonthDays and AnnotateGrid for the month containing
// reference.
func MonthGrid(reference time.Time, store *Store, today time.Time) []GridCell {
	return AnnotateGrid(MonthDays(reference), store, today)
}

// ref picks the grid's reference month: the month of the middle cell, which
// always belongs to the reference month regardless of padding.
func ref(days []time.Time) time.Month {
	if len(days) == 0 {
		return 0
	}
	return days[len(days)/2].Month()
}
