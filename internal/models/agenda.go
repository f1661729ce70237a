package models

// AgendaDay is the day view of the teacher's schedule.
type AgendaDay struct {
	Date     string    `json:"date"`
	Sessions []Session `json:"sessions"`
}

// AgendaCell is one cell of the 42-cell month grid.
type AgendaCell struct {
	Date       string `json:"date"`
	InMonth    bool   `json:"in_month"`
	Today      bool   `json:"today"`
	HasEvents  bool   `json:"has_events"`
	EventCount int    `json:"event_count"`
}

// AgendaMonth is the month view: six weeks of seven days including the
// leading and trailing spill from adjacent months.
type AgendaMonth struct {
	Month string       `json:"month"`
	Cells []AgendaCell `json:"cells"`
}
