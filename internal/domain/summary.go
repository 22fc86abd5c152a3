package domain

type UnitSummary struct {
	Pct               float64 `json:"pct"`
	TotalDays         int     `json:"totalDays"`
	Present           int     `json:"present"`
	MissedUnjustified int     `json:"missedUnjustified"`
	MissedJustified   int     `json:"missedJustified"`
	PenalizedMissed   int     `json:"penalizedMissed"`
}

type StudentSummary struct {
	Student Student                `json:"student"`
	ByUnit  map[string]UnitSummary `json:"byUnit"`
}

// Matrix holds a summary per student and unit. Units[0] is always the
// whole-course unit.
type Matrix struct {
	Units    []UnitDays
	Students []StudentSummary
}

func (m Matrix) Unit(id string) (UnitDays, bool) {
	for _, u := range m.Units {
		if u.Unit.ID == id {
			return u, true
		}
	}
	return UnitDays{}, false
}

func (m Matrix) Student(id string) (StudentSummary, bool) {
	for _, s := range m.Students {
		if s.Student.ID == id {
			return s, true
		}
	}
	return StudentSummary{}, false
}

type Status string

const (
	StatusNoDays Status = "no-days"
	StatusBelow  Status = "below"
	StatusMeets  Status = "meets"
)
