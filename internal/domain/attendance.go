package domain

import "strings"

type Mark string

const (
	MarkUnset     Mark = ""
	MarkPresent   Mark = "P"
	MarkAbsent    Mark = "A"
	MarkJustified Mark = "J"
)

// ParseMark accepts P/A/J in any case; "", "-" and "_" mean unset.
func ParseMark(s string) (Mark, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "-", "_":
		return MarkUnset, true
	case "P":
		return MarkPresent, true
	case "A":
		return MarkAbsent, true
	case "J":
		return MarkJustified, true
	}
	return MarkUnset, false
}

func (m Mark) Valid() bool {
	switch m {
	case MarkUnset, MarkPresent, MarkAbsent, MarkJustified:
		return true
	}
	return false
}

// Next cycles "" -> P -> A -> J -> "".
func (m Mark) Next() Mark {
	switch m {
	case MarkUnset:
		return MarkPresent
	case MarkPresent:
		return MarkAbsent
	case MarkAbsent:
		return MarkJustified
	}
	return MarkUnset
}

func (m Mark) Label() string {
	switch m {
	case MarkPresent:
		return "PRESENT"
	case MarkAbsent:
		return "ABSENT (unjustified)"
	case MarkJustified:
		return "ABSENT (justified)"
	}
	return "—"
}

// AttendanceTable is keyed student id -> date -> mark. Unset marks are
// never stored.
type AttendanceTable map[string]map[string]Mark

func (t AttendanceTable) Get(studentID, date string) Mark {
	return t[studentID][date]
}

// Set stores the mark, or removes the entry when the mark is unset.
func (t AttendanceTable) Set(studentID, date string, mark Mark) {
	if mark == MarkUnset {
		t.Unset(studentID, date)
		return
	}
	byDate, ok := t[studentID]
	if !ok {
		byDate = make(map[string]Mark)
		t[studentID] = byDate
	}
	byDate[date] = mark
}

func (t AttendanceTable) Unset(studentID, date string) {
	byDate, ok := t[studentID]
	if !ok {
		return
	}
	delete(byDate, date)
	if len(byDate) == 0 {
		delete(t, studentID)
	}
}

// ClearDate unsets the date for every listed student.
func (t AttendanceTable) ClearDate(date string, studentIDs []string) {
	for _, id := range studentIDs {
		t.Unset(id, date)
	}
}

func (t AttendanceTable) Clone() AttendanceTable {
	clone := make(AttendanceTable, len(t))
	for studentID, byDate := range t {
		marks := make(map[string]Mark, len(byDate))
		for date, mark := range byDate {
			marks[date] = mark
		}
		clone[studentID] = marks
	}
	return clone
}

type DayStats struct {
	Date      string `json:"date"`
	Present   int    `json:"present"`
	Absent    int    `json:"absent"`
	Justified int    `json:"justified"`
	Unset     int    `json:"unset"`
	Total     int    `json:"total"`
}
