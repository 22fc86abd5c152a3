package domain

// Snapshot is the full application state that a backup carries.
type Snapshot struct {
	Config       CourseConfig    `json:"config"`
	Units        []Unit          `json:"units"`
	Students     []Student       `json:"students"`
	Attendance   AttendanceTable `json:"attendance"`
	SelectedDate string          `json:"selectedDate"`
}
