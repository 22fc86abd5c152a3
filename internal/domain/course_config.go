package domain

type CourseConfig struct {
	Start                      string   `json:"start" validate:"required,date"`
	End                        string   `json:"end" validate:"required,date"`
	HoursPerDay                float64  `json:"hoursPerDay" validate:"gte=0,lte=24"`
	StartTime                  string   `json:"startTime" validate:"omitempty,clock"`
	EndTime                    string   `json:"endTime" validate:"omitempty,clock"`
	DaysOfWeek                 []int    `json:"daysOfWeek" validate:"dive,gte=0,lte=6"`
	RequiredPct                float64  `json:"requiredPct" validate:"gte=0,lte=100"`
	Holidays                   []string `json:"holidays" validate:"dive,date"`
	CountJustifiedAgainstLimit bool     `json:"countJustifiedAgainstLimit"`
}

// DefaultCourseConfig is used until a configuration has been saved.
func DefaultCourseConfig() CourseConfig {
	return CourseConfig{
		Start:       "2025-09-16",
		End:         "2026-01-29",
		HoursPerDay: 5,
		StartTime:   "09:00",
		EndTime:     "14:00",
		DaysOfWeek:  []int{1, 2, 3, 4, 5},
		RequiredPct: 75,
		Holidays: []string{
			"2025-10-13",
			"2025-12-08",
			"2025-12-24",
			"2025-12-25",
			"2025-12-26",
			"2025-12-31",
			"2026-01-01",
			"2026-01-02",
			"2026-01-06",
		},
		CountJustifiedAgainstLimit: false,
	}
}

func (c CourseConfig) Clone() CourseConfig {
	clone := c
	clone.DaysOfWeek = append([]int(nil), c.DaysOfWeek...)
	clone.Holidays = append([]string(nil), c.Holidays...)
	if c.DaysOfWeek != nil && clone.DaysOfWeek == nil {
		clone.DaysOfWeek = []int{}
	}
	if c.Holidays != nil && clone.Holidays == nil {
		clone.Holidays = []string{}
	}
	return clone
}
