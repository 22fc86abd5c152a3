package calendar

import (
	"time"

	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
)

const DateLayout = "2006-01-02"

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsDate reports whether s is a well-formed YYYY-MM-DD date.
func IsDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// ClassDays lists, in ascending order, every date in [Start, End] whose
// weekday is allowed and which is not a holiday. Saturdays and Sundays are
// never class days. An inverted or unparseable range yields an empty list.
func ClassDays(cfg domain.CourseConfig) []string {
	days := make([]string, 0)

	start, err := ParseDate(cfg.Start)
	if err != nil {
		return days
	}
	end, err := ParseDate(cfg.End)
	if err != nil {
		return days
	}
	if start.After(end) {
		return days
	}

	allowed := make(map[time.Weekday]struct{}, len(cfg.DaysOfWeek))
	for _, weekday := range cfg.DaysOfWeek {
		allowed[time.Weekday(weekday)] = struct{}{}
	}
	holidays := make(map[string]struct{}, len(cfg.Holidays))
	for _, holiday := range cfg.Holidays {
		holidays[holiday] = struct{}{}
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		weekday := d.Weekday()
		if weekday == time.Saturday || weekday == time.Sunday {
			continue
		}
		if _, ok := allowed[weekday]; !ok {
			continue
		}
		date := FormatDate(d)
		if _, ok := holidays[date]; ok {
			continue
		}
		days = append(days, date)
	}

	return days
}

// Index returns the position of date in days, or -1.
func Index(days []string, date string) int {
	for i, d := range days {
		if d == date {
			return i
		}
	}
	return -1
}
