package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
	"github.com/ilyadubrovsky/tracking-attendance/internal/service/export"
	"github.com/ilyadubrovsky/tracking-attendance/internal/summary"
)

const (
	cyclePrefix        = "cyc"
	numberOfButtonsRow = 5
)

var markSymbols = map[domain.Mark]string{
	domain.MarkUnset:     "·",
	domain.MarkPresent:   "P",
	domain.MarkAbsent:    "A",
	domain.MarkJustified: "J",
}

func formatDay(date string, students []domain.Student, marks []domain.Mark, stats domain.DayStats) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "%s\n", date)
	fmt.Fprintf(b, "P %d, A %d, J %d, unset %d of %d\n",
		stats.Present, stats.Absent, stats.Justified, stats.Unset, stats.Total)

	if len(students) == 0 {
		b.WriteString("\nNo students.")
		return b.String()
	}

	b.WriteString("\n")
	for i, student := range students {
		var mark domain.Mark
		if i < len(marks) {
			mark = marks[i]
		}
		fmt.Fprintf(b, "%d. [%s] %s\n", i+1, markSymbols[mark], student.Name)
	}

	return strings.TrimRight(b.String(), "\n")
}

// formatSummary lists the whole-course percentage of every student and
// the units where the student is below the threshold.
func formatSummary(matrix domain.Matrix, fallbackPct float64) string {
	b := &strings.Builder{}
	for i, studentSummary := range matrix.Students {
		total := studentSummary.ByUnit[domain.TotalUnitID]
		totalUnit, _ := matrix.Unit(domain.TotalUnitID)
		flag := ""
		if summary.Classify(total, totalUnit.Unit.Threshold(fallbackPct)) == domain.StatusBelow {
			flag = " !"
		}
		fmt.Fprintf(b, "%d. %s: %s%%%s\n", i+1, studentSummary.Student.Name, export.FormatPct(total.Pct), flag)

		var below []string
		for _, u := range matrix.Units {
			if u.Unit.IsTotal() {
				continue
			}
			rec := studentSummary.ByUnit[u.Unit.ID]
			if summary.Classify(rec, u.Unit.Threshold(fallbackPct)) == domain.StatusBelow {
				below = append(below, fmt.Sprintf("%s %s%%", unitLabel(u.Unit), export.FormatPct(rec.Pct)))
			}
		}
		if len(below) > 0 {
			fmt.Fprintf(b, "   below: %s\n", strings.Join(below, ", "))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatUnits(units []domain.UnitDays, hoursPerDay float64) string {
	b := &strings.Builder{}
	for _, u := range units {
		fmt.Fprintf(b, "%s: %d days, %sh", unitLabel(u.Unit), len(u.Days),
			strconv.FormatFloat(u.Hours(hoursPerDay), 'f', -1, 64))
		if u.Unit.HasDates() {
			fmt.Fprintf(b, " (%s..%s)", u.Unit.Start, u.Unit.End)
		}
		b.WriteString("\n")
		for _, warning := range u.Warnings {
			fmt.Fprintf(b, "   %s\n", warning)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func unitLabel(unit domain.Unit) string {
	if unit.Code == "" {
		return unit.Name
	}
	return unit.Code + " " + unit.Name
}

// parseMarkArgs parses "<n> <mark>".
func parseMarkArgs(payload string) (int, domain.Mark, bool) {
	args := strings.Fields(payload)
	if len(args) != 2 {
		return 0, domain.MarkUnset, false
	}

	index, ok := parseIndex(args[0])
	if !ok {
		return 0, domain.MarkUnset, false
	}

	mark, ok := domain.ParseMark(args[1])
	if !ok {
		return 0, domain.MarkUnset, false
	}

	return index, mark, true
}

func parseIndex(s string) (int, bool) {
	index, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || index <= 0 {
		return 0, false
	}
	return index, true
}

func studentAt(students []domain.Student, index int) (domain.Student, bool) {
	if index <= 0 || index > len(students) {
		return domain.Student{}, false
	}
	return students[index-1], true
}

// commandBody is everything after the command word, newlines included.
func commandBody(text string) string {
	i := strings.IndexAny(text, " \t\n")
	if i < 0 {
		return ""
	}
	return text[i+1:]
}

func cycleData(studentID, date string) string {
	return strings.Join([]string{cyclePrefix, studentID, date}, "|")
}

func parseCycleData(data string) (string, string, bool) {
	parts := strings.Split(data, "|")
	if len(parts) != 3 || parts[0] != cyclePrefix || parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	return parts[1], parts[2], true
}

// makeDayInlineMarkup has one button per student, numbered like formatDay.
func makeDayInlineMarkup(date string, students []domain.Student) *tele.ReplyMarkup {
	keyboard := make([][]tele.InlineButton, 0, len(students)/numberOfButtonsRow+1)
	for i, student := range students {
		if i%numberOfButtonsRow == 0 {
			keyboard = append(keyboard, make([]tele.InlineButton, 0, numberOfButtonsRow))
		}
		row := len(keyboard) - 1
		keyboard[row] = append(keyboard[row], tele.InlineButton{
			Text: strconv.Itoa(i + 1),
			Data: cycleData(student.ID, date),
		})
	}

	return &tele.ReplyMarkup{
		InlineKeyboard: keyboard,
	}
}
