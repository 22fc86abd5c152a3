package config

const (
	BotError = "Something went wrong, please try again later."
	Start    = "Attendance tracker bot. Send /help to see the commands."
	Private  = "This bot only answers its administrator."
	Help     = `Commands:
/day [YYYY-MM-DD] show the selected (or given) class day
/next, /prev move to the next or previous class day
/mark <n> <P|A|J|-> set the mark of student n on the selected day
/cycle <n> cycle the mark of student n on the selected day
/allpresent mark every student present on the selected day
/clearday clear every mark of the selected day
/addstudents <one name per line> add students
/summary attendance percentage per student
/units units with their class days and hours
/csv summary and detail CSV files
/backup JSON backup of the whole course
/report [n] printable HTML report, global or of student n`
	Default = "Unknown command. Send /help to see the commands."

	NoStudents       = "No students yet. Add them with /addstudents."
	NoClassDays      = "The course has no class days."
	NoUnits          = "No units yet."
	MarkFormIgnored  = "Use /mark <n> <P|A|J|->, where n is the number shown by /day."
	CycleFormIgnored = "Use /cycle <n>, where n is the number shown by /day."
	StudentNumber    = "There is no student with that number."
	DateIncorrectly  = "Dates look like 2025-09-16 and must be class days."
	NamesNoEntered   = "Send the names after the command, one per line."
	StudentsAdded    = "Added %d students."
	DayCleared       = "Marks of %s cleared."
)
