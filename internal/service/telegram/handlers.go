package telegram

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"github.com/ilyadubrovsky/tracking-attendance/internal/config"
	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
	ierrors "github.com/ilyadubrovsky/tracking-attendance/internal/errors"
	"github.com/ilyadubrovsky/tracking-attendance/internal/service/export"
)

func (s *svc) handleCallback(c tele.Context) error {
	callbackData := strings.Replace(c.Callback().Data, "\f", "", -1)
	studentID, date, ok := parseCycleData(callbackData)
	if !ok {
		return s.EditMessageWithOpts(c.Sender().ID, c.Message().ID, config.BotError)
	}

	if _, err := s.courseSvc.CycleMark(studentID, date); err != nil {
		log.Error().Str("student", studentID).Str("date", date).
			Msgf("courseSvc.CycleMark: %v", err.Error())
		return s.EditMessageWithOpts(c.Sender().ID, c.Message().ID, config.BotError)
	}

	text, markup, err := s.dayMessage(date)
	if err != nil {
		return s.EditMessageWithOpts(c.Sender().ID, c.Message().ID, config.BotError)
	}

	return s.EditMessageWithOpts(c.Sender().ID, c.Message().ID, text, markup)
}

func (s *svc) handleStartCommand(c tele.Context) error {
	return s.SendMessageWithOpts(c.Sender().ID, config.Start)
}

func (s *svc) handleHelpCommand(c tele.Context) error {
	return s.SendMessageWithOpts(c.Sender().ID, config.Help)
}

func (s *svc) handleText(c tele.Context) error {
	if c.Sender().ID != s.cfg.AdminID {
		return s.SendMessageWithOpts(c.Sender().ID, config.Private)
	}

	return s.SendMessageWithOpts(c.Sender().ID, config.Default)
}

func (s *svc) handleDayCommand(c tele.Context) error {
	if date := strings.TrimSpace(c.Message().Payload); date != "" {
		err := s.courseSvc.SelectDate(date)
		switch {
		case errors.Is(err, ierrors.ErrInvalidDate), errors.Is(err, ierrors.ErrNotClassDay):
			return s.SendMessageWithOpts(c.Sender().ID, config.DateIncorrectly)
		case err != nil:
			return s.SendMessageWithOpts(c.Sender().ID, config.BotError)
		}
	}

	return s.sendSelectedDay(c.Sender().ID)
}

func (s *svc) handleNextCommand(c tele.Context) error {
	s.courseSvc.NextDay()

	return s.sendSelectedDay(c.Sender().ID)
}

func (s *svc) handlePrevCommand(c tele.Context) error {
	s.courseSvc.PrevDay()

	return s.sendSelectedDay(c.Sender().ID)
}

func (s *svc) handleMarkCommand(c tele.Context) error {
	students := s.courseSvc.Students()
	index, mark, ok := parseMarkArgs(c.Message().Payload)
	if !ok {
		return s.SendMessageWithOpts(c.Sender().ID, config.MarkFormIgnored)
	}

	student, ok := studentAt(students, index)
	if !ok {
		return s.SendMessageWithOpts(c.Sender().ID, config.StudentNumber)
	}

	date := s.courseSvc.SelectedDate()
	if date == "" {
		return s.SendMessageWithOpts(c.Sender().ID, config.NoClassDays)
	}

	if err := s.courseSvc.SetMark(student.ID, date, mark); err != nil {
		log.Error().Str("student", student.ID).Str("date", date).
			Msgf("courseSvc.SetMark: %v", err.Error())
		return s.SendMessageWithOpts(c.Sender().ID, config.BotError)
	}

	return s.sendSelectedDay(c.Sender().ID)
}

func (s *svc) handleCycleCommand(c tele.Context) error {
	students := s.courseSvc.Students()
	index, ok := parseIndex(c.Message().Payload)
	if !ok {
		return s.SendMessageWithOpts(c.Sender().ID, config.CycleFormIgnored)
	}

	student, ok := studentAt(students, index)
	if !ok {
		return s.SendMessageWithOpts(c.Sender().ID, config.StudentNumber)
	}

	date := s.courseSvc.SelectedDate()
	if date == "" {
		return s.SendMessageWithOpts(c.Sender().ID, config.NoClassDays)
	}

	if _, err := s.courseSvc.CycleMark(student.ID, date); err != nil {
		log.Error().Str("student", student.ID).Str("date", date).
			Msgf("courseSvc.CycleMark: %v", err.Error())
		return s.SendMessageWithOpts(c.Sender().ID, config.BotError)
	}

	return s.sendSelectedDay(c.Sender().ID)
}

func (s *svc) handleAllPresentCommand(c tele.Context) error {
	date := s.courseSvc.SelectedDate()
	if date == "" {
		return s.SendMessageWithOpts(c.Sender().ID, config.NoClassDays)
	}

	if err := s.courseSvc.MarkAllPresent(date); err != nil {
		log.Error().Str("date", date).Msgf("courseSvc.MarkAllPresent: %v", err.Error())
		return s.SendMessageWithOpts(c.Sender().ID, config.BotError)
	}

	return s.sendSelectedDay(c.Sender().ID)
}

func (s *svc) handleClearDayCommand(c tele.Context) error {
	date := s.courseSvc.SelectedDate()
	if date == "" {
		return s.SendMessageWithOpts(c.Sender().ID, config.NoClassDays)
	}

	if err := s.courseSvc.ClearDay(date); err != nil {
		log.Error().Str("date", date).Msgf("courseSvc.ClearDay: %v", err.Error())
		return s.SendMessageWithOpts(c.Sender().ID, config.BotError)
	}

	return s.SendMessageWithOpts(c.Sender().ID, fmt.Sprintf(config.DayCleared, date))
}

func (s *svc) handleAddStudentsCommand(c tele.Context) error {
	text := commandBody(c.Message().Text)
	if strings.TrimSpace(text) == "" {
		return s.SendMessageWithOpts(c.Sender().ID, config.NamesNoEntered)
	}

	added, err := s.courseSvc.AddStudentsBulk(text)
	if err != nil {
		log.Error().Msgf("courseSvc.AddStudentsBulk: %v", err.Error())
		return s.SendMessageWithOpts(c.Sender().ID, config.BotError)
	}

	return s.SendMessageWithOpts(c.Sender().ID, fmt.Sprintf(config.StudentsAdded, len(added)))
}

func (s *svc) handleSummaryCommand(c tele.Context) error {
	overview := s.courseSvc.Overview()
	if len(overview.Matrix.Students) == 0 {
		return s.SendMessageWithOpts(c.Sender().ID, config.NoStudents)
	}

	return s.SendMessageWithOpts(c.Sender().ID, formatSummary(overview.Matrix, overview.Config.RequiredPct))
}

func (s *svc) handleUnitsCommand(c tele.Context) error {
	units := s.courseSvc.FilterUnits(c.Message().Payload)
	if len(units) == 0 {
		return s.SendMessageWithOpts(c.Sender().ID, config.NoUnits)
	}

	return s.SendMessageWithOpts(c.Sender().ID, formatUnits(units, s.courseSvc.Config().HoursPerDay))
}

func (s *svc) handleCSVCommand(c tele.Context) error {
	snapshot := s.courseSvc.Snapshot()

	summaryCSV := &bytes.Buffer{}
	if err := export.SummaryCSV(summaryCSV, s.courseSvc.Summary()); err != nil {
		log.Error().Msgf("export.SummaryCSV: %v", err.Error())
		return s.SendMessageWithOpts(c.Sender().ID, config.BotError)
	}

	detailCSV := &bytes.Buffer{}
	err := export.DetailCSV(detailCSV, s.courseSvc.ClassDays(), snapshot.Students, snapshot.Attendance)
	if err != nil {
		log.Error().Msgf("export.DetailCSV: %v", err.Error())
		return s.SendMessageWithOpts(c.Sender().ID, config.BotError)
	}

	if err = s.SendDocument(c.Sender().ID, &tele.Document{
		File:     tele.FromReader(summaryCSV),
		FileName: "attendance-summary.csv",
	}); err != nil {
		return err
	}

	return s.SendDocument(c.Sender().ID, &tele.Document{
		File:     tele.FromReader(detailCSV),
		FileName: "attendance-detail.csv",
	})
}

func (s *svc) handleBackupCommand(c tele.Context) error {
	buf := &bytes.Buffer{}
	if err := s.backupSvc.Export(buf); err != nil {
		log.Error().Msgf("backupSvc.Export: %v", err.Error())
		return s.SendMessageWithOpts(c.Sender().ID, config.BotError)
	}

	return s.SendDocument(c.Sender().ID, &tele.Document{
		File:     tele.FromReader(buf),
		FileName: "attendance-backup.json",
	})
}

func (s *svc) handleReportCommand(c tele.Context) error {
	buf := &bytes.Buffer{}
	fileName := "attendance-report.html"

	if payload := strings.TrimSpace(c.Message().Payload); payload != "" {
		index, ok := parseIndex(payload)
		if !ok {
			return s.SendMessageWithOpts(c.Sender().ID, config.StudentNumber)
		}
		student, ok := studentAt(s.courseSvc.Students(), index)
		if !ok {
			return s.SendMessageWithOpts(c.Sender().ID, config.StudentNumber)
		}
		if err := s.reportSvc.Student(buf, student.ID); err != nil {
			log.Error().Str("student", student.ID).Msgf("reportSvc.Student: %v", err.Error())
			return s.SendMessageWithOpts(c.Sender().ID, config.BotError)
		}
		fileName = fmt.Sprintf("attendance-report-%d.html", index)
	} else if err := s.reportSvc.Global(buf); err != nil {
		log.Error().Msgf("reportSvc.Global: %v", err.Error())
		return s.SendMessageWithOpts(c.Sender().ID, config.BotError)
	}

	return s.SendDocument(c.Sender().ID, &tele.Document{
		File:     tele.FromReader(buf),
		FileName: fileName,
	})
}

func (s *svc) sendSelectedDay(id int64) error {
	date := s.courseSvc.SelectedDate()
	if date == "" {
		return s.SendMessageWithOpts(id, config.NoClassDays)
	}

	text, markup, err := s.dayMessage(date)
	if err != nil {
		return s.SendMessageWithOpts(id, config.BotError)
	}

	return s.SendMessageWithOpts(id, text, markup)
}

func (s *svc) dayMessage(date string) (string, *tele.ReplyMarkup, error) {
	stats, err := s.courseSvc.DayStats(date)
	if err != nil {
		log.Error().Str("date", date).Msgf("courseSvc.DayStats: %v", err.Error())
		return "", nil, fmt.Errorf("courseSvc.DayStats: %w", err)
	}

	students := s.courseSvc.Students()
	marks := make([]domain.Mark, len(students))
	for i, student := range students {
		marks[i] = s.courseSvc.Mark(student.ID, date)
	}

	return formatDay(date, students, marks, stats), makeDayInlineMarkup(date, students), nil
}
