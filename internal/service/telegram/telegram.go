package telegram

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"

	"github.com/ilyadubrovsky/tracking-attendance/internal/config"
	"github.com/ilyadubrovsky/tracking-attendance/internal/service"
)

type svc struct {
	courseSvc service.Course
	backupSvc service.Backup
	reportSvc service.Report
	bot       *tele.Bot
	cfg       config.Telegram
}

func NewService(
	courseSvc service.Course,
	backupSvc service.Backup,
	reportSvc service.Report,
	cfg config.Telegram,
) (*svc, error) {
	bot, err := createBot(cfg)
	if err != nil {
		return nil, fmt.Errorf("createBot: %w", err)
	}

	s := &svc{
		courseSvc: courseSvc,
		backupSvc: backupSvc,
		reportSvc: reportSvc,
		bot:       bot,
		cfg:       cfg,
	}

	s.setBotSettings()

	return s, nil
}

func createBot(cfg config.Telegram) (*tele.Bot, error) {
	pref := tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: cfg.LongPollerDelay},
		OnError: func(err error, c tele.Context) {
			log.Error().Fields(extractTelebotFields(c)).
				Msgf("bot.OnError: %v", err.Error())
		},
	}

	abot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("tele.NewBot: %w", err)
	}

	return abot, nil
}

func (s *svc) setBotSettings() {
	s.bot.Handle("/start", s.handleStartCommand)

	s.bot.Handle("/help", s.handleHelpCommand)

	s.bot.Handle(tele.OnText, s.handleText)

	adminGroup := s.bot.Group()
	adminGroup.Use(
		middleware.Whitelist(
			s.cfg.AdminID,
		),
	)

	adminGroup.Handle(tele.OnCallback, s.handleCallback)

	adminGroup.Handle("/day", s.handleDayCommand)

	adminGroup.Handle("/next", s.handleNextCommand)

	adminGroup.Handle("/prev", s.handlePrevCommand)

	adminGroup.Handle("/mark", s.handleMarkCommand)

	adminGroup.Handle("/cycle", s.handleCycleCommand)

	adminGroup.Handle("/allpresent", s.handleAllPresentCommand)

	adminGroup.Handle("/clearday", s.handleClearDayCommand)

	adminGroup.Handle("/addstudents", s.handleAddStudentsCommand)

	adminGroup.Handle("/summary", s.handleSummaryCommand)

	adminGroup.Handle("/units", s.handleUnitsCommand)

	adminGroup.Handle("/csv", s.handleCSVCommand)

	adminGroup.Handle("/backup", s.handleBackupCommand)

	adminGroup.Handle("/report", s.handleReportCommand)

}

func (s *svc) SendMessageWithOpts(id int64, message string, opts ...interface{}) error {
	chat := tele.ChatID(id)

	_, err := s.bot.Send(chat, message, opts...)

	return s.middlewareError(id, err)
}

func (s *svc) SendDocument(id int64, doc *tele.Document) error {
	_, err := s.bot.Send(tele.ChatID(id), doc)

	return s.middlewareError(id, err)
}

func (s *svc) EditMessageWithOpts(id int64, messageID int, msg string, opts ...interface{}) error {
	_, err := s.bot.Edit(
		&editableMessage{
			messageID: messageID,
			chatID:    id,
		},
		msg,
		opts...,
	)

	if errors.Is(err, tele.ErrTrueResult) {
		err = nil
	}

	return s.middlewareError(id, err)
}

func (s *svc) middlewareError(targetUserID int64, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, tele.ErrMessageNotModified) {
		return nil
	}

	if errors.Is(err, tele.ErrBlockedByUser) ||
		errors.Is(err, tele.ErrUserIsDeactivated) ||
		errors.Is(err, tele.ErrNotStartedByUser) {
		log.Warn().Int64("user", targetUserID).Msgf("message not delivered: %v", err)
		return nil
	}

	return err
}

func (s *svc) Start() {
	log.Info().Msg("start telegram bot")
	s.bot.Start()
}

func (s *svc) Stop() {
	s.bot.Stop()
}

func extractTelebotFields(c tele.Context) map[string]interface{} {
	fields := make(map[string]interface{})
	if c == nil {
		return fields
	}
	if sender := c.Sender(); sender != nil {
		fields["user"] = sender.ID
	}
	if msg := c.Message(); msg != nil {
		fields["message"] = msg.Text
	}
	if cb := c.Callback(); cb != nil {
		fields["callback"] = cb.Data
	}
	return fields
}
