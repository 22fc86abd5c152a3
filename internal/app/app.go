package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ilyadubrovsky/tracking-attendance/internal/config"
	"github.com/ilyadubrovsky/tracking-attendance/internal/database/pg"
	"github.com/ilyadubrovsky/tracking-attendance/internal/repository"
	"github.com/ilyadubrovsky/tracking-attendance/internal/repository/attendance"
	"github.com/ilyadubrovsky/tracking-attendance/internal/repository/course_config"
	"github.com/ilyadubrovsky/tracking-attendance/internal/repository/inmem"
	"github.com/ilyadubrovsky/tracking-attendance/internal/repository/students"
	"github.com/ilyadubrovsky/tracking-attendance/internal/repository/units"
	"github.com/ilyadubrovsky/tracking-attendance/internal/service"
	"github.com/ilyadubrovsky/tracking-attendance/internal/service/backup"
	"github.com/ilyadubrovsky/tracking-attendance/internal/service/course"
	"github.com/ilyadubrovsky/tracking-attendance/internal/service/httpapi"
	"github.com/ilyadubrovsky/tracking-attendance/internal/service/report"
	"github.com/ilyadubrovsky/tracking-attendance/internal/service/telegram"
	"github.com/ilyadubrovsky/tracking-attendance/internal/service/writebehind"
	"github.com/ilyadubrovsky/tracking-attendance/internal/validation"
	"github.com/ilyadubrovsky/tracking-attendance/pkg/idgen"
)

type repositories struct {
	courseConfig repository.CourseConfig
	units        repository.Units
	students     repository.Students
	attendance   repository.Attendance
}

type App struct {
	cfg         *config.Config
	closeDB     func()
	writeBehind interface {
		Start()
		Stop()
	}
	courseSvc  service.Course
	httpServer interface {
		Start() error
		Stop(ctx context.Context) error
	}
	telegramSvc service.Telegram
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{
		cfg:     cfg,
		closeDB: func() {},
	}

	repos, err := a.initRepositories(ctx)
	if err != nil {
		return nil, fmt.Errorf("initRepositories: %w", err)
	}

	writeBehindSvc := writebehind.NewService(cfg.WriteBehind)
	a.writeBehind = writeBehindSvc

	courseSvc := course.NewService(
		repos.courseConfig,
		repos.units,
		repos.students,
		repos.attendance,
		writeBehindSvc,
		idgen.NewUUIDProvider(),
		validation.New(),
	)
	if err = courseSvc.Load(ctx); err != nil {
		a.closeDB()
		return nil, fmt.Errorf("courseSvc.Load: %w", err)
	}
	a.courseSvc = courseSvc

	backupSvc := backup.NewService(courseSvc, time.Now)
	reportSvc := report.NewService(courseSvc)

	a.httpServer = httpapi.NewService(courseSvc, backupSvc, reportSvc, cfg.HTTP)

	if cfg.TelegramEnabled() {
		telegramSvc, err := telegram.NewService(courseSvc, backupSvc, reportSvc, cfg.Telegram)
		if err != nil {
			a.closeDB()
			return nil, fmt.Errorf("telegram.NewService: %w", err)
		}
		a.telegramSvc = telegramSvc
	} else {
		log.Warn().Msg("telegram bot token is not set, bot disabled")
	}

	return a, nil
}

func (a *App) initRepositories(ctx context.Context) (*repositories, error) {
	if a.cfg.Postgres.DSN == "" {
		log.Warn().Msg("postgres dsn is not set, course data is kept in memory")
		store := inmem.NewStore()
		return &repositories{
			courseConfig: store.CourseConfig(),
			units:        store.Units(),
			students:     store.Students(),
			attendance:   store.Attendance(),
		}, nil
	}

	pool, err := pg.New(ctx, a.cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg.New: %w", err)
	}

	if err = pg.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg.Migrate: %w", err)
	}
	a.closeDB = pool.Close

	return &repositories{
		courseConfig: course_config.NewRepository(pool),
		units:        units.NewRepository(pool),
		students:     students.NewRepository(pool),
		attendance:   attendance.NewRepository(pool),
	}, nil
}

// Run blocks until ctx is cancelled or a component fails, then stops
// everything and flushes pending writes.
func (a *App) Run(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		a.writeBehind.Start()
		return nil
	})

	group.Go(func() error {
		if err := a.httpServer.Start(); err != nil {
			return fmt.Errorf("httpServer.Start: %w", err)
		}
		return nil
	})

	if a.telegramSvc != nil {
		group.Go(func() error {
			a.telegramSvc.Start()
			return nil
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()
		a.shutdown()
		return nil
	})

	err := group.Wait()

	a.closeDB()

	return err
}

func (a *App) shutdown() {
	log.Info().Msg("shutting down")

	stopCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(stopCtx); err != nil {
		log.Error().Msgf("httpServer.Stop: %v", err.Error())
	}

	if a.telegramSvc != nil {
		a.telegramSvc.Stop()
	}

	a.writeBehind.Stop()

	flushCtx, flushCancel := context.WithTimeout(context.Background(), a.cfg.WriteBehind.OpTimeout)
	defer flushCancel()

	a.courseSvc.Flush(flushCtx)
}
