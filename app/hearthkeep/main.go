package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/hearthkeep/hearthkeep/core/calendarsync"
	"github.com/hearthkeep/hearthkeep/core/repositories/activitiesrepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/activitiesrepo/stores/activitiespgxstore"
	"github.com/hearthkeep/hearthkeep/core/repositories/leaverepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/leaverepo/stores/leavepgxstore"
	"github.com/hearthkeep/hearthkeep/core/repositories/menurepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/menurepo/stores/menupgxstore"
	"github.com/hearthkeep/hearthkeep/core/repositories/recipesrepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/recipesrepo/stores/recipespgxstore"
	"github.com/hearthkeep/hearthkeep/core/repositories/sessionsrepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/sessionsrepo/stores/sessionspgxstore"
	"github.com/hearthkeep/hearthkeep/core/repositories/supplyrepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/supplyrepo/stores/supplypgxstore"
	"github.com/hearthkeep/hearthkeep/core/repositories/syncstaterepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/syncstaterepo/stores/syncstatepgxstore"
	"github.com/hearthkeep/hearthkeep/core/repositories/tasksrepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/hearthkeep/hearthkeep/core/repositories/usersrepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/usersrepo/stores/userspgxstore"
	"github.com/hearthkeep/hearthkeep/infrastructure/postgresdb"
	"github.com/hearthkeep/hearthkeep/infrastructure/web"
	"github.com/hearthkeep/hearthkeep/infrastructure/workers"
	"github.com/hearthkeep/hearthkeep/sdk/environment"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
	"github.com/hearthkeep/hearthkeep/sdk/telemetry"
)

var build = "develop"

const appName = "HEARTHKEEP"

// appOptions holds the application-level settings that do not belong to any
// one infrastructure package.
type appOptions struct {
	SessionTTL           time.Duration `env:"SESSION_TTL" default:"720h"`
	SweepSchedule        string        `env:"SWEEP_SCHEDULE" default:"@every 15m"`
	SessionPurgeSchedule string        `env:"SESSION_PURGE_SCHEDULE" default:"@hourly"`
}

func main() {
	godotenv.Load()
	ctx := context.Background()

	tel := telemetry.NewTelemetry()
	log, err := logger.NewFromEnv(appName, logger.WithTraceID(tel.GetTraceID))
	if err != nil {
		log = logger.NewDefault(logger.WithTraceID(tel.GetTraceID))
		log.Warn(ctx, "startup", "status", "falling back to default logger", "err", err)
	}

	if err := run(ctx, log, tel); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger, tel telemetry.Telemetry) error {
	log.Info(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	var opts appOptions
	if err := environment.ParseEnvTags(appName, &opts); err != nil {
		return fmt.Errorf("parsing app config: %w", err)
	}

	// :*: DATABASE :*:
	pg, err := postgresdb.NewFromEnv(appName, postgresdb.WithLogger(log.Logger))
	if err != nil {
		return fmt.Errorf("configuring postgres support: %w", err)
	}
	defer func() {
		log.Info(ctx, "shutdown", "status", "closing database connection")
		pg.Close()
	}()

	// :*: REPOSITORIES :*:
	log.Info(ctx, "startup", "status", "initializing repository support")

	users := usersrepo.NewRepository(log, userspgxstore.NewStore(log, pg))
	sessions := sessionsrepo.NewRepository(log, sessionspgxstore.NewStore(log, pg), opts.SessionTTL)
	tasks := tasksrepo.NewRepository(log, taskspgxstore.NewStore(log, pg))
	leave := leaverepo.NewRepository(log, leavepgxstore.NewStore(log, pg))
	supplies := supplyrepo.NewRepository(log, supplypgxstore.NewStore(log, pg))
	recipes := recipesrepo.NewRepository(log, recipespgxstore.NewStore(log, pg))
	menu := menurepo.NewRepository(log, menupgxstore.NewStore(log, pg))
	activities := activitiesrepo.NewRepository(log, activitiespgxstore.NewStore(log, pg))
	syncState := syncstaterepo.NewRepository(log, syncstatepgxstore.NewStore(log, pg))

	// :*: CALENDAR SYNC :*:
	// Sync is optional: without Google credentials in the environment the app
	// runs with the calendar features turned off.
	var syncRepo *syncstaterepo.Repository
	scheduler := cron.New()

	client, err := calendarsync.NewGoogleClientFromEnv(ctx, appName)
	switch {
	case err != nil:
		log.Warn(ctx, "startup", "status", "calendar sync disabled", "err", err)
	default:
		syncRepo = syncState
		syncer := calendarsync.NewService(log, syncState, client,
			calendarsync.NewTaskSource(tasks),
			calendarsync.NewLeaveSource(leave, users),
			calendarsync.NewMenuSource(menu, recipes),
		)

		pool, err := workers.NewFromEnv(appName, syncer, workers.WithLogger(log.Logger))
		if err != nil {
			return fmt.Errorf("configuring sync workers: %w", err)
		}
		go func() {
			if err := pool.Start(ctx); err != nil {
				log.Error(ctx, "sync workers", "err", err)
			}
		}()
		defer pool.Stop()

		if _, err := scheduler.AddFunc(opts.SweepSchedule, func() {
			if err := syncer.Sweep(ctx); err != nil {
				log.Error(ctx, "sync sweep", "err", err)
			}
		}); err != nil {
			return fmt.Errorf("scheduling sync sweep: %w", err)
		}

		log.Info(ctx, "startup", "status", "calendar sync enabled")
	}

	if _, err := scheduler.AddFunc(opts.SessionPurgeSchedule, func() {
		if err := sessions.PurgeExpired(ctx); err != nil {
			log.Error(ctx, "session purge", "err", err)
		}
	}); err != nil {
		return fmt.Errorf("scheduling session purge: %w", err)
	}

	scheduler.Start()
	defer scheduler.Stop()

	// :*: WEB SERVER :*:
	webCfg, err := web.LoadServerConfig(appName)
	if err != nil {
		return fmt.Errorf("webserver: %w", err)
	}

	cfg := appConfig{
		Build:     build,
		Log:       log,
		Telemetry: tel,
		Pool:      pg,
		APIRoute:  webCfg.APIRoute,

		Users:      users,
		Sessions:   sessions,
		Tasks:      tasks,
		Leave:      leave,
		Supplies:   supplies,
		Recipes:    recipes,
		Menu:       menu,
		Activities: activities,
		Sync:       syncRepo,
	}

	server := web.NewWebServer(webCfg, webHandler(cfg), logger.NewStdLogger(log, slog.LevelError))

	serverErrors := make(chan error, 1)
	go func() {
		log.Info(ctx, "startup", "status", "api router started", "host", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Info(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.Info(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, webCfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
