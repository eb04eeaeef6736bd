package main

import (
	"context"
	"net/http"

	"github.com/hearthkeep/hearthkeep/bridge/repositories/activitiesrepobridge"
	"github.com/hearthkeep/hearthkeep/bridge/repositories/authbridge"
	"github.com/hearthkeep/hearthkeep/bridge/repositories/leaverepobridge"
	"github.com/hearthkeep/hearthkeep/bridge/repositories/menurepobridge"
	"github.com/hearthkeep/hearthkeep/bridge/repositories/recipesrepobridge"
	"github.com/hearthkeep/hearthkeep/bridge/repositories/supplyrepobridge"
	"github.com/hearthkeep/hearthkeep/bridge/repositories/tasksrepobridge"
	"github.com/hearthkeep/hearthkeep/bridge/repositories/usersrepobridge"
	"github.com/hearthkeep/hearthkeep/bridge/scaffolding/errs"
	"github.com/hearthkeep/hearthkeep/bridge/scaffolding/fopbridge"
	"github.com/hearthkeep/hearthkeep/bridge/scaffolding/mid"
	"github.com/hearthkeep/hearthkeep/core/repositories/activitiesrepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/leaverepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/menurepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/recipesrepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/sessionsrepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/supplyrepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/syncstaterepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/tasksrepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/usersrepo"
	"github.com/hearthkeep/hearthkeep/infrastructure/postgresdb"
	"github.com/hearthkeep/hearthkeep/infrastructure/web"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
	"github.com/hearthkeep/hearthkeep/sdk/telemetry"
)

// appConfig carries everything the HTTP layer needs. Sync is nil when
// calendar sync is disabled; the bridges then skip enqueueing.
type appConfig struct {
	Build     string
	Log       *logger.Logger
	Telemetry telemetry.Telemetry
	Pool      *postgresdb.Pool
	APIRoute  string

	Users      *usersrepo.Repository
	Sessions   *sessionsrepo.Repository
	Tasks      *tasksrepo.Repository
	Leave      *leaverepo.Repository
	Supplies   *supplyrepo.Repository
	Recipes    *recipesrepo.Repository
	Menu       *menurepo.Repository
	Activities *activitiesrepo.Repository
	Sync       *syncstaterepo.Repository
}

// webHandler wires the global middleware and every bridge into one handler.
func webHandler(cfg appConfig) http.Handler {
	app := web.NewApp(cfg.Log, cfg.Telemetry,
		mid.PublicCORS(),
		mid.Logger(cfg.Log),
		mid.Errors(cfg.Log),
		mid.Metrics(),
		mid.Panics(),
	)

	addProbes(app, cfg)

	public := app.Group(cfg.APIRoute)
	authed := app.Group(cfg.APIRoute, mid.Authenticate(cfg.Sessions, cfg.Users))
	admin := []web.MidFunc{mid.RequireAdmin()}

	authbridge.AddPublicHttpRoutes(public, authbridge.Config{
		Log:      cfg.Log,
		Users:    cfg.Users,
		Sessions: cfg.Sessions,
	})
	authbridge.AddHttpRoutes(authed, authbridge.Config{
		Log:      cfg.Log,
		Users:    cfg.Users,
		Sessions: cfg.Sessions,
	})

	usersrepobridge.AddHttpRoutes(authed, usersrepobridge.Config{
		Log:        cfg.Log,
		Repository: cfg.Users,
		Middleware: admin,
	})

	tasksrepobridge.AddHttpRoutes(authed, tasksrepobridge.Config{
		Log:        cfg.Log,
		Repository: cfg.Tasks,
		Sync:       cfg.Sync,
	})

	leaverepobridge.AddHttpRoutes(authed, leaverepobridge.Config{
		Log:             cfg.Log,
		Repository:      cfg.Leave,
		Sync:            cfg.Sync,
		AdminMiddleware: admin,
	})

	supplyrepobridge.AddHttpRoutes(authed, supplyrepobridge.Config{
		Log:        cfg.Log,
		Repository: cfg.Supplies,
	})

	recipesrepobridge.AddHttpRoutes(authed, recipesrepobridge.Config{
		Log:        cfg.Log,
		Repository: cfg.Recipes,
	})

	menurepobridge.AddHttpRoutes(authed, menurepobridge.Config{
		Log:        cfg.Log,
		Repository: cfg.Menu,
		Sync:       cfg.Sync,
	})

	activitiesrepobridge.AddHttpRoutes(authed, activitiesrepobridge.Config{
		Log:        cfg.Log,
		Repository: cfg.Activities,
	})

	return app
}

// addProbes registers the liveness and readiness endpoints outside the
// global middleware so probes stay cheap and quiet.
func addProbes(app *web.App, cfg appConfig) {
	app.HandleNoMiddleware(http.MethodGet, "/liveness", func(ctx context.Context, r *http.Request) web.Encoder {
		return fopbridge.NewCodeResponse("OK", "alive")
	})

	app.HandleNoMiddleware(http.MethodGet, "/readiness", func(ctx context.Context, r *http.Request) web.Encoder {
		if err := postgresdb.StatusCheck(ctx, cfg.Pool); err != nil {
			return errs.New(errs.Unavailable, err)
		}
		return fopbridge.NewCodeResponse("OK", "ready")
	})
}
