package ui

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sheldcoop/aoi-app/domain/defect"
	"github.com/sheldcoop/aoi-app/internal/config"
	"github.com/sheldcoop/aoi-app/internal/session"
)

// SnapshotStore persists loaded snapshots so a restarted server serves the
// same marker positions. Optional; a nil store disables persistence.
type SnapshotStore interface {
	Save(ctx context.Context, d *defect.Dataset) error
	GetLatest(ctx context.Context) (*defect.Dataset, error)
}

// App represents the analysis data API. It serves plain computed data
// (positions, rankings, KPI blocks, boundary geometry); drawing is the
// front end's job.
type App struct {
	router   *chi.Mux
	sessions *session.Manager
	store    SnapshotStore
	styles   defect.StyleConfig
	cfg      *config.Config
}

// NewApp creates the API application. store may be nil.
func NewApp(cfg *config.Config, store SnapshotStore) *App {
	app := &App{
		router:   chi.NewRouter(),
		sessions: session.NewManager(),
		store:    store,
		styles:   defect.DefaultStyles(),
		cfg:      cfg,
	}

	app.setupMiddleware()
	app.setupRoutes()
	return app
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the API routes
func (a *App) setupRoutes() {
	a.router.Route("/api", func(r chi.Router) {
		r.Post("/dataset", a.handleUpload)
		r.Delete("/dataset", a.handleReset)
		r.Get("/dataset", a.handleDatasetInfo)

		r.Get("/defect-map", a.handleDefectMap)
		r.Get("/pareto", a.handlePareto)
		r.Get("/summary", a.handleSummary)
		r.Get("/comparison", a.handleComparison)
		r.Get("/grid", a.handleGrid)

		r.Get("/report.xlsx", a.handleExcelReport)
		r.Get("/report.md", a.handleMarkdownReport)
	})
}

// RestoreLatest loads the most recent persisted snapshot into the session,
// if a store is configured and holds one.
func (a *App) RestoreLatest(ctx context.Context) error {
	if a.store == nil {
		return nil
	}
	d, err := a.store.GetLatest(ctx)
	if err != nil {
		return err
	}
	if d == nil {
		log.Printf("[App.RestoreLatest] No persisted snapshot found")
		return nil
	}
	a.sessions.Load(d)
	log.Printf("[App.RestoreLatest] Restored snapshot %s (%d records)", d.ID, d.Len())
	return nil
}

// Sessions exposes the session manager; the CLI shares it with the server
// when running one-shot analyses.
func (a *App) Sessions() *session.Manager {
	return a.sessions
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.router
}

// Run starts the HTTP server on the configured port.
func (a *App) Run() error {
	addr := ":" + a.cfg.Server.Port
	log.Printf("[App.Run] Listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}
