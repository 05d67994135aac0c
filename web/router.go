package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the dashboard routes.
func NewRouter(app *App) http.Handler {

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", app.HomeHandler)
	r.Get("/ping", PingHandler)
	r.Post("/analyze", app.AnalyzeHandler)
	r.Get("/sessions/{id}", app.SessionHandler)

	// produced artifacts: overlay video, feature table, pose figure, thumbs
	fileServer := http.FileServer(http.Dir(app.Workspace.AnalysisDir()))
	r.Handle("/artifacts/*", http.StripPrefix("/artifacts", fileServer))

	return r
}
