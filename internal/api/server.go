// Package api exposes the HTTP interface for the audit service.
package api

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sitegrade/sitegrade/internal/config"
	"github.com/sitegrade/sitegrade/internal/report"
	"github.com/sitegrade/sitegrade/internal/scan"
	"github.com/sitegrade/sitegrade/internal/score"
	"github.com/sitegrade/sitegrade/internal/session"
	"github.com/sitegrade/sitegrade/internal/telemetry"
)

//go:embed templates/*.html
var templateFS embed.FS

const sessionCookie = "sitegrade_session"

// Server wires HTTP handlers to the scan pipeline, rubric, and session store.
type Server struct {
	router    chi.Router
	scanner   *scan.Scanner
	catalog   *score.Catalog
	sessions  *session.Store
	templates *template.Template
	logger    *zap.Logger
	cfg       config.Config
}

// NewServer constructs a Server with middleware and routes.
func NewServer(
	scanner *scan.Scanner,
	catalog *score.Catalog,
	sessions *session.Store,
	cfg config.Config,
	logger *zap.Logger,
) (*Server, error) {
	telemetry.Init()

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		scanner:   scanner,
		catalog:   catalog,
		sessions:  sessions,
		templates: tmpl,
		logger:    logger,
		cfg:       cfg,
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))
	r.Use(metricsMiddleware)
	r.Use(timeoutMiddleware(time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second))
	r.Use(rateLimitMiddleware(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", telemetry.Handler())

	r.Get("/", s.index)
	r.Post("/scan", s.scanPage)
	r.Get("/download", s.download)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/scan", s.scanJSON)
	})

	s.router = r
	return s, nil
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(s.logger, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(s.logger, w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) index(w http.ResponseWriter, _ *http.Request) {
	s.renderIndex(w, "")
}

// scanPage handles the form submission: one full scan per request, then the
// results page. Validation failures re-render the form with the message.
func (s *Server) scanPage(w http.ResponseWriter, r *http.Request) {
	rawURL := r.FormValue("url")
	if rawURL == "" {
		s.renderIndex(w, "Please enter a URL")
		return
	}

	start := time.Now()
	outcome := s.scanner.Run(r.Context(), rawURL)
	telemetry.ObserveScan(outcome.Status, time.Since(start))

	if outcome.Status == scan.StatusError {
		s.renderIndex(w, outcome.Message)
		return
	}

	scores := score.Score(outcome.Record, outcome.Body)
	s.saveSession(w, r, session.Entry{
		URL:    outcome.URL,
		Scores: scores,
		Record: outcome.Record,
	})
	s.renderResults(w, outcome, scores)
}

// download rebuilds the workbook from the session tuple and streams it.
func (s *Server) download(w http.ResponseWriter, r *http.Request) {
	entry, err := s.sessionEntry(r)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	wb, err := report.BuildWorkbook(entry.URL, entry.Scores, entry.Record, s.catalog)
	if err != nil {
		s.logger.Error("workbook build failed", zap.String("url", entry.URL), zap.Error(err))
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	telemetry.ObserveDownload()

	filename := report.Filename(time.Now())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := wb.WriteTo(w); err != nil {
		s.logger.Error("workbook write failed", zap.Error(err))
	}
}

type scanRequest struct {
	URL string `json:"url"`
}

type scanResponse struct {
	Status  string         `json:"status"`
	URL     string         `json:"url"`
	Scores  score.ScoreSet `json:"scores,omitempty"`
	Record  *scan.Record   `json:"record"`
	Message string         `json:"message,omitempty"`
}

// scanJSON is the API flavor of scanPage.
func (s *Server) scanJSON(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(s.logger, w, http.StatusBadRequest, "invalid JSON")
		return
	}

	start := time.Now()
	outcome := s.scanner.Run(r.Context(), req.URL)
	telemetry.ObserveScan(outcome.Status, time.Since(start))

	resp := scanResponse{
		Status:  outcome.Status,
		URL:     outcome.URL,
		Record:  outcome.Record,
		Message: outcome.Message,
	}
	status := http.StatusOK
	if outcome.Status == scan.StatusError {
		status = http.StatusUnprocessableEntity
	} else {
		resp.Scores = score.Score(outcome.Record, outcome.Body)
	}
	writeJSON(s.logger, w, status, resp)
}

func (s *Server) saveSession(w http.ResponseWriter, r *http.Request, entry session.Entry) {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		s.sessions.Set(cookie.Value, entry)
		return
	}
	key := s.sessions.Put(entry)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    key,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) sessionEntry(r *http.Request) (session.Entry, error) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return session.Entry{}, session.ErrNotFound
	}
	entry, err := s.sessions.Get(cookie.Value)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return session.Entry{}, fmt.Errorf("load session: %w", err)
	}
	return entry, err
}

func writeJSON(logger *zap.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("write JSON failed", zap.Error(err))
	}
}

func writeError(logger *zap.Logger, w http.ResponseWriter, status int, msg string) {
	writeJSON(logger, w, status, map[string]string{"error": msg})
}
