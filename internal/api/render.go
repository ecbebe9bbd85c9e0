package api

import (
	"encoding/json"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/sitegrade/sitegrade/internal/report"
	"github.com/sitegrade/sitegrade/internal/scan"
	"github.com/sitegrade/sitegrade/internal/score"
)

type indexData struct {
	Error string
}

type scoreRow struct {
	Category       string
	Score          int
	Priority       string
	Recommendation string
	Details        string
	Color          string
}

type resultsData struct {
	URL       string
	Overall   float64
	Rows      []scoreRow
	Record    *scan.Record
	Issues    []string
	ChartJSON template.JS
}

var rowColors = map[int]string{
	1: "#e74c3c",
	2: "#e67e22",
	3: "#f1c40f",
	4: "#2ecc71",
	5: "#27ae60",
}

func (s *Server) renderIndex(w http.ResponseWriter, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", indexData{Error: errMsg}); err != nil {
		s.logger.Error("render index failed", zap.Error(err))
	}
}

func (s *Server) renderResults(w http.ResponseWriter, outcome scan.Outcome, scores score.ScoreSet) {
	rows := make([]scoreRow, 0, len(scores))
	for _, name := range score.Scored {
		val, ok := scores[name]
		if !ok {
			continue
		}
		recommendation, err := s.catalog.Recommendation(name, val)
		if err != nil {
			// Catalog misconfiguration, not a scoring failure. Render the
			// row anyway so the page is still useful.
			s.logger.Error("rubric lookup failed", zap.String("category", name), zap.Error(err))
			recommendation = "No recommendation available"
		}
		rows = append(rows, scoreRow{
			Category:       name,
			Score:          val,
			Priority:       report.Priority(val),
			Recommendation: recommendation,
			Details:        report.Details(name, outcome.Record),
			Color:          rowColors[val],
		})
	}

	chartJSON, err := json.Marshal(report.BuildChartData(scores))
	if err != nil {
		s.logger.Error("chart payload marshal failed", zap.Error(err))
		chartJSON = []byte("{}")
	}

	data := resultsData{
		URL:       outcome.URL,
		Overall:   scores.Mean(),
		Rows:      rows,
		Record:    outcome.Record,
		Issues:    outcome.Record.Issues,
		ChartJSON: template.JS(chartJSON), //nolint:gosec // payload is marshaled from our own structs
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "results.html", data); err != nil {
		s.logger.Error("render results failed", zap.Error(err))
	}
}
