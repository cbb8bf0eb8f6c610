package ui

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/sheldcoop/aoi-app/adapters/excel"
	"github.com/sheldcoop/aoi-app/domain/analysis"
	"github.com/sheldcoop/aoi-app/domain/defect"
	"github.com/sheldcoop/aoi-app/domain/layout"
	"github.com/sheldcoop/aoi-app/domain/panel"
	"github.com/sheldcoop/aoi-app/internal/errors"
	"github.com/sheldcoop/aoi-app/internal/report"
)

const maxUploadBytes = 32 << 20

// handleUpload ingests a defect file and replaces the session snapshot.
// Geometry comes from form fields, falling back to the configured
// defaults. Everything derived (classification, jitter, aggregates)
// regenerates as one batch.
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.renderError(w, errors.InvalidInput("expected a multipart file upload"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		a.renderError(w, errors.InvalidInput("missing upload field \"file\""))
		return
	}
	defer file.Close()

	g := a.cfg.Panel
	if v, ok := formInt(r, "panel_rows"); ok {
		g.Rows = v
	}
	if v, ok := formInt(r, "panel_cols"); ok {
		g.Cols = v
	}
	if v, ok := formInt(r, "gap_size"); ok {
		g.Gap = v
	}
	if err := g.Validate(); err != nil {
		a.renderError(w, err)
		return
	}

	raw, err := excel.ReadDefectsFrom(file, header.Filename)
	if err != nil {
		a.renderError(w, err)
		return
	}

	d, err := defect.NewDataset(header.Filename, raw, g)
	if err != nil {
		a.renderError(w, err)
		return
	}
	a.sessions.Load(d)

	if a.store != nil {
		if err := a.store.Save(r.Context(), d); err != nil {
			// Persistence is best effort; the in-memory snapshot is
			// already live.
			log.Printf("[handleUpload] Failed to persist snapshot: %v", err)
		}
	}

	summary, _ := a.sessions.PanelSummary()
	a.renderJSON(w, http.StatusCreated, map[string]interface{}{
		"dataset_id": d.ID.String(),
		"source":     d.Source,
		"records":    d.Len(),
		"geometry":   g,
		"summary":    summary,
	})
}

// handleReset discards the loaded snapshot.
func (a *App) handleReset(w http.ResponseWriter, r *http.Request) {
	a.sessions.Reset()
	a.renderJSON(w, http.StatusOK, map[string]interface{}{"reset": true})
}

// handleDatasetInfo reports the loaded snapshot's metadata.
func (a *App) handleDatasetInfo(w http.ResponseWriter, r *http.Request) {
	d, err := a.sessions.Dataset()
	if err != nil {
		a.renderError(w, err)
		return
	}
	a.renderJSON(w, http.StatusOK, map[string]interface{}{
		"dataset_id":  d.ID.String(),
		"source":      d.Source,
		"records":     d.Len(),
		"geometry":    d.Geometry,
		"loaded_at":   d.LoadedAt,
		"unknown":     d.UnknownCount(),
		"fingerprint": d.Fingerprint().String(),
	})
}

// handleDefectMap serves plot-ready traces plus the boundary geometry for
// the requested scope. A single-quadrant scope uses the zoomed local
// frame, as in the original defect-map view.
func (a *App) handleDefectMap(w http.ResponseWriter, r *http.Request) {
	d, err := a.sessions.Dataset()
	if err != nil {
		a.renderError(w, err)
		return
	}

	scope := r.URL.Query().Get("quadrant")
	records, err := a.sessions.Scope(scope)
	if err != nil {
		a.renderError(w, err)
		return
	}

	local := scope != "" && scope != "All"
	var grid layout.Grid
	if local {
		grid = layout.SinglePanelShapes(d.Geometry)
	} else {
		grid = layout.GridShapes(d.Geometry)
	}

	a.renderJSON(w, http.StatusOK, map[string]interface{}{
		"quadrant": orAll(scope),
		"count":    len(records),
		"traces":   layout.Traces(records, d.Geometry, a.styles, local),
		"grid":     grid,
	})
}

// handlePareto serves the ranked defect-type distribution for a scope.
// An empty scope is a valid result with an empty ranking.
func (a *App) handlePareto(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("quadrant")
	records, err := a.sessions.Scope(scope)
	if err != nil {
		a.renderError(w, err)
		return
	}

	entries := analysis.Pareto(records)
	a.renderJSON(w, http.StatusOK, map[string]interface{}{
		"quadrant": orAll(scope),
		"count":    len(records),
		"entries":  entries,
		"empty":    len(entries) == 0,
	})
}

// handleSummary serves the KPI block: a single quadrant's stats, or the
// full quarterly breakdown when no quadrant is selected.
func (a *App) handleSummary(w http.ResponseWriter, r *http.Request) {
	d, err := a.sessions.Dataset()
	if err != nil {
		a.renderError(w, err)
		return
	}

	scope := r.URL.Query().Get("quadrant")
	if scope != "" && scope != "All" {
		q, err := panel.ParseQuadrant(scope)
		if err != nil {
			a.renderError(w, err)
			return
		}
		s := analysis.SummarizeQuadrant(d, q)
		a.renderJSON(w, http.StatusOK, map[string]interface{}{
			"quadrant": q.String(),
			"summary":  s,
			"empty":    s.Empty(),
		})
		return
	}

	summary, err := a.sessions.PanelSummary()
	if err != nil {
		a.renderError(w, err)
		return
	}
	a.renderJSON(w, http.StatusOK, map[string]interface{}{
		"quadrant": "All",
		"summary":  summary,
		"empty":    summary.Total.Empty(),
	})
}

// handleComparison serves the quadrant x defect-type count matrix.
func (a *App) handleComparison(w http.ResponseWriter, r *http.Request) {
	cmp, err := a.sessions.Comparison()
	if err != nil {
		a.renderError(w, err)
		return
	}
	a.renderJSON(w, http.StatusOK, cmp)
}

// handleGrid serves boundary geometry alone, derived purely from the
// panel geometry. Works without a loaded dataset.
func (a *App) handleGrid(w http.ResponseWriter, r *http.Request) {
	g := a.cfg.Panel
	if d, err := a.sessions.Dataset(); err == nil {
		g = d.Geometry
	}
	scope := r.URL.Query().Get("quadrant")
	if scope != "" && scope != "All" {
		if _, err := panel.ParseQuadrant(scope); err != nil {
			a.renderError(w, err)
			return
		}
		a.renderJSON(w, http.StatusOK, layout.SinglePanelShapes(g))
		return
	}
	a.renderJSON(w, http.StatusOK, layout.GridShapes(g))
}

// handleExcelReport streams the downloadable multi-sheet workbook.
func (a *App) handleExcelReport(w http.ResponseWriter, r *http.Request) {
	d, err := a.sessions.Dataset()
	if err != nil {
		a.renderError(w, err)
		return
	}

	data, err := excel.NewReportWriter(d).Generate()
	if err != nil {
		a.renderError(w, errors.Wrap(err, "failed to generate Excel report"))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="full_defect_report.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("[handleExcelReport] Failed to stream report: %v", err)
	}
}

// handleMarkdownReport streams the markdown summary.
func (a *App) handleMarkdownReport(w http.ResponseWriter, r *http.Request) {
	d, err := a.sessions.Dataset()
	if err != nil {
		a.renderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := report.NewMarkdownWriter(w).Write(d); err != nil {
		log.Printf("[handleMarkdownReport] Failed to stream report: %v", err)
	}
}

// renderJSON writes a JSON response
func (a *App) renderJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[renderJSON] Failed to encode response: %v", err)
	}
}

// renderError maps the error taxonomy onto HTTP statuses. Data-quality
// anomalies never land here; they travel inside successful payloads.
func (a *App) renderError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeSchemaInvalid:
		status = http.StatusUnprocessableEntity
	case errors.CodeGeometryInvalid, errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}

	log.Printf("[renderError] %d: %v", status, err)
	a.renderJSON(w, status, map[string]interface{}{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}

func formInt(r *http.Request, field string) (int, bool) {
	v := r.FormValue(field)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func orAll(scope string) string {
	if scope == "" {
		return "All"
	}
	return scope
}
