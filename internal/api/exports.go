package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/nerrad567/steelframe-core/internal/export"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// report assembles the export input from the current design. The title is
// ?name=, falling back to the configured default.
func (s *Server) report(r *http.Request) export.Report {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = s.expCfg.DefaultName
	}
	cfg := s.store.Snapshot()
	return export.Report{
		Name:      name,
		Config:    cfg,
		Scene:     s.builder.BuildAll(cfg),
		Generated: time.Now(),
	}
}

// handleScheduleJSON returns the member schedule and its totals.
func (s *Server) handleScheduleJSON(w http.ResponseWriter, r *http.Request) {
	rep := s.report(r)
	rows := export.Schedule(rep.Scene.Primitives)
	writeJSON(w, http.StatusOK, map[string]any{
		"rows":   rows,
		"totals": export.Totals(rows),
	})
}

func (s *Server) handleScheduleXLSX(w http.ResponseWriter, r *http.Request) {
	rep := s.report(r)
	s.writeFile(w, rep.Name, ".xlsx", contentTypeXLSX, func(out io.Writer) error {
		return export.WriteSchedule(out, rep)
	})
}

func (s *Server) handleSummaryPDF(w http.ResponseWriter, r *http.Request) {
	rep := s.report(r)
	s.writeFile(w, rep.Name, ".pdf", contentTypePDF, func(out io.Writer) error {
		return export.WriteSummary(out, rep)
	})
}

// writeFile renders into memory first so a failure still gets a JSON error.
func (s *Server) writeFile(w http.ResponseWriter, name, ext, contentType string, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		s.writeDomainError(w, err, "render "+ext[1:])
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename(name)+ext))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Best-effort write to response; connection may be closed
	buf.WriteTo(w)
}

func filename(name string) string {
	f := unsafeFilename.ReplaceAllString(name, "-")
	if f == "" || f == "-" {
		return "design"
	}
	return f
}
