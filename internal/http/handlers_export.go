package http

import (
	"log/slog"
	"net/http"

	"carlog/internal/export"
)

// handleExport streams the full ledger as a downloadable JSON backup.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	snap, err := s.ledger.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load ledger for export", "error", err)
		http.Error(w, "failed to load ledger", http.StatusInternalServerError)
		return
	}

	now := s.now()
	doc := export.Build(snap, now)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(now)+`"`)
	if err := export.Write(w, doc); err != nil {
		// Headers are gone at this point, just log it.
		slog.ErrorContext(r.Context(), "Failed to write export document", "error", err)
	}
}
