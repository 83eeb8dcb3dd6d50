package api

import (
	"net/http"
	"time"

	"smartroute/internal/buildinfo"
)

// DebugJSON reports the build stamp and the effective configuration.
func (s *Server) DebugJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"build":  buildinfo.Info(),
		"time":   s.now().UTC().Format(time.RFC3339),
		"config": s.Config.Public(),
	})
}
