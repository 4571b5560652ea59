package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/vytor/ergolog/internal/errors"
	"github.com/vytor/ergolog/internal/logger"
)

func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") || strings.Contains(r.Header.Get("Accept"), "application/json")
}

// handleError centralizes error handling for HTTP responses
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.NewInternalError(err)
	}

	switch {
	case appErr.Status >= 500:
		log.Error("server error: %v", appErr)
	case appErr.Status >= 400:
		log.Warn("client error: %v", appErr)
	default:
		log.Debug("error: %v", appErr)
	}

	if wantsJSON(r) {
		writeJSON(w, appErr.Status, map[string]any{
			"error": map[string]any{
				"code":    appErr.Code,
				"message": appErr.Message,
				"field":   appErr.Field,
			},
		})
		return
	}

	s.renderStatus(w, r, appErr.Status, "pages/error.html", pageData{
		"title":   http.StatusText(appErr.Status),
		"status":  appErr.Status,
		"message": appErr.Message,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
