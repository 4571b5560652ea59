package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vytor/ergolog/internal/errors"
	"github.com/vytor/ergolog/internal/logger"
	"github.com/vytor/ergolog/internal/services"
)

const defaultMaxUploadBytes = 32 << 20

// handleImport accepts pasted export JSON or one or more uploaded export
// files. A single file is imported inline; several are queued.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	limit := s.MaxUploadBytes
	if limit <= 0 {
		limit = defaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		if err := r.ParseForm(); err != nil {
			s.handleError(w, r, errors.NewBadRequestError("upload too large or malformed"))
			return
		}
	}

	if pasted := strings.TrimSpace(r.PostFormValue("json")); pasted != "" {
		workout, err := s.Imports.ImportJSON(ctx, []byte(pasted))
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		s.imported(w, r, workout.ID)
		return
	}

	files, err := readUploads(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	switch len(files) {
	case 0:
		s.handleError(w, r, errors.NewBadRequestError("no file uploaded"))
	case 1:
		workout, err := s.Imports.ImportFile(ctx, files[0].Name, files[0].Data)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		s.imported(w, r, workout.ID)
	default:
		queued, err := s.Imports.QueueFiles(ctx, files)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		log.Info("import request queued %d of %d files", queued, len(files))
		if wantsJSON(r) {
			writeJSON(w, http.StatusAccepted, map[string]int{"queued": queued})
			return
		}
		s.renderStatus(w, r, http.StatusAccepted, "pages/import.html", pageData{
			"title":  "Import queued",
			"queued": queued,
			"files":  files,
		})
	}
}

func (s *Server) imported(w http.ResponseWriter, r *http.Request, id int64) {
	if wantsJSON(r) {
		writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/workouts/%d", id), http.StatusSeeOther)
}

func readUploads(r *http.Request) ([]services.UploadedFile, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File["files"]
	files := make([]services.UploadedFile, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			return nil, errors.NewBadRequestError("cannot open upload " + h.Filename)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, errors.NewBadRequestError("cannot read upload " + h.Filename)
		}
		files = append(files, services.UploadedFile{Name: h.Filename, Data: data})
	}
	return files, nil
}
