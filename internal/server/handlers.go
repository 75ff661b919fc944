package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const pageTitle = "Markdown to PDF Converter"

type pageData struct {
	Title       string
	Flash       *flashMessage
	DownloadURL string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, pageData{Flash: getFlash(r.Context())})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	logger := s.logger.With("request_id", middleware.GetReqID(r.Context()))

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			redirectWithFlash(w, r, msgTooLarge)
			return
		}
		redirectWithFlash(w, r, msgNoFile)
		return
	}
	defer func() { _ = file.Close() }()

	src, err := saveUpload(s.uploadDir, file, header)
	switch {
	case errors.Is(err, errNoFile):
		redirectWithFlash(w, r, msgNoFile)
		return
	case errors.Is(err, errInvalidType):
		logger.Info("rejected upload", "filename", header.Filename)
		redirectWithFlash(w, r, msgInvalidType)
		return
	case err != nil:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			redirectWithFlash(w, r, msgTooLarge)
			return
		}
		logger.Error("saving upload failed", "filename", header.Filename, "error", err)
		redirectWithFlash(w, r, msgFailed)
		return
	}

	result, err := s.conv.Convert(r.Context(), src, s.stylesheet)
	if err != nil {
		logger.Error("conversion failed", "source", filepath.Base(src), "error", err)
		redirectWithFlash(w, r, msgFailed)
		return
	}

	logger.Info("converted",
		"source", filepath.Base(src),
		"pages", result.Pages,
		"bytes", result.Bytes,
		"duration", result.Duration,
	)

	s.render(w, r, pageData{
		Flash:       &flashMessage{Category: flashSuccess, Message: msgConverted},
		DownloadURL: "/uploads/" + url.PathEscape(filepath.Base(result.OutputPath)),
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !validStoredName(name) || !strings.EqualFold(filepath.Ext(name), ".pdf") {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(s.uploadDir, name)
	// #nosec G304 -- name is a single validated path element
	f, err := os.Open(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": displayName(name)}))
	http.ServeContent(w, r, name, info.ModTime(), f)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, data pageData) {
	data.Title = pageTitle
	if data.Flash != nil {
		prefix := "Error"
		if data.Flash.Category == flashSuccess {
			prefix = "Success"
		}
		data.Title = prefix + " | " + pageTitle
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		s.logger.Error("rendering page failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
