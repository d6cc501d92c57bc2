package api

import (
	"net/http"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/technosupport/site-safety/internal/platform/paths"
)

var (
	// Dashboard pages shipped in the templates directory
	uiPages = map[string]struct{}{
		"dashboard":         {},
		"employee_config":   {},
		"camera_management": {},
		"camera_dashboard":  {},
		"notifications":     {},
		"model_management":  {},
		"model_mapping":     {},
		"settings":          {},
		"profile":           {},
	}

	playbackFileRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+\.(mp4|m4s|m3u8)$`)
)

// PageHandler serves the dashboard pages, static assets and recorded playback clips.
type PageHandler struct {
	TemplatesDir string
	StaticDir    string
	PlaybackDir  string
}

func NewPageHandler(webRoot string) *PageHandler {
	static := filepath.Join(webRoot, "static")
	return &PageHandler{
		TemplatesDir: filepath.Join(webRoot, "templates"),
		StaticDir:    static,
		PlaybackDir:  filepath.Join(static, "playback"),
	}
}

// GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard.html", http.StatusFound)
}

// GET /{page}.html
func (h *PageHandler) Page(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(chi.URLParam(r, "page"), ".html")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, known := uiPages[name]; !known {
		http.NotFound(w, r)
		return
	}

	target, err := paths.SafeJoin(h.TemplatesDir, name+".html")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeFile(w, r, target)
}

// Static returns a file server for /static/*. Directory listings are not exposed.
func (h *PageHandler) Static() http.Handler {
	fs := http.StripPrefix("/static/", http.FileServer(http.Dir(h.StaticDir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/static/" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fs.ServeHTTP(w, r)
	})
}

// GET /playback/*
func (h *PageHandler) Playback(w http.ResponseWriter, r *http.Request) {
	rel := chi.URLParam(r, "*")
	if !playbackFileRegex.MatchString(path.Base(rel)) {
		http.Error(w, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	target, err := paths.SafeJoin(h.PlaybackDir, strings.Split(rel, "/")...)
	if err != nil {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	switch path.Ext(rel) {
	case ".mp4":
		w.Header().Set("Content-Type", "video/mp4")
	case ".m4s":
		w.Header().Set("Content-Type", "video/iso.segment")
	case ".m3u8":
		w.Header().Set("Content-Type", "application/vnd.apple.mpegurl")
	}
	w.Header().Set("Cache-Control", "private, max-age=3600")

	http.ServeFile(w, r, target)
}
