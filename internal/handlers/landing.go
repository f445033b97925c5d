package handlers

import (
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"github.com/alphapie/pieview/internal/common"
	"github.com/alphapie/pieview/internal/config"
	"github.com/alphapie/pieview/internal/loader"
)

// PageHandler serves HTML pages rendered with Go templates.
type PageHandler struct {
	logger    *common.Logger
	loader    *loader.Loader
	templates *template.Template
}

// NewPageHandler creates a new page handler that loads templates from the
// pages directory. Formatting of returns and prices happens in template
// funcs so the view-model stays plain numbers.
func NewPageHandler(logger *common.Logger, l *loader.Loader) *PageHandler {
	pagesDir := FindPagesDir()

	funcs := template.FuncMap{
		"signedPct":  common.FormatSignedPct,
		"signedPct1": common.FormatSignedPct1,
		"pct1":       common.FormatPct1,
		"money":      common.FormatMoney,
	}
	templates := template.Must(template.New("").Funcs(funcs).ParseGlob(filepath.Join(pagesDir, "*.html")))

	return &PageHandler{
		logger:    logger,
		loader:    l,
		templates: templates,
	}
}

// FindPagesDir locates the pages directory.
func FindPagesDir() string {
	dirs := []string{
		"./pages",
		"../pages",
		"../../pages",
		".",
	}

	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			abs, _ := filepath.Abs(dir)
			return abs
		}
	}

	return "."
}

// Landing handles GET /. Loads the portfolio view-model and renders the
// landing page; a failed load renders the error page instead of partial
// figures.
func (h *PageHandler) Landing(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	perf, err := h.loader.Load(r.Context())
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("failed to load portfolio data")
		}
		h.renderError(w, "Unable to load portfolio data. Please try again shortly.")
		return
	}

	data := map[string]interface{}{
		"Performance": perf,
		"Version":     config.GetVersion(),
	}

	if err := h.templates.ExecuteTemplate(w, "landing.html", data); err != nil {
		if h.logger != nil {
			h.logger.Error().Str("template", "landing.html").Str("error", err.Error()).Msg("failed to render page")
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *PageHandler) renderError(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusServiceUnavailable)
	data := map[string]interface{}{
		"Message": message,
	}
	if err := h.templates.ExecuteTemplate(w, "error.html", data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// StaticFileHandler serves static files (CSS, JS, images).
func (h *PageHandler) StaticFileHandler(w http.ResponseWriter, r *http.Request) {
	pagesDir := FindPagesDir()
	staticDir := filepath.Join(pagesDir, "static")

	// Remove /static/ prefix from URL path
	path := r.URL.Path[len("/static/"):]
	fullPath := filepath.Join(staticDir, path)

	// Security: prevent directory traversal
	absStaticDir, _ := filepath.Abs(staticDir)
	absFullPath, _ := filepath.Abs(fullPath)
	if len(absFullPath) < len(absStaticDir) || absFullPath[:len(absStaticDir)] != absStaticDir {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, fullPath)
}
