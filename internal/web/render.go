package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"

	"github.com/hpungsan/blogdex/internal/errors"
	"github.com/hpungsan/blogdex/internal/post"
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title   string
	Version string
}

// ListPageData is the template data for the post list page.
type ListPageData struct {
	PageData
	Posts []post.Post
}

// PostPageData is the template data for a single post.
type PostPageData struct {
	PageData
	Post         post.Post
	RenderedHTML template.HTML
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates map[string]*template.Template
	markdown  goldmark.Markdown
	version   string
	log       *zap.Logger
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version string, log *zap.Logger) *Renderer {
	funcMap := template.FuncMap{
		"formatDate": post.FormatDate,
	}

	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	pages := map[string]string{
		"list":  "list.html",
		"post":  "post.html",
		"error": "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		markdown:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
		version:   version,
		log:       log,
	}
}

// renderPage renders a named page template with the given data and HTTP 200 status.
func (r *Renderer) renderPage(w http.ResponseWriter, name string, data any) {
	r.renderPageStatus(w, http.StatusOK, name, data)
}

// renderPageStatus renders a named page template with the given data and HTTP status code.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, status int, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		r.log.Error("template not found", zap.String("template", name))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		r.log.Error("template execution failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders an error as JSON or as the error page, depending on Accept.
func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, err error) {
	bErr := r.logError(req, err)

	if strings.Contains(req.Header.Get("Accept"), "application/json") {
		writeError(w, bErr)
		return
	}

	r.renderPageStatus(w, bErr.Status, "error", ErrorPageData{
		PageData: PageData{
			Title:   fmt.Sprintf("Error %d", bErr.Status),
			Version: r.version,
		},
		StatusCode: bErr.Status,
		Message:    bErr.Message,
	})
}

// renderJSONError always renders err as a JSON error body. Used by the API routes.
func (r *Renderer) renderJSONError(w http.ResponseWriter, req *http.Request, err error) {
	writeError(w, r.logError(req, err))
}

// logError converts err to a BlogError and logs the internal cause of 5xx responses.
func (r *Renderer) logError(req *http.Request, err error) *errors.BlogError {
	bErr := errors.As(err)
	if bErr.Status >= http.StatusInternalServerError {
		r.log.Error("request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Any("details", bErr.Details),
		)
	}
	return bErr
}

// writeError writes the structured JSON error body.
func writeError(w http.ResponseWriter, bErr *errors.BlogError) {
	renderJSON(w, bErr.Status, map[string]any{
		"error": map[string]any{
			"code":    string(bErr.Code),
			"message": bErr.Message,
			"status":  bErr.Status,
		},
	})
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderMarkdown converts markdown text to HTML. On failure the escaped source is returned.
func (r *Renderer) renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(md), &buf); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(md) + "</pre>")
	}
	return template.HTML(buf.String())
}
