package web

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/hpungsan/blogdex/internal/auth"
	"github.com/hpungsan/blogdex/internal/config"
	"github.com/hpungsan/blogdex/internal/errors"
	"github.com/hpungsan/blogdex/internal/index"
	"github.com/hpungsan/blogdex/internal/post"
)

// maxBodyBytes bounds JSON request bodies on the API routes.
const maxBodyBytes = 1 << 20

// Handlers contains HTTP route handlers for the site and its API.
type Handlers struct {
	cfg      *config.Config
	authn    *auth.Authenticator
	renderer *Renderer
	log      *zap.Logger
}

type userKey struct{}

// userFrom returns the user set by requireAuth.
func userFrom(ctx context.Context) (*auth.User, bool) {
	u, ok := ctx.Value(userKey{}).(*auth.User)
	return u, ok
}

// HandleList handles GET / (exact): the post list, newest first.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.loadPosts()
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "list", ListPageData{
		PageData: PageData{
			Title:   "Blog",
			Version: h.renderer.version,
		},
		Posts: posts,
	})
}

// HandlePost handles GET /posts/{slug}: one post rendered to HTML.
func (h *Handlers) HandlePost(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("slug is required"))
		return
	}

	posts, err := h.loadPosts()
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	p, err := index.FindBySlug(posts, slug)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	md, err := index.ReadMarkdown(h.cfg.ContentRoot, p)
	if err != nil {
		// The manifest names this file, so a missing source is a server-side problem.
		if errors.Is(err, errors.ErrNotFound) {
			err = errors.NewInternal(err)
		}
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "post", PostPageData{
		PageData: PageData{
			Title:   p.Title,
			Version: h.renderer.version,
		},
		Post:         p,
		RenderedHTML: h.renderer.renderMarkdown(md),
	})
}

// loadPosts reads the manifest. A manifest that has not been generated yet reads as empty.
func (h *Handlers) loadPosts() ([]post.Post, error) {
	path := h.cfg.ResolvedOutputPath()
	posts, err := index.Load(path)
	if errors.Is(err, errors.ErrNotFound) {
		h.log.Warn("blog index not generated yet", zap.String("path", path))
		return []post.Post{}, nil
	}
	return posts, err
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin handles POST /auth/login.
func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.renderer.renderJSONError(w, r, err)
		return
	}

	out, err := h.authn.Login(req.Username, req.Password)
	if err != nil {
		h.renderer.renderJSONError(w, r, err)
		return
	}

	h.log.Info("login succeeded", zap.String("username", out.User.Username))
	renderJSON(w, http.StatusOK, out)
}

type helloRequest struct {
	Text string `json:"text"`
}

// HandleHello handles POST /api/hello. Requires a valid token.
func (h *Handlers) HandleHello(w http.ResponseWriter, r *http.Request) {
	var req helloRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.renderer.renderJSONError(w, r, err)
		return
	}

	message := "..."
	if strings.ToLower(req.Text) == "hello server" {
		message = "Hello World"
	}

	if u, ok := userFrom(r.Context()); ok {
		h.log.Debug("hello", zap.String("username", u.Username), zap.String("reply", message))
	}
	renderJSON(w, http.StatusOK, map[string]string{"message": message})
}

// requireAuth rejects requests without a valid bearer token.
func (h *Handlers) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.authn.Authenticate(r.Header.Get("Authorization"))
		if err != nil {
			h.renderer.renderJSONError(w, r, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userKey{}, user)))
	}
}

// decodeBody decodes a JSON request body into v. An empty body leaves v zero.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !stderrors.Is(err, io.EOF) {
		return errors.NewInvalidRequest("invalid JSON body")
	}
	return nil
}
