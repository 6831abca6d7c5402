package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/eknkc/pug"
	"go.uber.org/zap"

	"art-space/pkg/catalog"
	"art-space/pkg/resources"
	"art-space/pkg/services"
)

// SessionCookie is the cookie naming the viewer session of a browser
const SessionCookie = "artspace_session"

// Handlers serves the web viewer and its JSON API
type Handlers struct {
	gallery       *services.GalleryService
	sessions      *services.SessionService
	viewsDir      string
	defaultLocale string
	logger        *zap.Logger
}

// New creates the HTTP handlers
func New(gallery *services.GalleryService, sessions *services.SessionService, viewsDir, defaultLocale string, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	// pug refuses template paths that start with ".."
	if abs, err := filepath.Abs(viewsDir); err == nil {
		viewsDir = abs
	}
	return &Handlers{
		gallery:       gallery,
		sessions:      sessions,
		viewsDir:      viewsDir,
		defaultLocale: defaultLocale,
		logger:        logger,
	}
}

// Routes registers every route on a new mux. Static files are served from publicDir under /public/.
func (h *Handlers) Routes(publicDir string) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.ViewerHandler)
	mux.HandleFunc("POST /next", h.NextHandler)
	mux.HandleFunc("POST /previous", h.PreviousHandler)
	mux.HandleFunc("POST /close", h.CloseHandler)
	mux.HandleFunc("GET /artworks", h.CatalogHandler)
	mux.HandleFunc("GET /artworks/{position}", h.DeepLinkHandler)

	mux.HandleFunc("GET /api/artworks", h.ArtworksAPIHandler)
	mux.HandleFunc("GET /api/artworks/{position}", h.ArtworkAPIHandler)
	mux.HandleFunc("GET /api/viewer", h.ViewerAPIHandler)
	mux.HandleFunc("POST /api/viewer/next", h.ViewerNextAPIHandler)
	mux.HandleFunc("POST /api/viewer/previous", h.ViewerPreviousAPIHandler)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("GET /public/", http.StripPrefix("/public/", http.FileServer(http.Dir(publicDir))))

	return mux
}

// ViewerHandler renders the artwork at the session's position
func (h *Handlers) ViewerHandler(w http.ResponseWriter, r *http.Request) {
	id := h.session(w, r)
	pos, err := h.sessions.Position(id)
	if err != nil {
		h.serverError(w, "Session lookup failed", err)
		return
	}

	view, err := h.gallery.View(r.Context(), h.bundle(r), pos)
	if err != nil {
		h.serverError(w, "View failed", err)
		return
	}

	h.logger.Debug("Generating Viewer Page", zap.String("session", id), zap.Int("position", pos))
	h.render(w, "viewer.pug", view)
}

// NextHandler advances the session and redirects back to the viewer
func (h *Handlers) NextHandler(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.sessions.Next)
}

// PreviousHandler moves the session back and redirects back to the viewer
func (h *Handlers) PreviousHandler(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.sessions.Previous)
}

// CloseHandler discards the session
func (h *Handlers) CloseHandler(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if err := h.sessions.Close(c.Value); err != nil && !errors.Is(err, services.ErrSessionNotFound) {
			h.logger.Warn("Close session failed", zap.Error(err))
		}
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, h.viewerURL(r), http.StatusSeeOther)
}

// CatalogHandler renders the list of every artwork
func (h *Handlers) CatalogHandler(w http.ResponseWriter, r *http.Request) {
	page, err := h.gallery.CatalogPage(r.Context(), h.bundle(r))
	if err != nil {
		h.serverError(w, "Catalog failed", err)
		return
	}

	h.logger.Debug("Generating Catalog Page")
	h.render(w, "catalog.pug", page)
}

// DeepLinkHandler opens the viewer on a given position
func (h *Handlers) DeepLinkHandler(w http.ResponseWriter, r *http.Request) {
	pos, ok := h.position(w, r)
	if !ok {
		return
	}

	id := h.session(w, r)
	if _, err := h.sessions.Set(id, pos); err != nil {
		h.serverError(w, "Session update failed", err)
		return
	}
	http.Redirect(w, r, h.viewerURL(r), http.StatusSeeOther)
}

// ArtworksAPIHandler returns every artwork as JSON
func (h *Handlers) ArtworksAPIHandler(w http.ResponseWriter, r *http.Request) {
	artworks, err := h.gallery.Artworks(h.bundle(r))
	if err != nil {
		h.serverError(w, "Artworks failed", err)
		return
	}
	h.writeJSON(w, artworks)
}

// ArtworkAPIHandler returns one artwork view as JSON
func (h *Handlers) ArtworkAPIHandler(w http.ResponseWriter, r *http.Request) {
	pos, ok := h.position(w, r)
	if !ok {
		return
	}

	view, err := h.gallery.View(r.Context(), h.bundle(r), pos)
	if err != nil {
		h.serverError(w, "View failed", err)
		return
	}
	h.writeJSON(w, view)
}

// ViewerAPIHandler returns the session's current view as JSON
func (h *Handlers) ViewerAPIHandler(w http.ResponseWriter, r *http.Request) {
	id := h.session(w, r)
	pos, err := h.sessions.Position(id)
	if err != nil {
		h.serverError(w, "Session lookup failed", err)
		return
	}
	h.writeView(w, r, pos)
}

// ViewerNextAPIHandler advances the session and returns the new view
func (h *Handlers) ViewerNextAPIHandler(w http.ResponseWriter, r *http.Request) {
	h.transitionJSON(w, r, h.sessions.Next)
}

// ViewerPreviousAPIHandler moves the session back and returns the new view
func (h *Handlers) ViewerPreviousAPIHandler(w http.ResponseWriter, r *http.Request) {
	h.transitionJSON(w, r, h.sessions.Previous)
}

func (h *Handlers) transition(w http.ResponseWriter, r *http.Request, step func(string) (int, error)) {
	id := h.session(w, r)
	pos, err := step(id)
	if err != nil {
		h.serverError(w, "Transition failed", err)
		return
	}
	h.logger.Debug("Position changed", zap.String("session", id), zap.Int("position", pos))
	http.Redirect(w, r, h.viewerURL(r), http.StatusSeeOther)
}

func (h *Handlers) transitionJSON(w http.ResponseWriter, r *http.Request, step func(string) (int, error)) {
	id := h.session(w, r)
	pos, err := step(id)
	if err != nil {
		h.serverError(w, "Transition failed", err)
		return
	}
	h.writeView(w, r, pos)
}

func (h *Handlers) writeView(w http.ResponseWriter, r *http.Request, pos int) {
	view, err := h.gallery.View(r.Context(), h.bundle(r), pos)
	if err != nil {
		h.serverError(w, "View failed", err)
		return
	}
	h.writeJSON(w, view)
}

// session returns the id of the request's live session, opening one when needed
func (h *Handlers) session(w http.ResponseWriter, r *http.Request) string {
	var current string
	if c, err := r.Cookie(SessionCookie); err == nil {
		current = c.Value
	}

	id, opened := h.sessions.Ensure(current)
	if opened {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return id
}

// position parses the {position} path value, writing 400 or 404 on failure
func (h *Handlers) position(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.PathValue("position")
	pos, err := strconv.Atoi(raw)
	if err != nil {
		http.Error(w, "Invalid position", http.StatusBadRequest)
		return 0, false
	}
	if pos < 0 || pos >= h.gallery.Len() {
		h.logger.Debug("Artwork not found", zap.Int("position", pos))
		http.NotFound(w, r)
		return 0, false
	}
	return pos, true
}

// bundle picks the strings for a request: ?lang=, then Accept-Language, then the configured default
func (h *Handlers) bundle(r *http.Request) *resources.Bundle {
	return h.gallery.Bundles().Pick(r.FormValue("lang"), r.Header.Get("Accept-Language"), h.defaultLocale)
}

func (h *Handlers) viewerURL(r *http.Request) string {
	lang := r.FormValue("lang")
	if lang == "" {
		return "/"
	}
	return "/?" + url.Values{"lang": {lang}}.Encode()
}

func (h *Handlers) render(w http.ResponseWriter, name string, data any) {
	template, err := pug.CompileFile(filepath.Join(h.viewsDir, name), pug.Options{})
	if err != nil {
		h.serverError(w, "Template error", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := template.Execute(w, data); err != nil {
		h.logger.Error("Template execution error", zap.String("template", name), zap.Error(err))
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.serverError(w, "Encode failed", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(data); err != nil {
		h.logger.Debug("Write failed", zap.Error(err))
	}
}

func (h *Handlers) serverError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, zap.Error(err))
	status := http.StatusInternalServerError
	if errors.Is(err, catalog.ErrPositionOutOfRange) {
		status = http.StatusNotFound
	}
	http.Error(w, http.StatusText(status), status)
}
