package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"art-space/pkg/assets"
	"art-space/pkg/models"
	"art-space/pkg/resources"
	"art-space/pkg/services"
)

type testServer struct {
	mux      *http.ServeMux
	sessions *services.SessionService
	cookie   *http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithLocale(t, "en")
}

func newTestServerWithLocale(t *testing.T, defaultLocale string) *testServer {
	t.Helper()
	set, err := resources.Load()
	require.NoError(t, err)

	gallery := services.NewGalleryService(set, assets.NewLocalResolver("/public/images", ".jpg"), nil)
	sessions := services.NewSessionService(gallery.Len(), time.Minute, nil)
	h := New(gallery, sessions, "../../views", defaultLocale, nil)

	return &testServer{mux: h.Routes(t.TempDir()), sessions: sessions}
}

// do sends a request carrying the session cookie and remembers any new one
func (s *testServer) do(t *testing.T, method, target string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			s.cookie = c
		}
	}
	return rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) models.ArtworkView {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var view models.ArtworkView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	return view
}

func TestViewerAPIStartsOnFirstArtwork(t *testing.T) {
	s := newTestServer(t)

	view := decodeView(t, s.do(t, http.MethodGet, "/api/viewer", nil))
	assert.Equal(t, 0, view.Position)
	assert.Equal(t, 5, view.Total)
	assert.Equal(t, "The Mona Lisa", view.Artwork.Title)
	assert.Equal(t, "Leonardo da Vinci (1503)", view.Caption)
	assert.Equal(t, "/public/images/image_monalisa.jpg", view.ImageURL)
	require.NotNil(t, s.cookie)
	assert.Equal(t, 1, s.sessions.Count())
}

func TestViewerAPINavigation(t *testing.T) {
	s := newTestServer(t)

	view := decodeView(t, s.do(t, http.MethodPost, "/api/viewer/next", nil))
	assert.Equal(t, "Girl with a Pearl Earring", view.Artwork.Title)

	view = decodeView(t, s.do(t, http.MethodPost, "/api/viewer/previous", nil))
	assert.Equal(t, "The Mona Lisa", view.Artwork.Title)

	view = decodeView(t, s.do(t, http.MethodPost, "/api/viewer/previous", nil))
	assert.Equal(t, 4, view.Position)
	assert.Equal(t, "Arrangement in Grey and Black No. 1", view.Artwork.Title)

	// the same session was used throughout
	assert.Equal(t, 1, s.sessions.Count())
}

func TestFormNavigationRedirects(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/next", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = s.do(t, http.MethodPost, "/next?lang=nl", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?lang=nl", rec.Header().Get("Location"))

	view := decodeView(t, s.do(t, http.MethodGet, "/api/viewer", nil))
	assert.Equal(t, 2, view.Position)

	rec = s.do(t, http.MethodPost, "/previous", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	view = decodeView(t, s.do(t, http.MethodGet, "/api/viewer", nil))
	assert.Equal(t, 1, view.Position)
}

func TestCloseDiscardsSession(t *testing.T) {
	s := newTestServer(t)
	decodeView(t, s.do(t, http.MethodPost, "/api/viewer/next", nil))
	require.Equal(t, 1, s.sessions.Count())

	rec := s.do(t, http.MethodPost, "/close", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 0, s.sessions.Count())

	// a new screen starts over at the first artwork
	s.cookie = nil
	view := decodeView(t, s.do(t, http.MethodGet, "/api/viewer", nil))
	assert.Equal(t, 0, view.Position)
}

func TestExpiredSessionCookieOpensNewSession(t *testing.T) {
	s := newTestServer(t)
	s.cookie = &http.Cookie{Name: SessionCookie, Value: "does-not-exist"}

	view := decodeView(t, s.do(t, http.MethodGet, "/api/viewer", nil))
	assert.Equal(t, 0, view.Position)
	assert.NotEqual(t, "does-not-exist", s.cookie.Value)
}

func TestDeepLink(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/artworks/3", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	view := decodeView(t, s.do(t, http.MethodGet, "/api/viewer", nil))
	assert.Equal(t, 3, view.Position)
	assert.Equal(t, "The Kiss", view.Artwork.Title)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/artworks/5", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/artworks/abc", nil).Code)
}

func TestArtworksAPI(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/artworks", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var artworks []models.Artwork
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &artworks))
	require.Len(t, artworks, 5)
	assert.Equal(t, "The Starry Night", artworks[2].Title)
	assert.Equal(t, "Vincent van Gogh", artworks[2].Artist)
}

func TestArtworkAPI(t *testing.T) {
	s := newTestServer(t)

	view := decodeView(t, s.do(t, http.MethodGet, "/api/artworks/4", nil))
	assert.Equal(t, "James McNeill Whistler (1871)", view.Caption)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/artworks/-1", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/artworks/9", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/artworks/x", nil).Code)
}

func TestLocaleSelection(t *testing.T) {
	s := newTestServer(t)

	view := decodeView(t, s.do(t, http.MethodGet, "/api/artworks/0?lang=nl", nil))
	assert.Equal(t, "De Mona Lisa", view.Artwork.Title)
	assert.Equal(t, "nl", view.Locale)

	view = decodeView(t, s.do(t, http.MethodGet, "/api/artworks/0", map[string]string{"Accept-Language": "nl-BE,nl;q=0.9"}))
	assert.Equal(t, "nl", view.Locale)

	view = decodeView(t, s.do(t, http.MethodGet, "/api/artworks/0", map[string]string{"Accept-Language": "ja"}))
	assert.Equal(t, "en", view.Locale)
}

func TestLocaleFallsBackToConfiguredDefault(t *testing.T) {
	s := newTestServerWithLocale(t, "nl")

	view := decodeView(t, s.do(t, http.MethodGet, "/api/artworks/0", nil))
	assert.Equal(t, "nl", view.Locale)

	view = decodeView(t, s.do(t, http.MethodGet, "/api/artworks/0", map[string]string{"Accept-Language": "fr-FR"}))
	assert.Equal(t, "nl", view.Locale)
	assert.Equal(t, "De Mona Lisa", view.Artwork.Title)

	view = decodeView(t, s.do(t, http.MethodGet, "/api/artworks/0?lang=xx", nil))
	assert.Equal(t, "nl", view.Locale)

	view = decodeView(t, s.do(t, http.MethodGet, "/api/artworks/0", map[string]string{"Accept-Language": "en-US,en;q=0.9"}))
	assert.Equal(t, "en", view.Locale)
}

func TestViewerPage(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, `<html lang="en">`)
	assert.Contains(t, body, "The Mona Lisa")
	assert.Contains(t, body, "Leonardo da Vinci (1503)")
	assert.Contains(t, body, `alt="The Mona Lisa"`)
	assert.Contains(t, body, `src="/public/images/image_monalisa.jpg"`)
	assert.Contains(t, body, "Previous")
	assert.Contains(t, body, "Next")
	assert.Contains(t, body, `action="/next"`)
	assert.Contains(t, body, `action="/previous"`)

	s.do(t, http.MethodPost, "/next", nil)
	rec = s.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Girl with a Pearl Earring")
}

func TestViewerPageLocalized(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/?lang=nl", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := rec.Body.String()
	assert.Contains(t, body, `<html lang="nl">`)
	assert.Contains(t, body, "De Mona Lisa")
	assert.Contains(t, body, "Vorige")
	assert.Contains(t, body, "Volgende")
}

func TestCatalogPage(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/artworks", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := rec.Body.String()
	for i, title := range []string{
		"The Mona Lisa",
		"Girl with a Pearl Earring",
		"The Starry Night",
		"The Kiss",
		"Arrangement in Grey and Black No. 1",
	} {
		assert.Contains(t, body, title)
		assert.Contains(t, body, fmt.Sprintf(`href="/artworks/%d"`, i))
	}
	assert.Contains(t, body, "Gustav Klimt (1908)")
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusMethodNotAllowed, s.do(t, http.MethodGet, "/next", nil).Code)
}
