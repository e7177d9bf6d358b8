package places

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbnb-stays/hbnb/internal/auth"
	_ "github.com/hbnb-stays/hbnb/testing"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type placesFixture struct {
	router *chi.Mux
	repo   *mockRepository
	tokens *auth.TokenManager
}

func newPlacesRouter(t *testing.T) *placesFixture {
	t.Helper()
	repo := newMockRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, NewService(repo))

	tokens := auth.NewTokenManager(testSecret, "hbnb-api", time.Hour)
	mw := auth.NewMiddleware(logger, tokens, nil)

	r := chi.NewRouter()
	r.Route("/places", func(r chi.Router) {
		handler.MountRoutes(r, mw)
	})
	return &placesFixture{router: r, repo: repo, tokens: tokens}
}

func (f *placesFixture) bearer(t *testing.T, userID string, isAdmin bool) string {
	t.Helper()
	token, err := f.tokens.Issue(userID, isAdmin)
	require.NoError(t, err)
	return "Bearer " + token
}

func (f *placesFixture) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestCreatePlaceRequiresAuth(t *testing.T) {
	f := newPlacesRouter(t)

	rec := f.do(t, http.MethodPost, "/places", "",
		`{"title":"Sea Cabin","price":120,"latitude":43.6,"longitude":7.1}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreatePlace(t *testing.T) {
	f := newPlacesRouter(t)
	f.repo.addOwner("owner-1")
	f.repo.addAmenity("am-1", "WiFi")

	rec := f.do(t, http.MethodPost, "/places", f.bearer(t, "owner-1", false),
		`{"title":"Sea Cabin","description":"Near the beach","price":120,"latitude":43.6,"longitude":7.1,"amenities":["am-1"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created PlaceDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Sea Cabin", created.Title)
	assert.Equal(t, "owner-1", created.OwnerID)
	require.Len(t, created.Amenities, 1)
	assert.Equal(t, "WiFi", created.Amenities[0].Name)
}

func TestCreatePlaceInvalidFields(t *testing.T) {
	f := newPlacesRouter(t)
	f.repo.addOwner("owner-1")
	token := f.bearer(t, "owner-1", false)

	cases := map[string]string{
		"missing title": `{"price":120,"latitude":0,"longitude":0}`,
		"zero price":    `{"title":"Cabin","price":0,"latitude":0,"longitude":0}`,
		"bad latitude":  `{"title":"Cabin","price":10,"latitude":91,"longitude":0}`,
		"bad longitude": `{"title":"Cabin","price":10,"latitude":0,"longitude":-181}`,
	}
	for name, body := range cases {
		rec := f.do(t, http.MethodPost, "/places", token, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}

func TestCreatePlaceDanglingAmenityReference(t *testing.T) {
	f := newPlacesRouter(t)
	f.repo.addOwner("owner-1")

	rec := f.do(t, http.MethodPost, "/places", f.bearer(t, "owner-1", false),
		`{"title":"Sea Cabin","price":120,"latitude":0,"longitude":0,"amenities":["am-ghost"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Amenity not found: am-ghost"}`, rec.Body.String())
}

func TestPlaceReadsArePublic(t *testing.T) {
	f := newPlacesRouter(t)
	f.repo.addOwner("owner-1")

	rec := f.do(t, http.MethodPost, "/places", f.bearer(t, "owner-1", false),
		`{"title":"Sea Cabin","price":120,"latitude":43.6,"longitude":7.1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created PlaceDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = f.do(t, http.MethodGet, "/places", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []Place
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)

	rec = f.do(t, http.MethodGet, "/places/"+created.ID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var detail PlaceDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "owner-1", detail.Owner.ID)

	rec = f.do(t, http.MethodGet, "/places/missing-id", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdatePlaceForbiddenForNonOwner(t *testing.T) {
	f := newPlacesRouter(t)
	f.repo.addOwner("owner-1")

	rec := f.do(t, http.MethodPost, "/places", f.bearer(t, "owner-1", false),
		`{"title":"Sea Cabin","price":120,"latitude":0,"longitude":0}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created PlaceDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = f.do(t, http.MethodPut, "/places/"+created.ID, f.bearer(t, "intruder", false),
		`{"title":"Hijacked"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized action"}`, rec.Body.String())
}

func TestDeletePlace(t *testing.T) {
	f := newPlacesRouter(t)
	f.repo.addOwner("owner-1")

	rec := f.do(t, http.MethodPost, "/places", f.bearer(t, "owner-1", false),
		`{"title":"Sea Cabin","price":120,"latitude":0,"longitude":0}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created PlaceDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = f.do(t, http.MethodDelete, "/places/"+created.ID, f.bearer(t, "owner-1", false), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/places/"+created.ID, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
