package amenities

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

type amenitiesFixture struct {
	router  *chi.Mux
	service *Service
	tokens  *auth.TokenManager
}

func newAmenitiesRouter(t *testing.T) *amenitiesFixture {
	t.Helper()
	service := NewService(newMockRepository())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, service)

	tokens := auth.NewTokenManager(testSecret, "hbnb-api", time.Hour)
	mw := auth.NewMiddleware(logger, tokens, nil)

	r := chi.NewRouter()
	r.Route("/amenities", func(r chi.Router) {
		handler.MountRoutes(r, mw)
	})
	return &amenitiesFixture{router: r, service: service, tokens: tokens}
}

func (f *amenitiesFixture) bearer(t *testing.T, userID string, isAdmin bool) string {
	t.Helper()
	token, err := f.tokens.Issue(userID, isAdmin)
	require.NoError(t, err)
	return "Bearer " + token
}

func (f *amenitiesFixture) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
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

func TestCreateAmenityAdminOnly(t *testing.T) {
	f := newAmenitiesRouter(t)

	rec := f.do(t, http.MethodPost, "/amenities", "", `{"name":"WiFi"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodPost, "/amenities", f.bearer(t, "user-1", false), `{"name":"WiFi"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPost, "/amenities", f.bearer(t, "admin-1", true), `{"name":"WiFi"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Amenity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "WiFi", created.Name)
}

func TestCreateAmenityDuplicate(t *testing.T) {
	f := newAmenitiesRouter(t)
	admin := f.bearer(t, "admin-1", true)

	rec := f.do(t, http.MethodPost, "/amenities", admin, `{"name":"WiFi"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPost, "/amenities", admin, `{"name":"wifi"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"amenity already exists"}`, rec.Body.String())
}

func TestCreateAmenityNameTooLong(t *testing.T) {
	f := newAmenitiesRouter(t)

	long := strings.Repeat("x", 51)
	rec := f.do(t, http.MethodPost, "/amenities", f.bearer(t, "admin-1", true),
		`{"name":"`+long+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAmenityReadsArePublic(t *testing.T) {
	f := newAmenitiesRouter(t)
	a := seedAmenity(t, f.service, "Parking")

	rec := f.do(t, http.MethodGet, "/amenities", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []Amenity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)

	rec = f.do(t, http.MethodGet, "/amenities/"+a.ID, "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/amenities/missing-id", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAmenityNotFound(t *testing.T) {
	f := newAmenitiesRouter(t)

	rec := f.do(t, http.MethodDelete, "/amenities/missing-id", f.bearer(t, "admin-1", true), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
