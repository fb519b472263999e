package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dias221467/tagwish/internal/hub"
	"github.com/Dias221467/tagwish/internal/models"
	"github.com/Dias221467/tagwish/internal/repository"
	"github.com/Dias221467/tagwish/internal/services"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type stubVerifier struct {
	analysis *models.ImageAnalysis
	result   models.VerificationResult
	advice   string
}

func (v *stubVerifier) AnalyzeImage(context.Context, []byte) *models.ImageAnalysis {
	return v.analysis
}

func (v *stubVerifier) VerifyAuthenticity(context.Context, string, []byte) models.VerificationResult {
	return v.result
}

func (v *stubVerifier) PriceGuidance(context.Context, string, float64) string {
	return v.advice
}

type testApp struct {
	store  *repository.WishStore
	events *hub.Hub
	router *mux.Router
}

func newTestApp(t *testing.T, verifier *stubVerifier) *testApp {
	t.Helper()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := repository.NewWishStore(repository.SeedWishes(now), repository.SeedUser(),
		repository.WithClock(func() time.Time { return now }))
	events := hub.New(0)

	router := mux.NewRouter()
	RegisterRoutes(router,
		NewWishHandler(services.NewWishService(store, verifier, events), 1<<20),
		NewUserHandler(services.NewUserService(store)),
		NewChatHandler(services.NewChatService(store, events), events, []string{"http://localhost:3000"}),
	)
	return &testApp{store: store, events: events, router: router}
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) upload(t *testing.T, path string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decode(t, rec, &body)
	return body["error"]
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, &stubVerifier{})
	rec := app.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
