package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	route, method string
	status        int
}

type recorder struct{ samples []sample }

func (r *recorder) ObserveRequest(route, method string, status int, _ time.Duration) {
	r.samples = append(r.samples, sample{route, method, status})
}

func TestLoggerReportsRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	obs := &recorder{}

	router := chi.NewRouter()
	router.Use(RequestID)
	router.Use(Logger(zerolog.New(&buf), obs))
	router.Get("/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/projects/17", nil)
	req.Header.Set("X-Request-ID", "rid-1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Len(t, obs.samples, 1)
	assert.Equal(t, sample{"/projects/{id}", http.MethodGet, http.StatusTeapot}, obs.samples[0])
	assert.Equal(t, "rid-1", rr.Header().Get("X-Request-ID"))
	assert.Contains(t, buf.String(), `"request_id":"rid-1"`)
	assert.Contains(t, buf.String(), "GET /projects/17 418")
}
