package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"devevents/internal/delivery/http/controllers"
	"devevents/internal/domain"
	"devevents/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// stubService answers every call with an empty result or ErrNotFound.
type stubService struct {
	created domain.EventFields
}

func (s *stubService) CreateEvent(ctx context.Context, fields domain.EventFields) (*domain.Event, error) {
	s.created = fields
	e := domain.NewEvent(fields, time.Now(), time.Now())
	e.ID = "0190b6a1-7c2e-7d3f-9a4b-5c6d7e8f9a0b"
	return e, nil
}

func (s *stubService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	return []*domain.Event{}, nil
}

func (s *stubService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	return nil, domain.ErrNotFound
}

func (s *stubService) UpdateEvent(ctx context.Context, id string, fields domain.EventFields) error {
	return domain.ErrNotFound
}

func (s *stubService) DeleteEvent(ctx context.Context, id string) error { return nil }

func (s *stubService) AddSpeaker(ctx context.Context, eventID string, fields domain.SpeakerFields) (*domain.Speaker, error) {
	return nil, domain.ErrNotFound
}

func (s *stubService) ImportSessionizeSpeakers(ctx context.Context, eventID, sessionizeID string) ([]*domain.Speaker, error) {
	return []*domain.Speaker{}, nil
}

type okPinger struct{}

func (okPinger) PingContext(ctx context.Context) error { return nil }

func newTestRouter(t *testing.T) (http.Handler, *stubService) {
	t.Helper()
	reg := prometheus.NewRegistry()
	svc := &stubService{}
	return NewRouter(RouterConfig{
		Logger:           testLogger,
		EventController:  controllers.NewEventController(testLogger, svc),
		HealthController: controllers.NewHealthController(testLogger, okPinger{}, time.Second),
		Metrics:          metrics.NewWithRegistry(reg),
		Gatherer:         reg,
		AllowedOrigins:   []string{"http://localhost:3000"},
	}), svc
}

func TestNewRouter_Routes(t *testing.T) {
	const id = "0190b6a1-7c2e-7d3f-9a4b-5c6d7e8f9a0b"
	router, _ := newTestRouter(t)

	tests := []struct {
		method     string
		target     string
		body       string
		wantStatus int
	}{
		{http.MethodGet, "/api/dev-events", "", http.StatusOK},
		{http.MethodPost, "/api/dev-events", `{"description":"x"}`, http.StatusCreated},
		{http.MethodGet, "/api/dev-events/" + id, "", http.StatusNotFound},
		{http.MethodGet, "/api/dev-events/not-a-uuid", "", http.StatusBadRequest},
		{http.MethodPut, "/api/dev-events/" + id, `{}`, http.StatusNotFound},
		{http.MethodDelete, "/api/dev-events/" + id, "", http.StatusNoContent},
		{http.MethodPost, "/api/dev-events/" + id + "/speakers", `{"name":"Ana"}`, http.StatusNotFound},
		{http.MethodPost, "/api/dev-events/" + id + "/speakers/import/sessionize/abc", "", http.StatusCreated},
		{http.MethodPatch, "/api/dev-events/" + id, `{}`, http.StatusMethodNotAllowed},
		{http.MethodGet, "/health", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.target, body))
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestNewRouter_CreateSetsLocation(t *testing.T) {
	router, svc := newTestRouter(t)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/dev-events", strings.NewReader(`{"title":"DevConf","description":"Annual"}`))
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/api/dev-events/0190b6a1-7c2e-7d3f-9a4b-5c6d7e8f9a0b", rr.Header().Get("Location"))
	require.NotNil(t, svc.created.Title)
	assert.Equal(t, "DevConf", *svc.created.Title)
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/dev-events", nil))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `http_requests_total{method="GET",path="GET /api/dev-events",status_code="200"} 1`)
}
