package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DarkFrame_Go/internal/domain"
	"github.com/osse101/DarkFrame_Go/internal/harvest"
	"github.com/osse101/DarkFrame_Go/internal/scheduler"
	"github.com/osse101/DarkFrame_Go/internal/worker"
)

type stubPool struct{ err error }

func (p stubPool) Ping(ctx context.Context) error { return p.err }
func (p stubPool) Close()                         {}

type mockHarvestService struct {
	mock.Mock
}

func (m *mockHarvestService) Harvest(ctx context.Context, req harvest.Request) (*domain.HarvestResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HarvestResult), args.Error(1)
}

func (m *mockHarvestService) Window(x int) domain.WindowStatus {
	return m.Called(x).Get(0).(domain.WindowStatus)
}

type noopTask struct{}

func (noopTask) Name() string { return "noop" }
func (noopTask) Run(ctx context.Context) (worker.TickResult, error) {
	return worker.TickResult{}, nil
}

const testAPIKey = "admin-key"

func newTestServer(t *testing.T, svc *mockHarvestService) http.Handler {
	t.Helper()
	sched := scheduler.New()
	_, err := sched.Register(noopTask{}, time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sched.Shutdown(context.Background()) })

	return NewServer(0, testAPIKey, nil, stubPool{}, svc, sched).Handler()
}

func TestServer_Routes(t *testing.T) {
	svc := &mockHarvestService{}
	svc.On("Harvest", mock.Anything, harvest.Request{PlayerID: "p", X: 1, Y: 2, Resource: domain.ResourceEnergy}).
		Return(nil, domain.ErrAlreadyHarvested)
	svc.On("Window", 5).Return(domain.WindowStatus{TimeUntilReset: "1h0m0s"})
	h := newTestServer(t, svc)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		apiKey string
		want   int
	}{
		{"liveness", http.MethodGet, "/healthz", "", "", http.StatusOK},
		{"readiness", http.MethodGet, "/readyz", "", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", "", http.StatusOK},
		{"harvest conflict", http.MethodPost, "/api/v1/harvest", `{"player_id":"p","x":1,"y":2,"resource":"energy"}`, "", http.StatusConflict},
		{"window", http.MethodGet, "/api/v1/harvest/window?x=5", "", "", http.StatusOK},
		{"list jobs is public", http.MethodGet, "/api/v1/jobs", "", "", http.StatusOK},
		{"get job", http.MethodGet, "/api/v1/jobs/noop", "", "", http.StatusOK},
		{"admin without key", http.MethodPost, "/api/v1/admin/jobs/noop/run", "", "", http.StatusUnauthorized},
		{"admin with wrong key", http.MethodPost, "/api/v1/admin/jobs/noop/run", "", "nope", http.StatusUnauthorized},
		{"admin run", http.MethodPost, "/api/v1/admin/jobs/noop/run", "", testAPIKey, http.StatusOK},
		{"admin unknown job", http.MethodPost, "/api/v1/admin/jobs/ghost/stop", "", testAPIKey, http.StatusNotFound},
		{"wrong method", http.MethodGet, "/api/v1/harvest", "", "", http.StatusMethodNotAllowed},
		{"unknown route", http.MethodGet, "/api/v2/anything", "", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.apiKey != "" {
				req.Header.Set(HeaderAPIKey, tt.apiKey)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
		})
	}
}

func TestServer_ReadinessFailsWithoutDatabase(t *testing.T) {
	sched := scheduler.New()
	h := NewServer(0, testAPIKey, nil, stubPool{err: assert.AnError}, &mockHarvestService{}, sched).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_StopBeforeStart(t *testing.T) {
	srv := NewServer(0, testAPIKey, nil, stubPool{}, &mockHarvestService{}, scheduler.New())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, srv.Stop(ctx))
	assert.ErrorIs(t, srv.Start(), http.ErrServerClosed)
}
