package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DarkFrame_Go/internal/domain"
	"github.com/osse101/DarkFrame_Go/internal/handler"
	"github.com/osse101/DarkFrame_Go/internal/harvest"
)

type MockHarvestService struct {
	mock.Mock
}

func (m *MockHarvestService) Harvest(ctx context.Context, req harvest.Request) (*domain.HarvestResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HarvestResult), args.Error(1)
}

func (m *MockHarvestService) Window(x int) domain.WindowStatus {
	args := m.Called(x)
	return args.Get(0).(domain.WindowStatus)
}

func TestHarvestHandler_Harvest(t *testing.T) {
	handler.InitValidator()

	closes := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	window := domain.ResetWindow{
		ID:       "2024-03-01T00-AM",
		Tag:      domain.BucketMorning,
		OpensAt:  closes.Add(-domain.BucketLength),
		ClosesAt: closes,
	}
	validReq := harvest.Request{PlayerID: "p1", X: 10, Y: 20, Resource: domain.ResourceMetal}

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockHarvestService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Success",
			body: `{"player_id":"p1","x":10,"y":20,"resource":"metal"}`,
			setupMock: func(m *MockHarvestService) {
				m.On("Harvest", mock.Anything, validReq).Return(&domain.HarvestResult{
					Resource:     domain.ResourceMetal,
					BaseYield:    1000,
					AmountGained: 1100,
					Window:       window,
					NextResetAt:  closes,
					Message:      "Harvested 1,100 Metal",
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Resource Is Case Insensitive",
			body: `{"player_id":"p1","x":10,"y":20,"resource":"METAL"}`,
			setupMock: func(m *MockHarvestService) {
				m.On("Harvest", mock.Anything, validReq).Return(&domain.HarvestResult{Resource: domain.ResourceMetal}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Already Harvested",
			body: `{"player_id":"p1","x":10,"y":20,"resource":"metal"}`,
			setupMock: func(m *MockHarvestService) {
				m.On("Harvest", mock.Anything, validReq).Return(nil, domain.ErrAlreadyHarvested)
			},
			expectedStatus: http.StatusConflict,
			expectedError:  handler.ErrMsgAlreadyHarvestedError,
		},
		{
			name: "Out Of Bounds",
			body: `{"player_id":"p1","x":10,"y":20,"resource":"metal"}`,
			setupMock: func(m *MockHarvestService) {
				m.On("Harvest", mock.Anything, validReq).
					Return(nil, fmt.Errorf("%w: (10, 20)", domain.ErrInvalidCoordinates))
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  handler.ErrMsgOutOfBoundsError,
		},
		{
			name: "Player Not Found",
			body: `{"player_id":"p1","x":10,"y":20,"resource":"metal"}`,
			setupMock: func(m *MockHarvestService) {
				m.On("Harvest", mock.Anything, validReq).Return(nil, domain.ErrPlayerNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  handler.ErrMsgPlayerNotFoundError,
		},
		{
			name: "Internal Error Is Not Leaked",
			body: `{"player_id":"p1","x":10,"y":20,"resource":"metal"}`,
			setupMock: func(m *MockHarvestService) {
				m.On("Harvest", mock.Anything, validReq).
					Return(nil, errors.New("pq: relation harvest_records does not exist"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  handler.ErrMsgGenericServerError,
		},
		{
			name:           "Invalid JSON",
			body:           `{"player_id":`,
			setupMock:      func(m *MockHarvestService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  handler.ErrMsgInvalidRequest,
		},
		{
			name:           "Unknown Resource",
			body:           `{"player_id":"p1","x":10,"y":20,"resource":"gold"}`,
			setupMock:      func(m *MockHarvestService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  handler.ErrMsgInvalidRequestSummary,
		},
		{
			name:           "Missing Coordinates",
			body:           `{"player_id":"p1","resource":"energy"}`,
			setupMock:      func(m *MockHarvestService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  handler.ErrMsgInvalidRequestSummary,
		},
		{
			name:           "Negative Coordinate",
			body:           `{"player_id":"p1","x":-1,"y":0,"resource":"energy"}`,
			setupMock:      func(m *MockHarvestService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  handler.ErrMsgInvalidRequestSummary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockHarvestService{}
			tt.setupMock(mockSvc)
			h := handler.NewHarvestHandler(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/harvest", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			h.Harvest(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				var resp handler.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp.Error)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHarvestHandler_Harvest_ValidationFields(t *testing.T) {
	handler.InitValidator()
	h := handler.NewHarvestHandler(&MockHarvestService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/harvest",
		bytes.NewBufferString(`{"x":1,"y":1,"resource":"gold"}`))
	w := httptest.NewRecorder()
	h.Harvest(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp handler.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "This field is required", resp.Fields["player_id"])
	assert.Equal(t, "Unknown resource kind", resp.Fields["resource"])
}

func TestHarvestHandler_Window(t *testing.T) {
	status := domain.WindowStatus{
		Window: domain.ResetWindow{
			ID:  "2024-03-01T00-PM",
			Tag: domain.BucketEvening,
		},
		TimeUntilReset: "3h0m0s",
		ResetInSeconds: 10800,
	}

	t.Run("valid column", func(t *testing.T) {
		mockSvc := &MockHarvestService{}
		mockSvc.On("Window", 70).Return(status)
		h := handler.NewHarvestHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/harvest/window?x=70", nil)
		w := httptest.NewRecorder()
		h.Window(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var got domain.WindowStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, status.Window.ID, got.Window.ID)
		assert.Equal(t, "3h0m0s", got.TimeUntilReset)
		mockSvc.AssertExpectations(t)
	})

	for _, query := range []string{"", "?x=abc", "?x=-3"} {
		t.Run("rejects "+query, func(t *testing.T) {
			mockSvc := &MockHarvestService{}
			h := handler.NewHarvestHandler(mockSvc)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/harvest/window"+query, nil)
			w := httptest.NewRecorder()
			h.Window(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mockSvc.AssertNotCalled(t, "Window", mock.Anything)
		})
	}
}
