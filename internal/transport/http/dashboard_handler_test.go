package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apierrors "github.com/junlife-hub/house-analysis/internal/errors"
	"github.com/junlife-hub/house-analysis/internal/services"
	"github.com/junlife-hub/house-analysis/pkg/contracts/domain"
)

// MockDashboardService is a mock implementation of DashboardServiceInterface
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) MegaView(ctx context.Context, mode string) (*domain.MegaView, error) {
	args := m.Called(mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MegaView), args.Error(1)
}

func (m *MockDashboardService) DetailView(ctx context.Context, mode string, area int) (*domain.DetailView, error) {
	args := m.Called(mode, area)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DetailView), args.Error(1)
}

func (m *MockDashboardService) Refresh(ctx context.Context) {
	m.Called()
}

func (m *MockDashboardService) CacheStats() map[string]interface{} {
	args := m.Called()
	return args.Get(0).(map[string]interface{})
}

func newTestHandler(mockService *MockDashboardService) *DashboardHandler {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	errorHandler := apierrors.NewErrorHandler(logger)
	return NewDashboardHandler(mockService, logger, errorHandler)
}

func TestDashboardHandler_GetMega(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockDashboardService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful mega view",
			url:  "/api/dashboard/mega",
			setupMock: func(m *MockDashboardService) {
				view := &domain.MegaView{
					Meta: domain.DatasetMeta{Mode: services.ModeLocalLive, TotalRows: 2},
					Recent: []domain.GroupedRecord{
						{GroupName: "헬리오시티"},
						{GroupName: "파크리오"},
					},
				}
				m.On("MegaView", "").Return(view, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"success"`,
		},
		{
			name: "explicit mode forwarded",
			url:  "/api/dashboard/mega?mode=all-local",
			setupMock: func(m *MockDashboardService) {
				view := &domain.MegaView{Meta: domain.DatasetMeta{Mode: services.ModeAllLocal}}
				m.On("MegaView", "all-local").Return(view, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"mode":"all-local"`,
		},
		{
			name: "unknown mode",
			url:  "/api/dashboard/mega?mode=remote-only",
			setupMock: func(m *MockDashboardService) {
				m.On("MegaView", "remote-only").Return(nil, services.ErrUnknownMode)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"VALIDATION_FAILED"`,
		},
		{
			name: "empty dataset",
			url:  "/api/dashboard/mega",
			setupMock: func(m *MockDashboardService) {
				m.On("MegaView", "").Return(nil, services.ErrEmptyDataset)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"EMPTY_DATASET"`,
		},
		{
			name: "internal error",
			url:  "/api/dashboard/mega",
			setupMock: func(m *MockDashboardService) {
				m.On("MegaView", "").Return(nil, errors.New("disk error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"INTERNAL_SERVER_ERROR"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockDashboardService)
			tt.setupMock(mockService)
			handler := newTestHandler(mockService)

			req := httptest.NewRequest("GET", tt.url, nil)
			rec := httptest.NewRecorder()

			handler.GetMega(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}

func TestDashboardHandler_GetDetail(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockDashboardService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "default area is 49",
			url:  "/api/dashboard/detail",
			setupMock: func(m *MockDashboardService) {
				view := &domain.DetailView{Complex: "태강", AreaRequested: 49, AreaUsed: 49}
				m.On("DetailView", "", 49).Return(view, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"area_used":49`,
		},
		{
			name: "explicit area 59",
			url:  "/api/dashboard/detail?area=59",
			setupMock: func(m *MockDashboardService) {
				view := &domain.DetailView{Complex: "태강", AreaRequested: 59, AreaUsed: 60, AreaFallback: true}
				m.On("DetailView", "", 59).Return(view, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"area_fallback":true`,
		},
		{
			name:           "non-numeric area",
			url:            "/api/dashboard/detail?area=big",
			setupMock:      func(m *MockDashboardService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"VALIDATION_FAILED"`,
		},
		{
			name: "unsupported area bucket",
			url:  "/api/dashboard/detail?area=84",
			setupMock: func(m *MockDashboardService) {
				m.On("DetailView", "", 84).Return(nil, services.ErrInvalidArea)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"VALIDATION_FAILED"`,
		},
		{
			name: "empty dataset",
			url:  "/api/dashboard/detail?area=49",
			setupMock: func(m *MockDashboardService) {
				m.On("DetailView", "", 49).Return(nil, services.ErrEmptyDataset)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"EMPTY_DATASET"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockDashboardService)
			tt.setupMock(mockService)
			handler := newTestHandler(mockService)

			req := httptest.NewRequest("GET", tt.url, nil)
			rec := httptest.NewRecorder()

			handler.GetDetail(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}

func TestDashboardHandler_Refresh(t *testing.T) {
	mockService := new(MockDashboardService)
	mockService.On("Refresh").Return()
	handler := newTestHandler(mockService)

	req := httptest.NewRequest("POST", "/api/dashboard/refresh", nil)
	rec := httptest.NewRecorder()

	handler.Refresh(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cache cleared")
	mockService.AssertExpectations(t)
}

func TestDashboardHandler_Routes(t *testing.T) {
	mockService := new(MockDashboardService)
	view := &domain.MegaView{Meta: domain.DatasetMeta{Mode: services.ModeLocalLive}}
	mockService.On("MegaView", "").Return(view, nil)
	handler := newTestHandler(mockService)

	srv := httptest.NewServer(handler.Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/mega")
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
	mockService.AssertExpectations(t)
}
