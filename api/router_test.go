package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Drolfothesgnir/mfm/cache"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPing(t *testing.T) {
	service := newTestService(t, cache.NopStore{})

	request, err := http.NewRequest(http.MethodGet, PingURL, nil)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	service.router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "pong", recorder.Body.String())
}

func TestRequestID(t *testing.T) {
	service := newTestService(t, cache.NopStore{})

	testCases := []struct {
		name  string
		given string
		check func(t *testing.T, got string)
	}{
		{
			name:  "Generated",
			given: "",
			check: func(t *testing.T, got string) {
				_, err := uuid.Parse(got)
				require.NoError(t, err)
			},
		},
		{
			name:  "Kept",
			given: "7c4f3b2e-5d4a-4c1b-9e8f-0a1b2c3d4e5f",
			check: func(t *testing.T, got string) {
				require.Equal(t, "7c4f3b2e-5d4a-4c1b-9e8f-0a1b2c3d4e5f", got)
			},
		},
		{
			name:  "Replaced",
			given: "not a uuid",
			check: func(t *testing.T, got string) {
				require.NotEqual(t, "not a uuid", got)
				_, err := uuid.Parse(got)
				require.NoError(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			request, err := http.NewRequest(http.MethodGet, PingURL, nil)
			require.NoError(t, err)
			if tc.given != "" {
				request.Header.Set(RequestIDHeader, tc.given)
			}

			recorder := httptest.NewRecorder()
			service.router.ServeHTTP(recorder, request)
			tc.check(t, recorder.Header().Get(RequestIDHeader))
		})
	}
}

func TestCORS(t *testing.T) {
	testCases := []struct {
		name       string
		allowed    []string
		origin     string
		method     string
		wantOrigin string
		wantCode   int
	}{
		{
			name:       "AllowedOrigin",
			allowed:    []string{"http://localhost:3000"},
			origin:     "http://localhost:3000",
			method:     http.MethodGet,
			wantOrigin: "http://localhost:3000",
			wantCode:   http.StatusOK,
		},
		{
			name:       "ForeignOrigin",
			allowed:    []string{"http://localhost:3000"},
			origin:     "http://evil.example",
			method:     http.MethodGet,
			wantOrigin: "",
			wantCode:   http.StatusOK,
		},
		{
			name:       "Wildcard",
			allowed:    []string{"*"},
			origin:     "http://anything.example",
			method:     http.MethodGet,
			wantOrigin: "*",
			wantCode:   http.StatusOK,
		},
		{
			name:       "Preflight",
			allowed:    []string{"http://localhost:3000"},
			origin:     "http://localhost:3000",
			method:     http.MethodOptions,
			wantOrigin: "http://localhost:3000",
			wantCode:   http.StatusNoContent,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := testConfig
			config.AllowedOrigins = tc.allowed

			service, err := NewService(config, cache.NopStore{})
			require.NoError(t, err)

			request, err := http.NewRequest(tc.method, PingURL, nil)
			require.NoError(t, err)
			request.Header.Set("Origin", tc.origin)

			recorder := httptest.NewRecorder()
			service.router.ServeHTTP(recorder, request)

			require.Equal(t, tc.wantCode, recorder.Code)
			require.Equal(t, tc.wantOrigin, recorder.Header().Get("Access-Control-Allow-Origin"))
			require.True(t, strings.Contains(recorder.Header().Get("Access-Control-Allow-Headers"), RequestIDHeader))
		})
	}
}

func TestBodyLimit(t *testing.T) {
	service := newTestService(t, cache.NopStore{})

	body := `{"text":"` + strings.Repeat("a", MaxRequestBodySize) + `"}`
	request, err := http.NewRequest(http.MethodPost, MFMParseURL, strings.NewReader(body))
	require.NoError(t, err)
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	service.router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestNewService_InvalidConfig(t *testing.T) {
	config := testConfig
	config.MaxInputLength = 0

	_, err := NewService(config, cache.NopStore{})
	require.Error(t, err)
}
