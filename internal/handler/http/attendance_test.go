package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/staffhub-dev/timeclock-backend-go/internal/domain/attendance"
	"github.com/staffhub-dev/timeclock-backend-go/internal/domain/auth"
	"github.com/staffhub-dev/timeclock-backend-go/internal/domain/user"
	"github.com/staffhub-dev/timeclock-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAttendanceService returns canned values so the tests exercise routing,
// auth middleware and error mapping only.
type stubAttendanceService struct {
	checkInErr error
	today      attendance.TodayResponse
	live       attendance.LiveStatusResponse
	list       attendance.ListAttendanceResponse
}

func (s *stubAttendanceService) CheckIn(ctx context.Context) (attendance.CheckInResponse, error) {
	if s.checkInErr != nil {
		return attendance.CheckInResponse{}, s.checkInErr
	}
	return attendance.CheckInResponse{CheckInTime: time.Now()}, nil
}

func (s *stubAttendanceService) CheckOut(ctx context.Context) (attendance.CheckOutResponse, error) {
	return attendance.CheckOutResponse{}, nil
}

func (s *stubAttendanceService) BreakStart(ctx context.Context) (attendance.BreakStartResponse, error) {
	return attendance.BreakStartResponse{}, nil
}

func (s *stubAttendanceService) BreakEnd(ctx context.Context) (attendance.BreakEndResponse, error) {
	return attendance.BreakEndResponse{}, nil
}

func (s *stubAttendanceService) GetToday(ctx context.Context) (attendance.TodayResponse, error) {
	return s.today, nil
}

func (s *stubAttendanceService) GetLiveStatus(ctx context.Context) (attendance.LiveStatusResponse, error) {
	return s.live, nil
}

func (s *stubAttendanceService) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) ([]attendance.AttendanceResponse, error) {
	return []attendance.AttendanceResponse{}, nil
}

func (s *stubAttendanceService) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return s.list, nil
}

type stubAuthService struct{}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	return auth.LoginResponse{}, auth.ErrInvalidCredentials
}

func (s *stubAuthService) Refresh(ctx context.Context, req auth.RefreshTokenRequest) (auth.TokenResponse, error) {
	return auth.TokenResponse{}, auth.ErrInvalidToken
}

func (s *stubAuthService) Logout(ctx context.Context, req auth.RefreshTokenRequest) error {
	return nil
}

func newTestRouter(t *testing.T, svc attendance.AttendanceService) (http.Handler, jwt.Service) {
	t.Helper()
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	authHandler := NewAuthHandler(jwtService, &stubAuthService{})
	attendanceHandler := NewAttendanceHandler(svc)
	router := NewRouter(jwtService, authHandler, attendanceHandler, []string{"http://localhost:3000"})
	return router, jwtService
}

func accessTokenFor(t *testing.T, jwtService jwt.Service, userID string, role user.Role) string {
	t.Helper()
	token, _, err := jwtService.GenerateAccessToken(userID, userID+"@example.com", role)
	require.NoError(t, err)
	return token
}

func jsonBody(s string) *strings.Reader {
	return strings.NewReader(s)
}

func doRequest(router http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAttendanceRoutesRequireAuth(t *testing.T) {
	router, _ := newTestRouter(t, &stubAttendanceService{})

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/attendance/check-in"},
		{http.MethodPost, "/api/v1/attendance/check-out"},
		{http.MethodPost, "/api/v1/attendance/break-start"},
		{http.MethodPost, "/api/v1/attendance/break-end"},
		{http.MethodGet, "/api/v1/attendance/today"},
		{http.MethodGet, "/api/v1/attendance/my"},
		{http.MethodGet, "/api/v1/attendance"},
		{http.MethodGet, "/api/v1/attendance/live-status"},
	} {
		rec := doRequest(router, tc.method, tc.path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestAttendanceRoutesRejectRefreshToken(t *testing.T) {
	router, jwtService := newTestRouter(t, &stubAttendanceService{})

	refreshToken, _, err := jwtService.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	rec := doRequest(router, http.MethodGet, "/api/v1/attendance/today", refreshToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestManagementRoutesForbiddenForEmployee(t *testing.T) {
	router, jwtService := newTestRouter(t, &stubAttendanceService{})
	token := accessTokenFor(t, jwtService, "user-1", user.RoleEmployee)

	for _, path := range []string{"/api/v1/attendance", "/api/v1/attendance/live-status"} {
		rec := doRequest(router, http.MethodGet, path, token)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}
}

func TestManagementRoutesAllowedForManagement(t *testing.T) {
	router, jwtService := newTestRouter(t, &stubAttendanceService{})

	for _, role := range []user.Role{user.RoleAdmin, user.RoleHR, user.RoleManager} {
		token := accessTokenFor(t, jwtService, "boss-1", role)
		rec := doRequest(router, http.MethodGet, "/api/v1/attendance/live-status", token)
		assert.Equal(t, http.StatusOK, rec.Code, string(role))
	}
}

func TestCheckInConflictResponse(t *testing.T) {
	router, jwtService := newTestRouter(t, &stubAttendanceService{checkInErr: attendance.ErrAlreadyCheckedIn})
	token := accessTokenFor(t, jwtService, "user-1", user.RoleEmployee)

	rec := doRequest(router, http.MethodPost, "/api/v1/attendance/check-in", token)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "CONFLICT", body.Error.Code)
}

func TestCheckInCreatedResponse(t *testing.T) {
	router, jwtService := newTestRouter(t, &stubAttendanceService{})
	token := accessTokenFor(t, jwtService, "user-1", user.RoleEmployee)

	rec := doRequest(router, http.MethodPost, "/api/v1/attendance/check-in", token)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
}

func TestMyAttendanceRejectsBadDateFilter(t *testing.T) {
	router, jwtService := newTestRouter(t, &stubAttendanceService{})
	token := accessTokenFor(t, jwtService, "user-1", user.RoleEmployee)

	rec := doRequest(router, http.MethodGet, "/api/v1/attendance/my?start_date=02-06-2025", token)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLoginInvalidCredentialsResponse(t *testing.T) {
	router, _ := newTestRouter(t, &stubAttendanceService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", jsonBody(`{"email":"a@b.com","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
