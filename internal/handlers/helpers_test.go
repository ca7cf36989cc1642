package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BradenHooton/parliament/internal/auth"
	"github.com/BradenHooton/parliament/internal/models"
	"github.com/BradenHooton/parliament/internal/services"
	"github.com/BradenHooton/parliament/internal/stats"
	pkghttp "github.com/BradenHooton/parliament/pkg/http"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithSessionContext places a session descriptor on the request as AuthMiddleware would
func WithSessionContext(req *http.Request, desc models.SessionDescriptor) *http.Request {
	return req.WithContext(auth.WithSession(req.Context(), desc))
}

// WithURLParams routes chi URL parameters without a router
func WithURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// AssertJSONResponse checks that response has correct status and decodes JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	if target != nil {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks that response is a valid error response and returns it
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) pkghttp.ErrorResponse {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "Failed to decode error response")
	assert.Equal(t, expectedError, resp.Error, "Error code mismatch")
	assert.NotEmpty(t, resp.Message, "Error message should not be empty")
	return resp
}

// MockAuthService implements AuthServiceInterface for testing
type MockAuthService struct {
	LoginFunc  func(ctx context.Context, loginName, secret string) (*services.LoginResult, error)
	LogoutFunc func(ctx context.Context, desc models.SessionDescriptor) error
}

func (m *MockAuthService) Login(ctx context.Context, loginName, secret string) (*services.LoginResult, error) {
	if m.LoginFunc == nil {
		return nil, &models.InvalidCredentialsError{AttemptsRemaining: 4}
	}
	return m.LoginFunc(ctx, loginName, secret)
}

func (m *MockAuthService) Logout(ctx context.Context, desc models.SessionDescriptor) error {
	if m.LogoutFunc == nil {
		return nil
	}
	return m.LogoutFunc(ctx, desc)
}

// MockAccountService implements AccountService for testing
type MockAccountService struct {
	ListAccountsFunc   func(ctx context.Context) ([]models.AccountView, error)
	ProvisionFunc      func(ctx context.Context, legislatorID int64, loginName, secret string) (*services.ProvisionResult, error)
	RotatePasswordFunc func(ctx context.Context, loginName, secret string) (*models.AccountView, error)
	RevokeFunc         func(ctx context.Context, loginName string) error
}

func (m *MockAccountService) ListAccounts(ctx context.Context) ([]models.AccountView, error) {
	if m.ListAccountsFunc == nil {
		return []models.AccountView{}, nil
	}
	return m.ListAccountsFunc(ctx)
}

func (m *MockAccountService) Provision(ctx context.Context, legislatorID int64, loginName, secret string) (*services.ProvisionResult, error) {
	if m.ProvisionFunc == nil {
		return nil, models.ErrInternalServer
	}
	return m.ProvisionFunc(ctx, legislatorID, loginName, secret)
}

func (m *MockAccountService) RotatePassword(ctx context.Context, loginName, secret string) (*models.AccountView, error) {
	if m.RotatePasswordFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.RotatePasswordFunc(ctx, loginName, secret)
}

func (m *MockAccountService) Revoke(ctx context.Context, loginName string) error {
	if m.RevokeFunc == nil {
		return nil
	}
	return m.RevokeFunc(ctx, loginName)
}

// MockSessionService implements SessionService for testing
type MockSessionService struct {
	ListSessionsFunc     func(ctx context.Context, filter services.SessionFilter) ([]*models.Session, error)
	GetSessionFunc       func(ctx context.Context, id int64) (*models.Session, error)
	CreateSessionFunc    func(ctx context.Context, session *models.Session) (*models.Session, error)
	UpdateSessionFunc    func(ctx context.Context, id int64, changes *models.Session) (*models.Session, error)
	DeleteSessionFunc    func(ctx context.Context, id int64) error
	RecordAttendanceFunc func(ctx context.Context, id int64, attendeeIDs []int64) (*models.Session, error)
}

func (m *MockSessionService) ListSessions(ctx context.Context, filter services.SessionFilter) ([]*models.Session, error) {
	if m.ListSessionsFunc == nil {
		return []*models.Session{}, nil
	}
	return m.ListSessionsFunc(ctx, filter)
}

func (m *MockSessionService) GetSession(ctx context.Context, id int64) (*models.Session, error) {
	if m.GetSessionFunc == nil {
		return nil, models.NewNotFound("session", id)
	}
	return m.GetSessionFunc(ctx, id)
}

func (m *MockSessionService) CreateSession(ctx context.Context, session *models.Session) (*models.Session, error) {
	if m.CreateSessionFunc == nil {
		return nil, models.ErrInternalServer
	}
	return m.CreateSessionFunc(ctx, session)
}

func (m *MockSessionService) UpdateSession(ctx context.Context, id int64, changes *models.Session) (*models.Session, error) {
	if m.UpdateSessionFunc == nil {
		return nil, models.NewNotFound("session", id)
	}
	return m.UpdateSessionFunc(ctx, id, changes)
}

func (m *MockSessionService) DeleteSession(ctx context.Context, id int64) error {
	if m.DeleteSessionFunc == nil {
		return nil
	}
	return m.DeleteSessionFunc(ctx, id)
}

func (m *MockSessionService) RecordAttendance(ctx context.Context, id int64, attendeeIDs []int64) (*models.Session, error) {
	if m.RecordAttendanceFunc == nil {
		return nil, models.NewNotFound("session", id)
	}
	return m.RecordAttendanceFunc(ctx, id, attendeeIDs)
}

// MockStatsService implements StatsService and AttendanceReporter for testing
type MockStatsService struct {
	SummaryFunc              func(ctx context.Context) (*stats.Summary, error)
	LegislatorAttendanceFunc func(ctx context.Context, legislatorID int64) (*stats.AttendanceRecord, error)
}

func (m *MockStatsService) Summary(ctx context.Context) (*stats.Summary, error) {
	if m.SummaryFunc == nil {
		return &stats.Summary{}, nil
	}
	return m.SummaryFunc(ctx)
}

func (m *MockStatsService) LegislatorAttendance(ctx context.Context, legislatorID int64) (*stats.AttendanceRecord, error) {
	if m.LegislatorAttendanceFunc == nil {
		return nil, models.NewNotFound("legislator", legislatorID)
	}
	return m.LegislatorAttendanceFunc(ctx, legislatorID)
}
