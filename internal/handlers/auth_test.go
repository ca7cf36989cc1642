package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BradenHooton/parliament/internal/models"
	"github.com/BradenHooton/parliament/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Login(t *testing.T) {
	legislatorID := int64(1)

	tests := []struct {
		name           string
		body           any
		loginErr       error
		expectedStatus int
		expectedError  string
		check          func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name:           "success",
			body:           LoginRequest{LoginName: "deputy1", Password: "Deputy123!"},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var result services.LoginResult
				AssertJSONResponse(t, w, http.StatusOK, &result)
				assert.Equal(t, "signed-token", result.Token)
				assert.Equal(t, "deputy1", result.Session.LoginName)
				assert.NotContains(t, w.Body.String(), "Deputy123!")
			},
		},
		{
			name:           "invalid credentials report attempts remaining",
			body:           LoginRequest{LoginName: "deputy1", Password: "wrong"},
			loginErr:       &models.InvalidCredentialsError{AttemptsRemaining: 3},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "invalid_credentials",
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Contains(t, w.Body.String(), `"attempts_remaining":3`)
			},
		},
		{
			name:           "locked out",
			body:           LoginRequest{LoginName: "deputy1", Password: "wrong"},
			loginErr:       &models.LockedOutError{RetryAfterSeconds: 60},
			expectedStatus: http.StatusTooManyRequests,
			expectedError:  "locked_out",
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, "60", w.Header().Get("Retry-After"))
				assert.Contains(t, w.Body.String(), `"retry_after_seconds":60`)
			},
		},
		{
			name:           "missing password",
			body:           map[string]string{"login_name": "deputy1"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "validation_error",
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Contains(t, w.Body.String(), `"field":"password"`)
			},
		},
		{
			name:           "unknown field",
			body:           map[string]string{"email": "a@b.c", "password": "x"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "bad_request",
		},
		{
			name:           "store failure",
			body:           LoginRequest{LoginName: "deputy1", Password: "Deputy123!"},
			loginErr:       models.ErrInternalServer,
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockAuthService{
				LoginFunc: func(ctx context.Context, loginName, secret string) (*services.LoginResult, error) {
					if tt.loginErr != nil {
						return nil, tt.loginErr
					}
					return &services.LoginResult{
						Token: "signed-token",
						Session: models.SessionDescriptor{
							LoginName:    loginName,
							Role:         models.RoleLegislator,
							LegislatorID: &legislatorID,
						},
					}, nil
				},
			}
			h := NewAuthHandler(svc, nil, nil)

			w := httptest.NewRecorder()
			h.Login(w, NewTestRequest(t, http.MethodPost, "/auth/login", tt.body))

			if tt.expectedError != "" {
				AssertErrorResponse(t, w, tt.expectedStatus, tt.expectedError)
			} else {
				assert.Equal(t, tt.expectedStatus, w.Code)
			}
			if tt.check != nil {
				tt.check(t, w)
			}
		})
	}
}

func TestAuthHandler_Login_EmptyBody(t *testing.T) {
	h := NewAuthHandler(&MockAuthService{}, nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(""))
	h.Login(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}

func TestAuthHandler_Logout(t *testing.T) {
	var loggedOut string
	h := NewAuthHandler(&MockAuthService{
		LogoutFunc: func(ctx context.Context, desc models.SessionDescriptor) error {
			loggedOut = desc.LoginName
			return nil
		},
	}, nil, nil)

	w := httptest.NewRecorder()
	req := WithSessionContext(NewTestRequest(t, http.MethodPost, "/auth/logout", nil), models.SessionDescriptor{LoginName: "deputy2"})
	h.Logout(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "deputy2", loggedOut)

	w = httptest.NewRecorder()
	h.Logout(w, NewTestRequest(t, http.MethodPost, "/auth/logout", nil))
	AssertErrorResponse(t, w, http.StatusUnauthorized, "unauthorized")
}
