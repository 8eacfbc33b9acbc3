package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/focus-api/internal/api/shared"
	"github.com/phrazzld/focus-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "thisisasecretkeythatis32charslong!!"

type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateToken(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *mockJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*auth.Claims)
	return claims, args.Error(1)
}

func protectedHandler(t *testing.T, gotUser *int64) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserID(r)
		require.True(t, ok)
		*gotUser = id
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_ValidToken(t *testing.T) {
	t.Parallel()

	now := time.Now()
	svc := auth.NewTestJWTService(testSecret, "", time.Hour, func() time.Time { return now })
	token, err := svc.GenerateToken(context.Background(), 17)
	require.NoError(t, err)

	var gotUser int64
	handler := NewAuthMiddleware(svc).Authenticate(protectedHandler(t, &gotUser))

	r := httptest.NewRequest(http.MethodGet, "/api/focus", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(17), gotUser)
}

func TestAuthenticate_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		header     string
		validErr   error
		wantStatus int
		wantMsg    string
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantMsg: "Authorization header required"},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantMsg: "Invalid authorization format"},
		{name: "no token", header: "Bearer", wantStatus: http.StatusUnauthorized, wantMsg: "Invalid authorization format"},
		{name: "expired", header: "Bearer tok", validErr: auth.ErrExpiredToken, wantStatus: http.StatusUnauthorized, wantMsg: "Token expired"},
		{name: "invalid", header: "Bearer tok", validErr: auth.ErrInvalidToken, wantStatus: http.StatusUnauthorized, wantMsg: "Invalid token"},
		{name: "bad subject", header: "Bearer tok", validErr: auth.ErrInvalidSubject, wantStatus: http.StatusUnauthorized, wantMsg: "Invalid token"},
		{name: "unexpected", header: "Bearer tok", validErr: errors.New("key store down"), wantStatus: http.StatusInternalServerError, wantMsg: "Authentication error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &mockJWTService{}
			if tt.validErr != nil {
				svc.On("ValidateToken", mock.Anything, "tok").Return(nil, tt.validErr)
			}

			called := false
			handler := NewAuthMiddleware(svc).Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			r := httptest.NewRequest(http.MethodGet, "/api/focus", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			assert.False(t, called)
			assert.Equal(t, tt.wantStatus, w.Code)

			var body shared.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tt.wantMsg, body.Error)
			svc.AssertExpectations(t)
		})
	}
}
