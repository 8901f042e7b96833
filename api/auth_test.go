package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vertexcare/clinicbook/internal/domain"
)

// MockSessionAuthority is a mock implementation of auth.SessionAuthority
type MockSessionAuthority struct {
	mock.Mock
}

func (m *MockSessionAuthority) Authenticate(ctx context.Context, username, password string) (*domain.Session, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionAuthority) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionAuthority) Invalidate(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSessionAuthority) Authorize(session *domain.Session) bool {
	args := m.Called(session)
	return args.Bool(0)
}

func TestAuthHandler_login(t *testing.T) {
	mockAuthority := &MockSessionAuthority{}
	handler := NewAuthHandler(mockAuthority, testCookie, time.Hour)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(loginRequest{Username: "admin", Password: "s3cret"})
	c.Request = httptest.NewRequest("POST", "/admin/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	session := &domain.Session{Token: "tok-1", IsAdmin: true, ExpiresAt: time.Now().Add(time.Hour)}
	mockAuthority.On("Authenticate", c.Request.Context(), "admin", "s3cret").Return(session, nil)

	handler.login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Login successful")

	cookies := w.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, testCookie, cookies[0].Name)
	assert.Equal(t, "tok-1", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.False(t, cookies[0].Secure)

	mockAuthority.AssertExpectations(t)
}

func TestAuthHandler_login_badCredentials(t *testing.T) {
	mockAuthority := &MockSessionAuthority{}
	handler := NewAuthHandler(mockAuthority, testCookie, time.Hour)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(loginRequest{Username: "admin", Password: "wrong"})
	c.Request = httptest.NewRequest("POST", "/admin/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockAuthority.On("Authenticate", c.Request.Context(), "admin", "wrong").Return(nil, domain.ErrUnauthorized)

	handler.login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
	assert.Empty(t, w.Result().Cookies())

	mockAuthority.AssertExpectations(t)
}

func TestAuthHandler_logout(t *testing.T) {
	mockAuthority := &MockSessionAuthority{}
	handler := NewAuthHandler(mockAuthority, testCookie, time.Hour)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("POST", "/admin/logout", nil)
	c.Request.AddCookie(&http.Cookie{Name: testCookie, Value: "tok-1"})

	mockAuthority.On("Invalidate", c.Request.Context(), "tok-1").Return(nil)

	handler.logout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Logged out successfully")

	cookies := w.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, testCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)

	mockAuthority.AssertExpectations(t)
}
