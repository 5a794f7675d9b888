package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkraev/aeroticket/internal/domain"
	"github.com/mkraev/aeroticket/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input auth.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, sessionID string) (int64, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuthService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) EditProfile(ctx context.Context, userID int64, input auth.EditProfileInput) (*domain.User, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestAuthHandler_register(t *testing.T) {
	mockService := &MockAuthService{}
	handler := NewAuthHandler(mockService, time.Hour)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newJSONRequest("POST", "/register", `{
		"email": "mario@example.com",
		"password": "secret1",
		"name": "Mario",
		"surname": "Rossi"
	}`)

	user := &domain.User{ID: 1, Email: "mario@example.com", Name: "Mario", Surname: "Rossi", Role: domain.RoleUser}
	mockService.On("Register", c.Request.Context(), auth.RegisterInput{
		Email:    "mario@example.com",
		Password: "secret1",
		Name:     "Mario",
		Surname:  "Rossi",
	}).Return(user, nil)

	handler.register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestAuthHandler_register_ShortPassword(t *testing.T) {
	handler := NewAuthHandler(&MockAuthService{}, time.Hour)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newJSONRequest("POST", "/register", `{
		"email": "mario@example.com",
		"password": "abc",
		"name": "Mario",
		"surname": "Rossi"
	}`)

	handler.register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_register_EmailTaken(t *testing.T) {
	mockService := &MockAuthService{}
	handler := NewAuthHandler(mockService, time.Hour)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newJSONRequest("POST", "/register", `{
		"email": "mario@example.com",
		"password": "secret1",
		"name": "Mario",
		"surname": "Rossi"
	}`)

	mockService.On("Register", c.Request.Context(), mock.AnythingOfType("auth.RegisterInput")).
		Return(nil, domain.ErrEmailTaken)

	handler.register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_login_SetsCookie(t *testing.T) {
	mockService := &MockAuthService{}
	handler := NewAuthHandler(mockService, time.Hour)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newJSONRequest("POST", "/login", `{"email": "mario@example.com", "password": "secret1"}`)

	user := &domain.User{ID: 1, Email: "mario@example.com", Role: domain.RoleUser}
	mockService.On("Login", c.Request.Context(), "mario@example.com", "secret1").
		Return("session-abc", user, nil)

	handler.login(c)

	assert.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Equal(t, sessionCookie, cookies[0].Name)
		assert.Equal(t, "session-abc", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	}
}

func TestAuthHandler_login_InvalidCredentials(t *testing.T) {
	mockService := &MockAuthService{}
	handler := NewAuthHandler(mockService, time.Hour)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newJSONRequest("POST", "/login", `{"email": "mario@example.com", "password": "wrong1"}`)

	mockService.On("Login", c.Request.Context(), "mario@example.com", "wrong1").
		Return("", nil, domain.ErrInvalidCredentials)

	handler.login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestAuthHandler_logout_NoCookie(t *testing.T) {
	handler := NewAuthHandler(&MockAuthService{}, time.Hour)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/logout", nil)

	handler.logout(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_logout_ClearsCookie(t *testing.T) {
	mockService := &MockAuthService{}
	handler := NewAuthHandler(mockService, time.Hour)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/logout", nil)
	c.Request.AddCookie(&http.Cookie{Name: sessionCookie, Value: "session-abc"})

	mockService.On("Logout", c.Request.Context(), "session-abc").Return(nil)

	handler.logout(c)

	assert.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Equal(t, sessionCookie, cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
	}
	mockService.AssertExpectations(t)
}
