package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkraev/aeroticket/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Purchase(ctx context.Context, userID int64, flightNumber string) (*domain.Ticket, error) {
	args := m.Called(ctx, userID, flightNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockBookingService) Cancel(ctx context.Context, userID, ticketID int64) (*domain.Ticket, error) {
	args := m.Called(ctx, userID, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockBookingService) CheckIn(ctx context.Context, userID, ticketID int64) (*domain.Ticket, int, error) {
	args := m.Called(ctx, userID, ticketID)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).(*domain.Ticket), args.Int(1), args.Error(2)
}

type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) Read(ctx context.Context, userID int64, filter domain.HistoryFilter, page domain.Page) ([]domain.History, int, error) {
	args := m.Called(ctx, userID, filter, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.History), args.Int(1), args.Error(2)
}

func (m *MockHistoryService) Monitor(ctx context.Context, filter domain.HistoryFilter, page domain.Page) ([]domain.History, int, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.History), args.Int(1), args.Error(2)
}

func TestTicketHandler_purchase(t *testing.T) {
	mockService := &MockBookingService{}
	handler := NewTicketHandler(mockService, &MockHistoryService{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(userIDKey, int64(7))
	c.Request = newJSONRequest("POST", "/purchase", `{"flightNumber": "F001"}`)

	ticket := &domain.Ticket{
		ID:           11,
		UserID:       7,
		FlightNumber: "F001",
		Destination:  "Rome",
		Date:         time.Now(),
		Status:       domain.TicketStatusActive,
	}
	mockService.On("Purchase", c.Request.Context(), int64(7), "F001").Return(ticket, nil)

	handler.purchase(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestTicketHandler_purchase_NoSeats(t *testing.T) {
	mockService := &MockBookingService{}
	handler := NewTicketHandler(mockService, &MockHistoryService{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(userIDKey, int64(7))
	c.Request = newJSONRequest("POST", "/purchase", `{"flightNumber": "F001"}`)

	mockService.On("Purchase", c.Request.Context(), int64(7), "F001").Return(nil, domain.ErrNoSeats)

	handler.purchase(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTicketHandler_purchase_MissingFlightNumber(t *testing.T) {
	handler := NewTicketHandler(&MockBookingService{}, &MockHistoryService{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newJSONRequest("POST", "/purchase", `{}`)

	handler.purchase(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_cancel_AlreadyCancelled(t *testing.T) {
	mockService := &MockBookingService{}
	handler := NewTicketHandler(mockService, &MockHistoryService{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(userIDKey, int64(7))
	c.Params = gin.Params{{Key: "ticketId", Value: "11"}}
	c.Request = httptest.NewRequest("POST", "/cancel/11", nil)

	mockService.On("Cancel", c.Request.Context(), int64(7), int64(11)).Return(nil, domain.ErrTicketCancelled)

	handler.cancel(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTicketHandler_cancel_BadID(t *testing.T) {
	handler := NewTicketHandler(&MockBookingService{}, &MockHistoryService{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "ticketId", Value: "eleven"}}
	c.Request = httptest.NewRequest("POST", "/cancel/eleven", nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_checkin(t *testing.T) {
	mockService := &MockBookingService{}
	handler := NewTicketHandler(mockService, &MockHistoryService{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(userIDKey, int64(7))
	c.Params = gin.Params{{Key: "ticketId", Value: "11"}}
	c.Request = httptest.NewRequest("POST", "/checkin/11", nil)

	ticket := &domain.Ticket{
		ID:           11,
		UserID:       7,
		FlightNumber: "F001",
		Destination:  "Rome",
		Status:       domain.TicketStatusActive,
		CheckinDone:  true,
	}
	mockService.On("CheckIn", c.Request.Context(), int64(7), int64(11)).Return(ticket, 3, nil)

	handler.checkin(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		SeatNumber int `json:"seatNumber"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.SeatNumber)
	mockService.AssertExpectations(t)
}

func TestTicketHandler_monitor(t *testing.T) {
	mockHistory := &MockHistoryService{}
	handler := NewTicketHandler(&MockBookingService{}, mockHistory)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/monitoring?operation=purchase", nil)

	records := []domain.History{
		{ID: 1, UserID: 7, FlightNumber: "F001", Operation: domain.OperationPurchase, Timestamp: time.Now()},
	}
	mockHistory.On("Monitor", c.Request.Context(),
		domain.HistoryFilter{Operation: domain.OperationPurchase}, domain.Page{Number: 1, Limit: 10}).
		Return(records, 1, nil)

	handler.monitor(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockHistory.AssertExpectations(t)
}

func TestTicketHandler_monitor_BadOperation(t *testing.T) {
	handler := NewTicketHandler(&MockBookingService{}, &MockHistoryService{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/monitoring?operation=teleport", nil)

	handler.monitor(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
