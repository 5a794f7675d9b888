package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkraev/aeroticket/internal/domain"
	"github.com/mkraev/aeroticket/internal/service/booking"
	"github.com/mkraev/aeroticket/internal/service/history"
)

type TicketHandler struct {
	service    booking.BookingUseCase
	monitoring history.HistoryUseCase
}

type purchaseRequest struct {
	FlightNumber string `json:"flightNumber" binding:"required"`
}

type ticketResponse struct {
	ID           int64     `json:"id"`
	FlightNumber string    `json:"flightNumber"`
	Destination  string    `json:"destination"`
	Date         time.Time `json:"date"`
	Status       string    `json:"status"`
	CheckinDone  bool      `json:"checkinDone"`
}

func toTicketResponse(t *domain.Ticket) ticketResponse {
	return ticketResponse{
		ID:           t.ID,
		FlightNumber: t.FlightNumber,
		Destination:  t.Destination,
		Date:         t.Date,
		Status:       string(t.Status),
		CheckinDone:  t.CheckinDone,
	}
}

func NewTicketHandler(service booking.BookingUseCase, monitoring history.HistoryUseCase) *TicketHandler {
	return &TicketHandler{service: service, monitoring: monitoring}
}

func (h *TicketHandler) Register(router *gin.RouterGroup, mw *Middleware) {
	router.POST("/purchase", mw.RequireAuth, h.purchase)
	router.POST("/cancel/:ticketId", mw.RequireAuth, h.cancel)
	router.POST("/checkin/:ticketId", mw.RequireAuth, h.checkin)
	router.GET("/monitoring", mw.RequireAuth, mw.RequireRole(domain.RoleAdmin), h.monitor)
}

func (h *TicketHandler) purchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.service.Purchase(c.Request.Context(), currentUserID(c), req.FlightNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "ticket purchased", "ticket": toTicketResponse(ticket)})
}

func (h *TicketHandler) cancel(c *gin.Context) {
	ticketID, err := strconv.ParseInt(c.Param("ticketId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}

	ticket, err := h.service.Cancel(c.Request.Context(), currentUserID(c), ticketID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ticket cancelled", "ticket": toTicketResponse(ticket)})
}

func (h *TicketHandler) checkin(c *gin.Context) {
	ticketID, err := strconv.ParseInt(c.Param("ticketId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}

	ticket, seatNumber, err := h.service.CheckIn(c.Request.Context(), currentUserID(c), ticketID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "check-in completed",
		"ticket":     toTicketResponse(ticket),
		"seatNumber": seatNumber,
	})
}

func (h *TicketHandler) monitor(c *gin.Context) {
	filter, page, err := historyQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records, total, err := h.monitoring.Monitor(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history":      toHistoryResponses(records),
		"currentPage":  page.Number,
		"totalPages":   page.TotalPages(total),
		"totalRecords": total,
	})
}
