package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkraev/aeroticket/internal/domain"
	"github.com/mkraev/aeroticket/internal/service/history"
)

type HistoryHandler struct {
	service history.HistoryUseCase
}

type historyResponse struct {
	TicketID      int64     `json:"ticketId"`
	UserID        int64     `json:"userId"`
	Operation     string    `json:"operation"`
	FlightNumber  string    `json:"flightNumber"`
	DepartureTime time.Time `json:"departureTime"`
	Destination   string    `json:"destination"`
	Timestamp     time.Time `json:"timestamp"`
	FlightStatus  string    `json:"flightStatus"`
	SeatNumber    *int      `json:"seatNumber"`
}

func toHistoryResponses(records []domain.History) []historyResponse {
	out := make([]historyResponse, 0, len(records))
	for _, h := range records {
		out = append(out, historyResponse{
			TicketID:      h.TicketID,
			UserID:        h.UserID,
			Operation:     string(h.Operation),
			FlightNumber:  h.FlightNumber,
			DepartureTime: h.DepartureTime,
			Destination:   h.Destination,
			Timestamp:     h.Timestamp,
			FlightStatus:  string(h.FlightStatus),
			SeatNumber:    h.SeatNumber,
		})
	}
	return out
}

func NewHistoryHandler(service history.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{service: service}
}

func (h *HistoryHandler) Register(router *gin.RouterGroup, mw *Middleware) {
	router.GET("/read", mw.RequireAuth, h.read)
}

func (h *HistoryHandler) read(c *gin.Context) {
	filter, page, err := historyQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records, total, err := h.service.Read(c.Request.Context(), currentUserID(c), filter, page)
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

func historyQuery(c *gin.Context) (domain.HistoryFilter, domain.Page, error) {
	filter := domain.HistoryFilter{
		FlightNumber: c.Query("flightNumber"),
		Destination:  c.Query("destination"),
	}

	if raw := c.Query("operation"); raw != "" {
		op := domain.Operation(raw)
		switch op {
		case domain.OperationPurchase, domain.OperationCancellation, domain.OperationCheckIn:
			filter.Operation = op
		default:
			return filter, domain.Page{}, errInvalidQuery("operation must be one of: purchase, cancellation, check-in")
		}
	}
	if raw := c.Query("departureTime"); raw != "" {
		departure, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, domain.Page{}, errInvalidQuery("departureTime must be RFC 3339")
		}
		filter.DepartureTime = departure
	}

	page, err := pageQuery(c)
	return filter, page, err
}
