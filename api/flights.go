package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkraev/aeroticket/internal/domain"
	"github.com/mkraev/aeroticket/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightRequest struct {
	FlightNumber   string    `json:"flightNumber" binding:"required"`
	DepartureTime  time.Time `json:"departureTime" binding:"required"`
	ArrivalTime    time.Time `json:"arrivalTime" binding:"required"`
	Destination    string    `json:"destination" binding:"required"`
	AvailableSeats int       `json:"availableSeats" binding:"min=0"`
}

type flightResponse struct {
	ID             int64     `json:"id"`
	FlightNumber   string    `json:"flightNumber"`
	DepartureTime  time.Time `json:"departureTime"`
	ArrivalTime    time.Time `json:"arrivalTime"`
	Destination    string    `json:"destination"`
	AvailableSeats int       `json:"availableSeats"`
}

func toFlightResponse(f domain.Flight) flightResponse {
	return flightResponse{
		ID:             f.ID,
		FlightNumber:   f.FlightNumber,
		DepartureTime:  f.DepartureTime,
		ArrivalTime:    f.ArrivalTime,
		Destination:    f.Destination,
		AvailableSeats: f.AvailableSeats,
	}
}

func toFlightResponses(fs []domain.Flight) []flightResponse {
	out := make([]flightResponse, 0, len(fs))
	for _, f := range fs {
		out = append(out, toFlightResponse(f))
	}
	return out
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup, mw *Middleware) {
	router.POST("/flights", mw.RequireAuth, mw.RequireRole(domain.RoleAdmin), h.create)
	router.GET("/flights", h.list)
	router.GET("/flights/:flightNumber", h.get)
	router.PUT("/flights/:id", mw.RequireAuth, mw.RequireRole(domain.RoleAdmin), h.update)
	router.DELETE("/flights/:id", mw.RequireAuth, mw.RequireRole(domain.RoleAdmin), h.delete)
	router.GET("/search", h.search)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight := &domain.Flight{
		FlightNumber:   req.FlightNumber,
		DepartureTime:  req.DepartureTime,
		ArrivalTime:    req.ArrivalTime,
		Destination:    req.Destination,
		AvailableSeats: req.AvailableSeats,
	}
	if err := h.service.Create(c.Request.Context(), flight); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "flight created", "flight": toFlightResponse(*flight)})
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByNumber(c.Request.Context(), c.Param("flightNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flight": toFlightResponse(*flight)})
}

func (h *FlightHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight := &domain.Flight{
		ID:             id,
		FlightNumber:   req.FlightNumber,
		DepartureTime:  req.DepartureTime,
		ArrivalTime:    req.ArrivalTime,
		Destination:    req.Destination,
		AvailableSeats: req.AvailableSeats,
	}
	if err := h.service.Update(c.Request.Context(), flight); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "flight updated", "flight": toFlightResponse(*flight)})
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "flight deleted"})
}

func (h *FlightHandler) search(c *gin.Context) {
	filter, page, err := flightQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, total, err := h.service.Search(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"flights":      toFlightResponses(results),
		"currentPage":  page.Number,
		"totalPages":   page.TotalPages(total),
		"totalFlights": total,
	})
}

func (h *FlightHandler) list(c *gin.Context) {
	filter, page, err := flightQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, total, err := h.service.List(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"flights":      toFlightResponses(results),
		"currentPage":  page.Number,
		"totalPages":   page.TotalPages(total),
		"totalFlights": total,
	})
}

func flightQuery(c *gin.Context) (domain.FlightFilter, domain.Page, error) {
	filter := domain.FlightFilter{
		FlightNumber: c.Query("flightNumber"),
		Destination:  c.Query("destination"),
	}

	if raw := c.Query("departureTime"); raw != "" {
		departure, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, domain.Page{}, errInvalidQuery("departureTime must be RFC 3339")
		}
		filter.DepartureTime = departure
	}
	if raw := c.Query("availableSeats"); raw != "" {
		seats, err := strconv.Atoi(raw)
		if err != nil || seats < 0 {
			return filter, domain.Page{}, errInvalidQuery("availableSeats must be a non-negative integer")
		}
		filter.AvailableSeats = seats
	}

	page, err := pageQuery(c)
	return filter, page, err
}
