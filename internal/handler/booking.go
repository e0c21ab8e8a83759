package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"busline/internal/domain"
	"busline/internal/redis"
	"busline/internal/service"
)

// BookingHandler handles HTTP requests for the booking ledger.
type BookingHandler struct {
	ledger  *service.BookingService
	tickets *service.TicketService
	cache   *redis.FleetCache
}

// NewBookingHandler creates a new BookingHandler. cache may be nil.
func NewBookingHandler(ledger *service.BookingService, tickets *service.TicketService, cache *redis.FleetCache) *BookingHandler {
	return &BookingHandler{
		ledger:  ledger,
		tickets: tickets,
		cache:   cache,
	}
}

// CreateBookingRequest is the HTTP request body for booking seats.
type CreateBookingRequest struct {
	PassengerName string `json:"passenger_name"`
	BusNo         int    `json:"bus_no"`
	Seats         int    `json:"seats"`
}

// CancelBookingRequest is the HTTP request body for cancelling a booking.
type CancelBookingRequest struct {
	BusNo int `json:"bus_no"`
	Seats int `json:"seats"`
}

// TicketRequest is the HTTP request body for rendering a ticket.
type TicketRequest struct {
	PassengerName string `json:"passenger_name"`
	BusNo         int    `json:"bus_no"`
	Seats         int    `json:"seats"`
}

// BookingResponse is the HTTP representation of a ledger record.
type BookingResponse struct {
	PassengerName string  `json:"passenger_name"`
	BusNo         int     `json:"bus_no"`
	Seats         int     `json:"seats"`
	TotalCost     float64 `json:"total_cost"`
}

// CancelBookingResponse is the HTTP response for a cancellation.
type CancelBookingResponse struct {
	BusNo         int  `json:"bus_no"`
	Seats         int  `json:"seats"`
	RecordRemoved bool `json:"record_removed"`
}

// Create handles POST /v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.ledger.Book(c.Request.Context(), service.BookRequest{
		PassengerName: req.PassengerName,
		BusNo:         req.BusNo,
		Seats:         req.Seats,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if h.cache != nil {
		_ = h.cache.Invalidate(c.Request.Context())
	}

	respondJSON(c, http.StatusCreated, toBookingResponse(booking))
}

// Cancel handles POST /v1/bookings/cancel
//
// Seats are released even when no ledger record matches; RecordRemoved
// reports whether one did.
func (h *BookingHandler) Cancel(c *gin.Context) {
	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	removed, err := h.ledger.Cancel(c.Request.Context(), req.BusNo, req.Seats)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.cache != nil {
		_ = h.cache.Invalidate(c.Request.Context())
	}

	respondJSON(c, http.StatusOK, CancelBookingResponse{
		BusNo:         req.BusNo,
		Seats:         req.Seats,
		RecordRemoved: removed,
	})
}

// GetAll handles GET /v1/bookings
func (h *BookingHandler) GetAll(c *gin.Context) {
	bookings := h.ledger.ListBookings()

	response := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		response = append(response, toBookingResponse(&bookings[i]))
	}

	c.JSON(http.StatusOK, response)
}

// Ticket handles POST /v1/bookings/ticket
func (h *BookingHandler) Ticket(c *gin.Context) {
	var req TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	pdf, filename, err := h.tickets.GenerateTicket(req.PassengerName, req.BusNo, req.Seats)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// toBookingResponse converts a ledger record to its HTTP representation.
func toBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		PassengerName: b.PassengerName,
		BusNo:         b.BusNo,
		Seats:         b.Seats,
		TotalCost:     b.TotalCost,
	}
}
