package handler

import (
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"busline/internal/domain"
	"busline/internal/redis"
	"busline/internal/registry"
	"busline/internal/service"
)

// BusHandler handles HTTP requests for the bus catalog.
type BusHandler struct {
	registry *registry.Registry
	cache    *redis.FleetCache
	notifier *service.NotificationService
}

// NewBusHandler creates a new BusHandler. cache may be nil.
func NewBusHandler(reg *registry.Registry, cache *redis.FleetCache, notifier *service.NotificationService) *BusHandler {
	return &BusHandler{
		registry: reg,
		cache:    cache,
		notifier: notifier,
	}
}

// CreateBusRequest is the HTTP request body for registering a bus.
type CreateBusRequest struct {
	BusNo        int     `json:"bus_no"`
	AC           bool    `json:"ac"`
	Capacity     int     `json:"capacity"`
	From         string  `json:"from"`
	To           string  `json:"to"`
	CostPerSeat  float64 `json:"cost_per_seat"`
	SafetyRating int     `json:"safety_rating"`
	ImagePath    string  `json:"image_path,omitempty"`
}

// BusResponse is the HTTP representation of a bus.
type BusResponse struct {
	BusNo          int     `json:"bus_no"`
	AC             bool    `json:"ac"`
	Route          string  `json:"route"`
	From           string  `json:"from"`
	To             string  `json:"to"`
	Capacity       int     `json:"capacity"`
	AvailableSeats int     `json:"available_seats"`
	CostPerSeat    float64 `json:"cost_per_seat"`
	SafetyRating   int     `json:"safety_rating"`
	SafetyStars    string  `json:"safety_stars"`
}

// AvailabilityResponse is the HTTP response for a seat availability query.
type AvailabilityResponse struct {
	BusNo          int `json:"bus_no"`
	AvailableSeats int `json:"available_seats"`
}

// CreateBus handles POST /v1/buses
func (h *BusHandler) CreateBus(c *gin.Context) {
	var req CreateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	bus, err := h.registry.AddBus(domain.Bus{
		No:           req.BusNo,
		AC:           req.AC,
		Capacity:     req.Capacity,
		From:         strings.TrimSpace(req.From),
		To:           strings.TrimSpace(req.To),
		CostPerSeat:  req.CostPerSeat,
		SafetyRating: req.SafetyRating,
		ImagePath:    strings.TrimSpace(req.ImagePath),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if h.cache != nil {
		_ = h.cache.Invalidate(c.Request.Context())
	}
	if h.notifier != nil {
		_ = h.notifier.NotifyBusAdded(c.Request.Context(), bus)
	}

	respondJSON(c, http.StatusCreated, toBusResponse(bus))
}

// GetAll handles GET /v1/buses
func (h *BusHandler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()

	// Serve the fleet listing from cache when possible; the registry stays
	// the source of truth and the cache is invalidated on every mutation.
	if h.cache != nil {
		if cached, err := h.cache.GetFleet(ctx); err == nil && cached != nil {
			c.Data(http.StatusOK, "application/json", cached)
			return
		}
	}

	buses := h.registry.List()
	response := make([]BusResponse, 0, len(buses))
	for _, b := range buses {
		response = append(response, toBusResponse(b))
	}

	if h.cache != nil {
		_ = h.cache.SetFleet(ctx, response)
	}

	c.JSON(http.StatusOK, response)
}

// GetBus handles GET /v1/buses/:no
func (h *BusHandler) GetBus(c *gin.Context) {
	busNo, ok := parseBusNo(c)
	if !ok {
		return
	}

	bus, err := h.registry.Get(busNo)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBusResponse(bus))
}

// GetAvailability handles GET /v1/buses/:no/availability
func (h *BusHandler) GetAvailability(c *gin.Context) {
	busNo, ok := parseBusNo(c)
	if !ok {
		return
	}

	available, err := h.registry.AvailableSeats(busNo)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, AvailabilityResponse{
		BusNo:          busNo,
		AvailableSeats: available,
	})
}

// GetImage handles GET /v1/buses/:no/image
//
// A bus without an image, or with an image path that does not resolve to a
// file, yields 204 No Content rather than an error.
func (h *BusHandler) GetImage(c *gin.Context) {
	busNo, ok := parseBusNo(c)
	if !ok {
		return
	}

	bus, err := h.registry.Get(busNo)
	if err != nil {
		respondError(c, err)
		return
	}

	if bus.ImagePath == "" {
		c.Status(http.StatusNoContent)
		return
	}
	if _, err := os.Stat(bus.ImagePath); err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.File(bus.ImagePath)
}

// parseBusNo parses the :no path parameter, responding 400 on failure.
func parseBusNo(c *gin.Context) (int, bool) {
	busNo, err := strconv.Atoi(c.Param("no"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid bus number"})
		return 0, false
	}
	return busNo, true
}

// toBusResponse converts a bus to its HTTP representation.
func toBusResponse(b *domain.Bus) BusResponse {
	return BusResponse{
		BusNo:          b.No,
		AC:             b.AC,
		Route:          b.From + " → " + b.To,
		From:           b.From,
		To:             b.To,
		Capacity:       b.Capacity,
		AvailableSeats: b.AvailableSeats(),
		CostPerSeat:    b.CostPerSeat,
		SafetyRating:   b.SafetyRating,
		SafetyStars:    strings.Repeat("★", b.SafetyRating),
	}
}
