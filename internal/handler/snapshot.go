package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"busline/internal/registry"
	"busline/internal/service"
	"busline/internal/snapshot"
)

// SnapshotHandler triggers snapshots of the fleet and booking ledger. The
// core never reads snapshots back; they exist for external consumers.
type SnapshotHandler struct {
	store    *snapshot.Store
	registry *registry.Registry
	ledger   *service.BookingService
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(store *snapshot.Store, reg *registry.Registry, ledger *service.BookingService) *SnapshotHandler {
	return &SnapshotHandler{
		store:    store,
		registry: reg,
		ledger:   ledger,
	}
}

// SnapshotResponse is the HTTP response for a completed snapshot.
type SnapshotResponse struct {
	Buses    int `json:"buses"`
	Bookings int `json:"bookings"`
}

// Create handles POST /v1/snapshot
func (h *SnapshotHandler) Create(c *gin.Context) {
	buses := h.registry.List()
	bookings := h.ledger.ListBookings()

	if err := h.store.Save(c.Request.Context(), buses, bookings); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "snapshot failed"})
		return
	}

	respondJSON(c, http.StatusOK, SnapshotResponse{
		Buses:    len(buses),
		Bookings: len(bookings),
	})
}
