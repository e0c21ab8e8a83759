package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"busline/internal/app"
	"busline/internal/domain"
	"busline/internal/handler"
	"busline/internal/registry"
	"busline/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter builds the full router without Redis, New Relic or the
// snapshot collaborator.
func newTestRouter(t *testing.T, buses ...domain.Bus) (*gin.Engine, *registry.Registry, *service.BookingService) {
	t.Helper()

	reg := registry.New()
	for _, bus := range buses {
		if _, err := reg.AddBus(bus); err != nil {
			t.Fatalf("failed to add bus %d: %v", bus.No, err)
		}
	}

	ledger := service.NewBookingService(reg, nil)
	tickets := service.NewTicketService(reg, ledger)

	router := app.NewRouter(app.RouterDeps{
		BusHandler:     handler.NewBusHandler(reg, nil, nil),
		BookingHandler: handler.NewBookingHandler(ledger, tickets, nil),
	})
	return router, reg, ledger
}

func jaipurExpress() domain.Bus {
	return domain.Bus{No: 101, AC: true, Capacity: 40, From: "Delhi", To: "Jaipur", CostPerSeat: 450, SafetyRating: 5}
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateBooking_Success(t *testing.T) {
	router, _, _ := newTestRouter(t, jaipurExpress())

	w := doJSON(router, http.MethodPost, "/v1/bookings", handler.CreateBookingRequest{
		PassengerName: "Asha",
		BusNo:         101,
		Seats:         2,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.BookingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalCost != 900.0 {
		t.Errorf("expected total cost 900.0, got %v", resp.TotalCost)
	}
}

func TestCreateBooking_CapacityExceeded(t *testing.T) {
	router, _, _ := newTestRouter(t, jaipurExpress())

	w := doJSON(router, http.MethodPost, "/v1/bookings", handler.CreateBookingRequest{
		PassengerName: "Asha", BusNo: 101, Seats: 41,
	})

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateBooking_UnknownBus(t *testing.T) {
	router, _, _ := newTestRouter(t, jaipurExpress())

	w := doJSON(router, http.MethodPost, "/v1/bookings", handler.CreateBookingRequest{
		PassengerName: "Asha", BusNo: 999, Seats: 1,
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateBooking_InvalidSeatCount(t *testing.T) {
	router, _, _ := newTestRouter(t, jaipurExpress())

	w := doJSON(router, http.MethodPost, "/v1/bookings", handler.CreateBookingRequest{
		PassengerName: "Asha", BusNo: 101, Seats: 0,
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCancelBooking_ReportsRecordRemoved(t *testing.T) {
	router, reg, _ := newTestRouter(t, jaipurExpress())

	doJSON(router, http.MethodPost, "/v1/bookings", handler.CreateBookingRequest{
		PassengerName: "Asha", BusNo: 101, Seats: 2,
	})

	w := doJSON(router, http.MethodPost, "/v1/bookings/cancel", handler.CancelBookingRequest{
		BusNo: 101, Seats: 2,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.CancelBookingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.RecordRemoved {
		t.Error("expected record_removed to be true")
	}

	bus, _ := reg.Get(101)
	if bus.BookedSeats != 0 {
		t.Errorf("expected booked seats back to 0, got %d", bus.BookedSeats)
	}
}

func TestCreateBus_Duplicate(t *testing.T) {
	router, _, _ := newTestRouter(t, jaipurExpress())

	w := doJSON(router, http.MethodPost, "/v1/buses", handler.CreateBusRequest{
		BusNo: 101, Capacity: 30, From: "Delhi", To: "Agra", CostPerSeat: 300, SafetyRating: 4,
	})

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestListBuses_IncludesAvailability(t *testing.T) {
	router, reg, _ := newTestRouter(t, jaipurExpress())
	reg.TryReserveSeats(101, 15)

	w := doJSON(router, http.MethodGet, "/v1/buses", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp []handler.BusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected 1 bus, got %d", len(resp))
	}
	if resp[0].AvailableSeats != 25 {
		t.Errorf("expected 25 available seats, got %d", resp[0].AvailableSeats)
	}
	if resp[0].SafetyStars != "★★★★★" {
		t.Errorf("unexpected safety stars %q", resp[0].SafetyStars)
	}
}

func TestGetAvailability(t *testing.T) {
	router, _, _ := newTestRouter(t, jaipurExpress())

	w := doJSON(router, http.MethodGet, "/v1/buses/101/availability", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp handler.AvailabilityResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AvailableSeats != 40 {
		t.Errorf("expected 40 available seats, got %d", resp.AvailableSeats)
	}
}

func TestGetBus_BadNumber(t *testing.T) {
	router, _, _ := newTestRouter(t, jaipurExpress())

	w := doJSON(router, http.MethodGet, "/v1/buses/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestGetImage_MissingFile(t *testing.T) {
	bus := jaipurExpress()
	bus.ImagePath = "does/not/exist.jpg"
	router, _, _ := newTestRouter(t, bus)

	w := doJSON(router, http.MethodGet, "/v1/buses/101/image", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204 for a missing image, got %d", w.Code)
	}
}

func TestTicket_UnknownBooking(t *testing.T) {
	router, _, _ := newTestRouter(t, jaipurExpress())

	w := doJSON(router, http.MethodPost, "/v1/bookings/ticket", handler.TicketRequest{
		PassengerName: "Asha", BusNo: 101, Seats: 2,
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestTicket_ReturnsPDF(t *testing.T) {
	router, _, _ := newTestRouter(t, jaipurExpress())

	doJSON(router, http.MethodPost, "/v1/bookings", handler.CreateBookingRequest{
		PassengerName: "Asha", BusNo: 101, Seats: 2,
	})

	w := doJSON(router, http.MethodPost, "/v1/bookings/ticket", handler.TicketRequest{
		PassengerName: "Asha", BusNo: 101, Seats: 2,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected application/pdf, got %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Error("expected PDF body")
	}
}
