package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"carpark/internal/entities"
	"carpark/internal/service"
	"carpark/internal/svcerr"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

const dateLayout = "2006-01-02"

type BookingHandler struct {
	Service  *service.BookingService
	validate *validator.Validate
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc, validate: validator.New()}
}

// queryDate reads ?date=YYYY-MM-DD, defaulting to today.
func queryDate(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse(dateLayout, raw)
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.Service.CreateBooking(req)
	if err != nil {
		http.Error(w, err.Error(), svcerr.HTTPStatus(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entities.NewBookingResponse(b))
}

func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid booking id", http.StatusBadRequest)
		return
	}
	var req entities.AmendBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.Service.AmendBooking(id, req)
	if err != nil {
		http.Error(w, err.Error(), svcerr.HTTPStatus(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entities.NewBookingResponse(b))
}

func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid booking id", http.StatusBadRequest)
		return
	}
	if err := h.Service.DeleteBooking(id); err != nil {
		http.Error(w, err.Error(), svcerr.HTTPStatus(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Booking cancelled"})
}

func (h *BookingHandler) SpotBoard(w http.ResponseWriter, r *http.Request) {
	on, err := queryDate(r)
	if err != nil {
		http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	rows, err := h.Service.SpotBoard(on)
	if err != nil {
		http.Error(w, err.Error(), svcerr.HTTPStatus(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}

func (h *BookingHandler) SpotStatus(w http.ResponseWriter, r *http.Request) {
	spotID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid spot id", http.StatusBadRequest)
		return
	}
	on, err := queryDate(r)
	if err != nil {
		http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	status, err := h.Service.SpotStatus(spotID, on)
	if err != nil {
		http.Error(w, err.Error(), svcerr.HTTPStatus(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.ListBookings()
	if err != nil {
		http.Error(w, err.Error(), svcerr.HTTPStatus(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}
