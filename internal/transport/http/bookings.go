package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/AigennA/EventBokningApp/internal/app"
	"github.com/AigennA/EventBokningApp/internal/domain"
	"github.com/go-chi/chi/v5"
)

// BookingAPI is the surface of the booking engine the HTTP layer needs.
type BookingAPI interface {
	CreateBooking(ctx context.Context, in app.CreateBookingInput) (domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) error
	GetBooking(ctx context.Context, id string) (domain.BookingView, error)
	ListBookings(ctx context.Context) ([]domain.BookingView, error)
	ListBookingsByEvent(ctx context.Context, eventID string) ([]domain.BookingView, error)
	ListBookingsByEmail(ctx context.Context, email string, excludeCancelled bool) ([]domain.BookingView, error)
}

type createBookingRequest struct {
	TicketTypeID  string `json:"ticket_type_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	Quantity      int    `json:"quantity"`
}

type bookingResponse struct {
	ID             string    `json:"id"`
	TicketTypeID   string    `json:"ticket_type_id"`
	TicketTypeName string    `json:"ticket_type_name,omitempty"`
	EventID        string    `json:"event_id,omitempty"`
	EventName      string    `json:"event_name,omitempty"`
	CustomerName   string    `json:"customer_name"`
	CustomerEmail  string    `json:"customer_email"`
	Quantity       int       `json:"quantity"`
	TotalPrice     float64   `json:"total_price"`
	BookingDate    time.Time `json:"booking_date"`
	Cancelled      bool      `json:"cancelled"`
}

func bookingToResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:            b.ID,
		TicketTypeID:  b.TicketTypeID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		Quantity:      b.Quantity,
		TotalPrice:    b.TotalPrice,
		BookingDate:   b.BookingDate,
		Cancelled:     b.Cancelled,
	}
}

func bookingViewToResponse(v domain.BookingView) bookingResponse {
	resp := bookingToResponse(v.Booking)
	resp.TicketTypeName = v.TicketTypeName
	resp.EventID = v.EventID
	resp.EventName = v.EventName
	return resp
}

// HandleCreateBooking returns an HTTP handler for creating bookings.
func HandleCreateBooking(svc BookingAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBookingRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		booking, err := svc.CreateBooking(r.Context(), app.CreateBookingInput{
			TicketTypeID:  req.TicketTypeID,
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			Quantity:      req.Quantity,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, bookingToResponse(booking))
	}
}

// HandleCancelBooking returns an HTTP handler for cancelling a booking.
func HandleCancelBooking(svc BookingAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := svc.CancelBooking(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled", "id": id})
	}
}

// HandleGetBooking returns an HTTP handler for reading one booking.
func HandleGetBooking(svc BookingAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.GetBooking(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, bookingViewToResponse(view))
	}
}

// HandleListBookings lists all bookings, or a customer's bookings when the
// email query parameter is present.
func HandleListBookings(svc BookingAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			views []domain.BookingView
			err   error
		)
		if email := r.URL.Query().Get("email"); email != "" {
			excludeCancelled := r.URL.Query().Get("exclude_cancelled") == "true"
			views, err = svc.ListBookingsByEmail(r.Context(), email, excludeCancelled)
		} else {
			views, err = svc.ListBookings(r.Context())
		}
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeBookingList(w, views)
	}
}

// HandleListEventBookings lists the bookings placed against one event.
func HandleListEventBookings(svc BookingAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := svc.ListBookingsByEvent(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeBookingList(w, views)
	}
}

func writeBookingList(w http.ResponseWriter, views []domain.BookingView) {
	resp := make([]bookingResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, bookingViewToResponse(v))
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
