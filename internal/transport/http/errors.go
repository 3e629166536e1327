package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AigennA/EventBokningApp/internal/domain"
)

const (
	codeNotFound             = "not_found"
	codeInvalidRequestBody   = "invalid_request_body"
	codeInvalidID            = "invalid_id"
	codeInvalidQuantity      = "invalid_quantity"
	codeInvalidPrice         = "invalid_price"
	codeInvalidCapacity      = "invalid_capacity"
	codeCustomerRequired     = "customer_required"
	codeVenueNameRequired    = "venue_name_required"
	codeEventNameRequired    = "event_name_required"
	codeTicketNameRequired   = "ticket_type_name_required"
	codeTicketsRequired      = "ticket_types_required"
	codeVenueNotFound        = "venue_not_found"
	codeEventNotFound        = "event_not_found"
	codeTicketTypeNotFound   = "ticket_type_not_found"
	codeBookingNotFound      = "booking_not_found"
	codeAlreadyCancelled     = "booking_already_cancelled"
	codeInsufficientTickets  = "insufficient_tickets"
	codeForbidden            = "forbidden"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Requested *int   `json:"requested,omitempty"`
	Available *int   `json:"available,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeErrorResponse(w, status, errorResponse{Error: msg, Code: code})
}

func writeErrorResponse(w http.ResponseWriter, status int, resp errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(resp)
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps business failures to client-visible statuses. Anything
// unrecognized is a server fault and must not leak details to the caller.
func writeDomainError(w http.ResponseWriter, err error) {
	var insufficient *domain.InsufficientTicketsError
	if errors.As(err, &insufficient) {
		writeErrorResponse(w, http.StatusConflict, errorResponse{
			Error:     insufficient.Error(),
			Code:      codeInsufficientTickets,
			Requested: &insufficient.Requested,
			Available: &insufficient.Available,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrVenueNotFound):
		writeError(w, http.StatusNotFound, codeVenueNotFound, err.Error())
	case errors.Is(err, domain.ErrEventNotFound):
		writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
	case errors.Is(err, domain.ErrTicketTypeNotFound):
		writeError(w, http.StatusNotFound, codeTicketTypeNotFound, err.Error())
	case errors.Is(err, domain.ErrBookingNotFound):
		writeError(w, http.StatusNotFound, codeBookingNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyCancelled):
		writeError(w, http.StatusConflict, codeAlreadyCancelled, err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
	case errors.Is(err, domain.ErrInvalidPrice):
		writeError(w, http.StatusBadRequest, codeInvalidPrice, err.Error())
	case errors.Is(err, domain.ErrInvalidCapacity):
		writeError(w, http.StatusBadRequest, codeInvalidCapacity, err.Error())
	case errors.Is(err, domain.ErrCustomerRequired):
		writeError(w, http.StatusBadRequest, codeCustomerRequired, err.Error())
	case errors.Is(err, domain.ErrVenueNameRequired):
		writeError(w, http.StatusBadRequest, codeVenueNameRequired, err.Error())
	case errors.Is(err, domain.ErrEventNameRequired):
		writeError(w, http.StatusBadRequest, codeEventNameRequired, err.Error())
	case errors.Is(err, domain.ErrTicketNameRequired):
		writeError(w, http.StatusBadRequest, codeTicketNameRequired, err.Error())
	case errors.Is(err, domain.ErrTicketsRequired):
		writeError(w, http.StatusBadRequest, codeTicketsRequired, err.Error())
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
