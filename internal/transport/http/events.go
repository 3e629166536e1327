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

// CatalogAPI is the surface of the catalog service the HTTP layer needs.
type CatalogAPI interface {
	CreateVenue(ctx context.Context, in app.CreateVenueInput) (domain.Venue, error)
	GetVenue(ctx context.Context, id string) (domain.Venue, error)
	ListVenues(ctx context.Context) ([]domain.Venue, error)
	CreateEvent(ctx context.Context, in app.CreateEventInput) (domain.EventDetail, error)
	ListEvents(ctx context.Context) ([]domain.EventSummary, error)
	ListUpcomingEvents(ctx context.Context) ([]domain.EventSummary, error)
	GetEvent(ctx context.Context, id string) (domain.EventDetail, error)
}

type createTicketTypeRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Total int     `json:"quantity_total"`
}

type createEventRequest struct {
	VenueID     string                    `json:"venue_id"`
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Date        time.Time                 `json:"date"`
	TicketTypes []createTicketTypeRequest `json:"ticket_types"`
}

type ticketTypeResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Total     int     `json:"quantity_total"`
	Available int     `json:"quantity_available"`
}

type venueResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Capacity int    `json:"capacity"`
}

type eventResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Date        time.Time            `json:"date"`
	Venue       venueResponse        `json:"venue"`
	TicketTypes []ticketTypeResponse `json:"ticket_types,omitempty"`
}

func venueToResponse(v domain.Venue) venueResponse {
	return venueResponse{ID: v.ID, Name: v.Name, Address: v.Address, City: v.City, Capacity: v.Capacity}
}

func eventSummaryToResponse(s domain.EventSummary) eventResponse {
	return eventResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Date:        s.Date,
		Venue:       venueToResponse(s.Venue),
	}
}

func eventDetailToResponse(d domain.EventDetail) eventResponse {
	resp := eventSummaryToResponse(domain.EventSummary{Event: d.Event, Venue: d.Venue})
	resp.TicketTypes = make([]ticketTypeResponse, 0, len(d.TicketTypes))
	for _, t := range d.TicketTypes {
		resp.TicketTypes = append(resp.TicketTypes, ticketTypeResponse{
			ID:        t.ID,
			Name:      t.Name,
			Price:     t.Price,
			Total:     t.Total,
			Available: t.Available,
		})
	}
	return resp
}

// HandleCreateEvent creates an event together with its ticket types.
func HandleCreateEvent(svc CatalogAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEventRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		in := app.CreateEventInput{
			VenueID:     req.VenueID,
			Name:        req.Name,
			Description: req.Description,
			Date:        req.Date,
		}
		for _, t := range req.TicketTypes {
			in.TicketTypes = append(in.TicketTypes, app.CreateTicketTypeInput{
				Name:  t.Name,
				Price: t.Price,
				Total: t.Total,
			})
		}

		detail, err := svc.CreateEvent(r.Context(), in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, eventDetailToResponse(detail))
	}
}

// HandleListEvents lists events, optionally only upcoming ones.
func HandleListEvents(svc CatalogAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			events []domain.EventSummary
			err    error
		)
		if r.URL.Query().Get("upcoming") == "true" {
			events, err = svc.ListUpcomingEvents(r.Context())
		} else {
			events, err = svc.ListEvents(r.Context())
		}
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]eventResponse, 0, len(events))
		for _, e := range events {
			resp = append(resp, eventSummaryToResponse(e))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleGetEvent reads one event with its venue and ticket types.
func HandleGetEvent(svc CatalogAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := svc.GetEvent(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, eventDetailToResponse(detail))
	}
}
