package http

import (
	"encoding/json"
	"net/http"

	"github.com/AigennA/EventBokningApp/internal/app"
	"github.com/go-chi/chi/v5"
)

type createVenueRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Capacity int    `json:"capacity"`
}

// HandleCreateVenue returns an HTTP handler for creating venues.
func HandleCreateVenue(svc CatalogAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createVenueRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		venue, err := svc.CreateVenue(r.Context(), app.CreateVenueInput{
			Name:     req.Name,
			Address:  req.Address,
			City:     req.City,
			Capacity: req.Capacity,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, venueToResponse(venue))
	}
}

// HandleListVenues lists all venues.
func HandleListVenues(svc CatalogAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		venues, err := svc.ListVenues(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]venueResponse, 0, len(venues))
		for _, v := range venues {
			resp = append(resp, venueToResponse(v))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleGetVenue reads one venue.
func HandleGetVenue(svc CatalogAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		venue, err := svc.GetVenue(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, venueToResponse(venue))
	}
}
