package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/AigennA/EventBokningApp/internal/domain"
	"github.com/AigennA/EventBokningApp/internal/testutil"
	"github.com/google/uuid"
)

func TestCatalogRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewCatalogRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("venue round trip", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		venue := domain.Venue{
			ID:       uuid.NewString(),
			Name:     "Globen",
			Address:  "Globentorget 2",
			City:     "Stockholm",
			Capacity: 16000,
		}
		if err := repo.CreateVenue(ctx, venue); err != nil {
			t.Fatalf("create venue: %v", err)
		}

		got, err := repo.GetVenue(ctx, venue.ID)
		if err != nil {
			t.Fatalf("get venue: %v", err)
		}
		if got != venue {
			t.Fatalf("got %+v, want %+v", got, venue)
		}

		missingID := "00000000-0000-0000-0000-000000000001"
		if _, err := repo.GetVenue(ctx, missingID); err != domain.ErrVenueNotFound {
			t.Fatalf("expected ErrVenueNotFound, got %v", err)
		}
		if _, err := repo.GetVenue(ctx, "not-a-uuid"); err != domain.ErrInvalidID {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}

		venues, err := repo.ListVenues(ctx)
		if err != nil {
			t.Fatalf("list venues: %v", err)
		}
		if len(venues) != 1 || venues[0].ID != venue.ID {
			t.Fatalf("unexpected venues: %+v", venues)
		}
	})

	t.Run("CreateEvent rejects unknown venue", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		event := domain.Event{
			ID:      uuid.NewString(),
			VenueID: "00000000-0000-0000-0000-000000000001",
			Name:    "Konsert",
			Date:    time.Now().UTC().Add(24 * time.Hour),
		}
		if err := repo.CreateEvent(ctx, event); err != domain.ErrVenueNotFound {
			t.Fatalf("expected ErrVenueNotFound, got %v", err)
		}
	})

	t.Run("CreateTicketType rejects unknown event", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		ticket := domain.TicketType{
			ID:        uuid.NewString(),
			EventID:   "00000000-0000-0000-0000-000000000001",
			Name:      "Standard",
			Price:     100,
			Total:     10,
			Available: 10,
		}
		if err := repo.CreateTicketType(ctx, ticket); err != domain.ErrEventNotFound {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})

	t.Run("GetEventDetail returns venue and ticket types", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		venue := domain.Venue{ID: uuid.NewString(), Name: "Globen", Address: "Globentorget 2", City: "Stockholm", Capacity: 16000}
		if err := repo.CreateVenue(ctx, venue); err != nil {
			t.Fatalf("create venue: %v", err)
		}
		event := domain.Event{
			ID:      uuid.NewString(),
			VenueID: venue.ID,
			Name:    "Konsert",
			Date:    time.Now().UTC().Add(24 * time.Hour).Truncate(time.Microsecond),
		}
		if err := repo.CreateEvent(ctx, event); err != nil {
			t.Fatalf("create event: %v", err)
		}
		for _, tt := range []domain.TicketType{
			{ID: uuid.NewString(), EventID: event.ID, Name: "VIP", Price: 500, Total: 20, Available: 20},
			{ID: uuid.NewString(), EventID: event.ID, Name: "Standard", Price: 200, Total: 100, Available: 100},
		} {
			if err := repo.CreateTicketType(ctx, tt); err != nil {
				t.Fatalf("create ticket type %s: %v", tt.Name, err)
			}
		}

		detail, err := repo.GetEventDetail(ctx, event.ID)
		if err != nil {
			t.Fatalf("get event detail: %v", err)
		}
		if detail.Name != "Konsert" || detail.Venue.ID != venue.ID {
			t.Fatalf("unexpected detail: %+v", detail)
		}
		if len(detail.TicketTypes) != 2 {
			t.Fatalf("expected 2 ticket types, got %d", len(detail.TicketTypes))
		}
		// Ordered by name.
		if detail.TicketTypes[0].Name != "Standard" || detail.TicketTypes[1].Name != "VIP" {
			t.Fatalf("unexpected ticket type order: %+v", detail.TicketTypes)
		}

		missingID := "00000000-0000-0000-0000-000000000001"
		if _, err := repo.GetEventDetail(ctx, missingID); err != domain.ErrEventNotFound {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})

	t.Run("ListUpcomingEvents filters past events", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		venue := domain.Venue{ID: uuid.NewString(), Name: "Globen", Address: "Globentorget 2", City: "Stockholm", Capacity: 16000}
		if err := repo.CreateVenue(ctx, venue); err != nil {
			t.Fatalf("create venue: %v", err)
		}
		now := time.Now().UTC()
		past := domain.Event{ID: uuid.NewString(), VenueID: venue.ID, Name: "Gammal konsert", Date: now.Add(-24 * time.Hour)}
		future := domain.Event{ID: uuid.NewString(), VenueID: venue.ID, Name: "Ny konsert", Date: now.Add(24 * time.Hour)}
		for _, e := range []domain.Event{past, future} {
			if err := repo.CreateEvent(ctx, e); err != nil {
				t.Fatalf("create event %s: %v", e.Name, err)
			}
		}

		all, err := repo.ListEvents(ctx)
		if err != nil {
			t.Fatalf("list events: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("expected 2 events, got %d", len(all))
		}
		for _, e := range all {
			if e.Venue.Name != "Globen" {
				t.Fatalf("expected venue joined, got %+v", e)
			}
		}

		upcoming, err := repo.ListUpcomingEvents(ctx, now)
		if err != nil {
			t.Fatalf("list upcoming: %v", err)
		}
		if len(upcoming) != 1 || upcoming[0].ID != future.ID {
			t.Fatalf("unexpected upcoming events: %+v", upcoming)
		}
	})
}
