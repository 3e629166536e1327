package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/AigennA/EventBokningApp/internal/domain"
	"github.com/AigennA/EventBokningApp/internal/testutil"
	"github.com/google/uuid"
)

func TestBookingRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewBookingRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("Create and Get round trip", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		_, ticketTypeID := testutil.InsertEventWithTicketType(t, ctx, pool, "Konsert", 200, 10)

		booking := domain.Booking{
			ID:            uuid.NewString(),
			TicketTypeID:  ticketTypeID,
			CustomerName:  "Anna Svensson",
			CustomerEmail: "anna@test.se",
			Quantity:      3,
			TotalPrice:    600,
			BookingDate:   time.Now().UTC().Truncate(time.Microsecond),
		}
		if err := repo.Create(ctx, booking); err != nil {
			t.Fatalf("create: %v", err)
		}

		got, err := repo.Get(ctx, booking.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.CustomerEmail != booking.CustomerEmail || got.Quantity != 3 || got.TotalPrice != 600 || got.Cancelled {
			t.Fatalf("unexpected booking: %+v", got)
		}

		missingID := "00000000-0000-0000-0000-000000000001"
		if _, err := repo.Get(ctx, missingID); err != domain.ErrBookingNotFound {
			t.Fatalf("expected ErrBookingNotFound, got %v", err)
		}
		if _, err := repo.Get(ctx, "not-a-uuid"); err != domain.ErrInvalidID {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})

	t.Run("Create rejects unknown ticket type", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		booking := domain.Booking{
			ID:            uuid.NewString(),
			TicketTypeID:  "00000000-0000-0000-0000-000000000001",
			CustomerName:  "Test",
			CustomerEmail: "test@test.se",
			Quantity:      1,
			BookingDate:   time.Now().UTC(),
		}
		if err := repo.Create(ctx, booking); err != domain.ErrTicketTypeNotFound {
			t.Fatalf("expected ErrTicketTypeNotFound, got %v", err)
		}
	})

	t.Run("MarkCancelled is a one-shot transition", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		_, ticketTypeID := testutil.InsertEventWithTicketType(t, ctx, pool, "Konsert", 200, 10)

		id := testutil.InsertBooking(t, ctx, pool, ticketTypeID, domain.Booking{
			CustomerName:  "Test",
			CustomerEmail: "test@test.se",
			Quantity:      2,
			TotalPrice:    400,
		})

		if err := repo.MarkCancelled(ctx, id); err != nil {
			t.Fatalf("first cancel: %v", err)
		}
		if err := repo.MarkCancelled(ctx, id); err != domain.ErrAlreadyCancelled {
			t.Fatalf("expected ErrAlreadyCancelled, got %v", err)
		}

		missingID := "00000000-0000-0000-0000-000000000001"
		if err := repo.MarkCancelled(ctx, missingID); err != domain.ErrBookingNotFound {
			t.Fatalf("expected ErrBookingNotFound, got %v", err)
		}
	})

	t.Run("GetView joins ticket type and event", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		eventID, ticketTypeID := testutil.InsertEventWithTicketType(t, ctx, pool, "Konsert", 200, 10)

		id := testutil.InsertBooking(t, ctx, pool, ticketTypeID, domain.Booking{
			CustomerName:  "Test",
			CustomerEmail: "test@test.se",
			Quantity:      1,
			TotalPrice:    200,
		})

		view, err := repo.GetView(ctx, id)
		if err != nil {
			t.Fatalf("get view: %v", err)
		}
		if view.TicketTypeName != "Standard" || view.EventID != eventID || view.EventName != "Konsert" {
			t.Fatalf("unexpected view: %+v", view)
		}
	})

	t.Run("ListByCustomerEmail orders newest first and filters cancelled", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		_, ticketTypeID := testutil.InsertEventWithTicketType(t, ctx, pool, "Konsert", 200, 10)

		now := time.Now().UTC()
		oldID := testutil.InsertBooking(t, ctx, pool, ticketTypeID, domain.Booking{
			CustomerName:  "Anna",
			CustomerEmail: "anna@test.se",
			Quantity:      1,
			TotalPrice:    200,
			BookingDate:   now.Add(-2 * time.Hour),
		})
		newID := testutil.InsertBooking(t, ctx, pool, ticketTypeID, domain.Booking{
			CustomerName:  "Anna",
			CustomerEmail: "anna@test.se",
			Quantity:      2,
			TotalPrice:    400,
			BookingDate:   now.Add(-1 * time.Hour),
		})
		cancelledID := testutil.InsertBooking(t, ctx, pool, ticketTypeID, domain.Booking{
			CustomerName:  "Anna",
			CustomerEmail: "anna@test.se",
			Quantity:      1,
			TotalPrice:    200,
			BookingDate:   now,
			Cancelled:     true,
		})
		testutil.InsertBooking(t, ctx, pool, ticketTypeID, domain.Booking{
			CustomerName:  "Erik",
			CustomerEmail: "erik@test.se",
			Quantity:      1,
			TotalPrice:    200,
			BookingDate:   now,
		})

		all, err := repo.ListByCustomerEmail(ctx, "anna@test.se", false)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 bookings, got %d", len(all))
		}
		if all[0].ID != cancelledID || all[1].ID != newID || all[2].ID != oldID {
			t.Fatalf("unexpected order: %v %v %v", all[0].ID, all[1].ID, all[2].ID)
		}

		active, err := repo.ListByCustomerEmail(ctx, "anna@test.se", true)
		if err != nil {
			t.Fatalf("list active: %v", err)
		}
		if len(active) != 2 {
			t.Fatalf("expected 2 active bookings, got %d", len(active))
		}
		for _, v := range active {
			if v.Cancelled {
				t.Fatalf("expected no cancelled bookings, got %+v", v)
			}
		}
	})

	t.Run("ListByTicketType and ListByEvent", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		eventID, ticketTypeID := testutil.InsertEventWithTicketType(t, ctx, pool, "Konsert", 200, 10)
		_, otherTicketTypeID := testutil.InsertEventWithTicketType(t, ctx, pool, "Teater", 150, 20)

		testutil.InsertBooking(t, ctx, pool, ticketTypeID, domain.Booking{
			CustomerName: "A", CustomerEmail: "a@test.se", Quantity: 1, TotalPrice: 200,
		})
		testutil.InsertBooking(t, ctx, pool, otherTicketTypeID, domain.Booking{
			CustomerName: "B", CustomerEmail: "b@test.se", Quantity: 1, TotalPrice: 150,
		})

		byType, err := repo.ListByTicketType(ctx, ticketTypeID)
		if err != nil {
			t.Fatalf("list by ticket type: %v", err)
		}
		if len(byType) != 1 || byType[0].TicketTypeID != ticketTypeID {
			t.Fatalf("unexpected result: %+v", byType)
		}

		byEvent, err := repo.ListByEvent(ctx, eventID)
		if err != nil {
			t.Fatalf("list by event: %v", err)
		}
		if len(byEvent) != 1 || byEvent[0].EventID != eventID {
			t.Fatalf("unexpected result: %+v", byEvent)
		}
	})
}
