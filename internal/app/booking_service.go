package app

import (
	"context"
	"errors"

	"github.com/AigennA/EventBokningApp/internal/clock"
	"github.com/AigennA/EventBokningApp/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InventoryStore is the durable record of ticket type quantities. Debit and
// Credit must each be a single atomic conditional operation; see the postgres
// implementation.
type InventoryStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetTicketType(ctx context.Context, id string) (domain.TicketType, error)
	Debit(ctx context.Context, id string, quantity int) (domain.TicketType, error)
	Credit(ctx context.Context, id string, quantity int) (domain.TicketType, error)
}

// BookingLedger is the durable record of bookings. MarkCancelled must be an
// atomic compare-and-set on the cancelled flag.
type BookingLedger interface {
	Create(ctx context.Context, b domain.Booking) error
	Get(ctx context.Context, id string) (domain.Booking, error)
	MarkCancelled(ctx context.Context, id string) error
	GetView(ctx context.Context, id string) (domain.BookingView, error)
	ListAll(ctx context.Context) ([]domain.BookingView, error)
	ListByTicketType(ctx context.Context, ticketTypeID string) ([]domain.BookingView, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.BookingView, error)
	ListByCustomerEmail(ctx context.Context, email string, excludeCancelled bool) ([]domain.BookingView, error)
}

// BookingService composes the inventory store and the booking ledger into the
// two business transactions: booking and cancellation. It is the only
// component allowed to mutate quantity_available or the cancelled flag.
type BookingService struct {
	inventory  InventoryStore
	ledger     BookingLedger
	clock      clock.Clock
	log        *zap.Logger
	txAttempts int
	retryable  func(error) bool
}

func NewBookingService(inventory InventoryStore, ledger BookingLedger, clk clock.Clock, log *zap.Logger, opts ...BookingServiceOption) *BookingService {
	if log == nil {
		log = zap.NewNop()
	}
	svc := &BookingService{
		inventory:  inventory,
		ledger:     ledger,
		clock:      clk,
		log:        log,
		txAttempts: 1,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type BookingServiceOption func(*BookingService)

// WithTxRetry retries a whole transaction up to attempts times when retryable
// reports a transient conflict. Business failures are never retried.
func WithTxRetry(attempts int, retryable func(error) bool) BookingServiceOption {
	return func(s *BookingService) {
		if attempts > 0 {
			s.txAttempts = attempts
		}
		s.retryable = retryable
	}
}

type CreateBookingInput struct {
	TicketTypeID  string
	CustomerName  string
	CustomerEmail string
	Quantity      int
}

// CreateBooking debits inventory and records the booking as one atomic unit.
// The total price is snapshotted from the ticket type as read in the same
// transaction, so later price changes never alter a committed booking.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (domain.Booking, error) {
	if in.Quantity <= 0 {
		return domain.Booking{}, domain.ErrInvalidQuantity
	}
	if in.CustomerName == "" || in.CustomerEmail == "" {
		return domain.Booking{}, domain.ErrCustomerRequired
	}

	var result domain.Booking
	err := s.inTx(ctx, func(txCtx context.Context) error {
		ticket, err := s.inventory.GetTicketType(txCtx, in.TicketTypeID)
		if err != nil {
			return err
		}

		if _, err := s.inventory.Debit(txCtx, ticket.ID, in.Quantity); err != nil {
			return err
		}

		booking := domain.Booking{
			ID:            uuid.NewString(),
			TicketTypeID:  ticket.ID,
			CustomerName:  in.CustomerName,
			CustomerEmail: in.CustomerEmail,
			Quantity:      in.Quantity,
			TotalPrice:    float64(in.Quantity) * ticket.Price,
			BookingDate:   s.clock.Now(),
			Cancelled:     false,
		}

		// If this insert fails the transaction rolls back and the debit with
		// it; no partial state is ever visible to other transactions.
		if err := s.ledger.Create(txCtx, booking); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientTickets) {
			bookingsRejected.Inc()
		}
		return domain.Booking{}, err
	}

	bookingsCreated.Inc()
	return result, nil
}

// CancelBooking flips the cancelled flag and credits inventory back as one
// atomic unit. A second cancel of the same booking returns ErrAlreadyCancelled
// and changes nothing.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID string) error {
	err := s.inTx(ctx, func(txCtx context.Context) error {
		booking, err := s.ledger.Get(txCtx, bookingID)
		if err != nil {
			return err
		}

		if err := s.ledger.MarkCancelled(txCtx, bookingID); err != nil {
			return err
		}

		// A failed credit rolls the flag flip back so a retry stays possible
		// and the quantity is never silently lost.
		if _, err := s.inventory.Credit(txCtx, booking.TicketTypeID, booking.Quantity); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInventoryInvariant) {
			invariantViolations.Inc()
			s.log.Error("cancellation credit violated inventory invariant",
				zap.String("booking_id", bookingID),
				zap.Error(err),
			)
		}
		return err
	}

	bookingsCancelled.Inc()
	return nil
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (domain.BookingView, error) {
	return s.ledger.GetView(ctx, id)
}

func (s *BookingService) ListBookings(ctx context.Context) ([]domain.BookingView, error) {
	return s.ledger.ListAll(ctx)
}

func (s *BookingService) ListBookingsByTicketType(ctx context.Context, ticketTypeID string) ([]domain.BookingView, error) {
	if ticketTypeID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.ledger.ListByTicketType(ctx, ticketTypeID)
}

func (s *BookingService) ListBookingsByEvent(ctx context.Context, eventID string) ([]domain.BookingView, error) {
	if eventID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.ledger.ListByEvent(ctx, eventID)
}

func (s *BookingService) ListBookingsByEmail(ctx context.Context, email string, excludeCancelled bool) ([]domain.BookingView, error) {
	if email == "" {
		return nil, domain.ErrCustomerRequired
	}
	return s.ledger.ListByCustomerEmail(ctx, email, excludeCancelled)
}

func (s *BookingService) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 1; ; attempt++ {
		err = s.inventory.WithTx(ctx, fn)
		if err == nil || s.retryable == nil || !s.retryable(err) || attempt >= s.txAttempts {
			return err
		}
		s.log.Warn("retrying booking transaction after conflict",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
}
