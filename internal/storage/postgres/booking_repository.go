package postgres

import (
	"context"
	"fmt"

	"github.com/AigennA/EventBokningApp/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingRepository is the booking ledger: append-mostly booking records with
// a single permitted mutation, the cancelled flag flipping false to true.
type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *BookingRepository) Create(ctx context.Context, b domain.Booking) error {
	const stmt = `
INSERT INTO bookings (id, ticket_type_id, customer_name, customer_email, quantity, total_price, booking_date, is_cancelled)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.exec(ctx, stmt,
		b.ID,
		b.TicketTypeID,
		b.CustomerName,
		b.CustomerEmail,
		b.Quantity,
		b.TotalPrice,
		b.BookingDate,
		b.Cancelled,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrTicketTypeNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) Get(ctx context.Context, id string) (domain.Booking, error) {
	const query = `
SELECT id, ticket_type_id, customer_name, customer_email, quantity, total_price, booking_date, is_cancelled
FROM bookings
WHERE id = $1`

	var b domain.Booking
	err := r.queryRow(ctx, query, id).
		Scan(&b.ID, &b.TicketTypeID, &b.CustomerName, &b.CustomerEmail, &b.Quantity, &b.TotalPrice, &b.BookingDate, &b.Cancelled)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Booking{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Booking{}, domain.ErrBookingNotFound
		}
		return domain.Booking{}, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// MarkCancelled flips the cancelled flag, but only if it is still false. The
// compare-and-set is one statement, so two concurrent cancels cannot both
// observe an active booking; the loser gets ErrAlreadyCancelled.
func (r *BookingRepository) MarkCancelled(ctx context.Context, id string) error {
	const stmt = `
UPDATE bookings
SET is_cancelled = TRUE
WHERE id = $1 AND is_cancelled = FALSE`

	tag, err := r.exec(ctx, stmt, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("mark booking cancelled: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Zero rows: either the booking is missing or it was already cancelled.
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	return domain.ErrAlreadyCancelled
}

func (r *BookingRepository) GetView(ctx context.Context, id string) (domain.BookingView, error) {
	query := bookingViewQuery + ` WHERE b.id = $1`

	var v domain.BookingView
	err := r.queryRow(ctx, query, id).Scan(bookingViewDest(&v)...)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.BookingView{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.BookingView{}, domain.ErrBookingNotFound
		}
		return domain.BookingView{}, fmt.Errorf("get booking view: %w", err)
	}
	return v, nil
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]domain.BookingView, error) {
	query := bookingViewQuery + ` ORDER BY b.booking_date DESC`
	return r.listViews(ctx, query)
}

func (r *BookingRepository) ListByTicketType(ctx context.Context, ticketTypeID string) ([]domain.BookingView, error) {
	query := bookingViewQuery + ` WHERE b.ticket_type_id = $1 ORDER BY b.booking_date DESC`
	return r.listViews(ctx, query, ticketTypeID)
}

func (r *BookingRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.BookingView, error) {
	query := bookingViewQuery + ` WHERE t.event_id = $1 ORDER BY b.booking_date DESC`
	return r.listViews(ctx, query, eventID)
}

func (r *BookingRepository) ListByCustomerEmail(ctx context.Context, email string, excludeCancelled bool) ([]domain.BookingView, error) {
	query := bookingViewQuery + ` WHERE b.customer_email = $1`
	if excludeCancelled {
		query += ` AND b.is_cancelled = FALSE`
	}
	query += ` ORDER BY b.booking_date DESC`
	return r.listViews(ctx, query, email)
}

const bookingViewQuery = `
SELECT b.id, b.ticket_type_id, b.customer_name, b.customer_email, b.quantity, b.total_price, b.booking_date, b.is_cancelled,
       t.name, t.event_id, e.name
FROM bookings b
JOIN ticket_types t ON t.id = b.ticket_type_id
JOIN events e ON e.id = t.event_id`

func bookingViewDest(v *domain.BookingView) []any {
	return []any{
		&v.ID, &v.TicketTypeID, &v.CustomerName, &v.CustomerEmail, &v.Quantity, &v.TotalPrice, &v.BookingDate, &v.Cancelled,
		&v.TicketTypeName, &v.EventID, &v.EventName,
	}
}

func (r *BookingRepository) listViews(ctx context.Context, query string, args ...any) ([]domain.BookingView, error) {
	rows, err := r.query(ctx, query, args...)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	views := []domain.BookingView{}
	for rows.Next() {
		var v domain.BookingView
		if err := rows.Scan(bookingViewDest(&v)...); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return views, nil
}

func (r *BookingRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *BookingRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *BookingRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
