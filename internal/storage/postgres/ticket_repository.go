package postgres

import (
	"context"
	"fmt"

	"github.com/AigennA/EventBokningApp/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TicketRepository is the inventory store: it owns all reads and the two
// atomic mutations of a ticket type's available quantity.
type TicketRepository struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

func (r *TicketRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *TicketRepository) GetTicketType(ctx context.Context, id string) (domain.TicketType, error) {
	const query = `
SELECT id, event_id, name, price, quantity_total, quantity_available
FROM ticket_types
WHERE id = $1`

	var t domain.TicketType
	err := r.queryRow(ctx, query, id).
		Scan(&t.ID, &t.EventID, &t.Name, &t.Price, &t.Total, &t.Available)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.TicketType{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.TicketType{}, domain.ErrTicketTypeNotFound
		}
		return domain.TicketType{}, fmt.Errorf("get ticket type: %w", err)
	}
	return t, nil
}

// Debit decreases available by quantity only if enough remains. The check and
// the write are one statement so concurrent debits serialize on the row; a
// read-then-write sequence in application code would admit overselling.
func (r *TicketRepository) Debit(ctx context.Context, id string, quantity int) (domain.TicketType, error) {
	const stmt = `
UPDATE ticket_types
SET quantity_available = quantity_available - $2
WHERE id = $1 AND quantity_available >= $2
RETURNING id, event_id, name, price, quantity_total, quantity_available`

	var t domain.TicketType
	err := r.queryRow(ctx, stmt, id, quantity).
		Scan(&t.ID, &t.EventID, &t.Name, &t.Price, &t.Total, &t.Available)
	if err == nil {
		return t, nil
	}
	if isInvalidUUID(err) {
		return domain.TicketType{}, domain.ErrInvalidID
	}
	if err != pgx.ErrNoRows {
		return domain.TicketType{}, fmt.Errorf("debit ticket type: %w", err)
	}

	// Zero rows means the ticket type is missing or short on inventory.
	// Re-read inside the same transaction to tell the two apart and to report
	// the available count as of the failed attempt.
	current, err := r.GetTicketType(ctx, id)
	if err != nil {
		return domain.TicketType{}, err
	}
	return domain.TicketType{}, &domain.InsufficientTicketsError{
		TicketTypeID: id,
		Requested:    quantity,
		Available:    current.Available,
	}
}

// Credit returns quantity to available. Exceeding total indicates a ledger
// bug (a double credit); it is surfaced as an invariant violation so the
// surrounding transaction rolls the credit back rather than clamping it.
func (r *TicketRepository) Credit(ctx context.Context, id string, quantity int) (domain.TicketType, error) {
	const stmt = `
UPDATE ticket_types
SET quantity_available = quantity_available + $2
WHERE id = $1
RETURNING id, event_id, name, price, quantity_total, quantity_available`

	var t domain.TicketType
	err := r.queryRow(ctx, stmt, id, quantity).
		Scan(&t.ID, &t.EventID, &t.Name, &t.Price, &t.Total, &t.Available)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.TicketType{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.TicketType{}, domain.ErrTicketTypeNotFound
		}
		return domain.TicketType{}, fmt.Errorf("credit ticket type: %w", err)
	}
	if t.Available > t.Total {
		return domain.TicketType{}, &domain.InventoryInvariantError{
			TicketTypeID: id,
			Available:    t.Available,
			Total:        t.Total,
		}
	}
	return t, nil
}

func (r *TicketRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
