package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/AigennA/EventBokningApp/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository persists venues, events and the ticket types created with
// them. Ticket type quantities are only ever initialized here; the inventory
// store owns every later mutation of quantity_available.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *CatalogRepository) CreateVenue(ctx context.Context, venue domain.Venue) error {
	const stmt = `
INSERT INTO venues (id, name, address, city, capacity)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.exec(ctx, stmt, venue.ID, venue.Name, venue.Address, venue.City, venue.Capacity)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create venue: %w", err)
	}
	return nil
}

func (r *CatalogRepository) GetVenue(ctx context.Context, id string) (domain.Venue, error) {
	const query = `
SELECT id, name, address, city, capacity
FROM venues
WHERE id = $1`

	var v domain.Venue
	err := r.queryRow(ctx, query, id).Scan(&v.ID, &v.Name, &v.Address, &v.City, &v.Capacity)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Venue{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Venue{}, domain.ErrVenueNotFound
		}
		return domain.Venue{}, fmt.Errorf("get venue: %w", err)
	}
	return v, nil
}

func (r *CatalogRepository) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	const query = `
SELECT id, name, address, city, capacity
FROM venues
ORDER BY name ASC`

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	defer rows.Close()

	venues := []domain.Venue{}
	for rows.Next() {
		var v domain.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.City, &v.Capacity); err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, v)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate venues: %w", rows.Err())
	}
	return venues, nil
}

func (r *CatalogRepository) CreateEvent(ctx context.Context, event domain.Event) error {
	const stmt = `
INSERT INTO events (id, venue_id, name, description, date)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.exec(ctx, stmt, event.ID, event.VenueID, event.Name, event.Description, event.Date)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrVenueNotFound
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *CatalogRepository) CreateTicketType(ctx context.Context, t domain.TicketType) error {
	const stmt = `
INSERT INTO ticket_types (id, event_id, name, price, quantity_total, quantity_available)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.exec(ctx, stmt, t.ID, t.EventID, t.Name, t.Price, t.Total, t.Available)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("create ticket type: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListEvents(ctx context.Context) ([]domain.EventSummary, error) {
	return r.listEvents(ctx, eventSummaryQuery+` ORDER BY e.date ASC`)
}

func (r *CatalogRepository) ListUpcomingEvents(ctx context.Context, after time.Time) ([]domain.EventSummary, error) {
	return r.listEvents(ctx, eventSummaryQuery+` WHERE e.date > $1 ORDER BY e.date ASC`, after)
}

const eventSummaryQuery = `
SELECT e.id, e.venue_id, e.name, e.description, e.date,
       v.id, v.name, v.address, v.city, v.capacity
FROM events e
JOIN venues v ON v.id = e.venue_id`

func (r *CatalogRepository) listEvents(ctx context.Context, query string, args ...any) ([]domain.EventSummary, error) {
	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []domain.EventSummary{}
	for rows.Next() {
		var s domain.EventSummary
		err := rows.Scan(
			&s.ID, &s.VenueID, &s.Name, &s.Description, &s.Date,
			&s.Venue.ID, &s.Venue.Name, &s.Venue.Address, &s.Venue.City, &s.Venue.Capacity,
		)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate events: %w", rows.Err())
	}
	return events, nil
}

func (r *CatalogRepository) GetEventDetail(ctx context.Context, id string) (domain.EventDetail, error) {
	query := eventSummaryQuery + ` WHERE e.id = $1`

	var d domain.EventDetail
	err := r.queryRow(ctx, query, id).Scan(
		&d.ID, &d.VenueID, &d.Name, &d.Description, &d.Date,
		&d.Venue.ID, &d.Venue.Name, &d.Venue.Address, &d.Venue.City, &d.Venue.Capacity,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.EventDetail{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.EventDetail{}, domain.ErrEventNotFound
		}
		return domain.EventDetail{}, fmt.Errorf("get event: %w", err)
	}

	const ticketQuery = `
SELECT id, event_id, name, price, quantity_total, quantity_available
FROM ticket_types
WHERE event_id = $1
ORDER BY name ASC`

	rows, err := r.query(ctx, ticketQuery, id)
	if err != nil {
		return domain.EventDetail{}, fmt.Errorf("list ticket types: %w", err)
	}
	defer rows.Close()

	d.TicketTypes = []domain.TicketType{}
	for rows.Next() {
		var t domain.TicketType
		if err := rows.Scan(&t.ID, &t.EventID, &t.Name, &t.Price, &t.Total, &t.Available); err != nil {
			return domain.EventDetail{}, fmt.Errorf("scan ticket type: %w", err)
		}
		d.TicketTypes = append(d.TicketTypes, t)
	}
	if rows.Err() != nil {
		return domain.EventDetail{}, fmt.Errorf("iterate ticket types: %w", rows.Err())
	}
	return d, nil
}

func (r *CatalogRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *CatalogRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *CatalogRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
