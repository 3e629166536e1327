package app

import (
	"context"
	"time"

	"github.com/AigennA/EventBokningApp/internal/clock"
	"github.com/AigennA/EventBokningApp/internal/domain"
	"github.com/google/uuid"
)

type CatalogRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateVenue(ctx context.Context, venue domain.Venue) error
	GetVenue(ctx context.Context, id string) (domain.Venue, error)
	ListVenues(ctx context.Context) ([]domain.Venue, error)
	CreateEvent(ctx context.Context, event domain.Event) error
	CreateTicketType(ctx context.Context, t domain.TicketType) error
	ListEvents(ctx context.Context) ([]domain.EventSummary, error)
	ListUpcomingEvents(ctx context.Context, after time.Time) ([]domain.EventSummary, error)
	GetEventDetail(ctx context.Context, id string) (domain.EventDetail, error)
}

// CatalogService owns venue and event management, including the one-time
// creation of ticket types. Available quantity starts equal to total and is
// never touched here again.
type CatalogService struct {
	repo  CatalogRepository
	clock clock.Clock
}

func NewCatalogService(repo CatalogRepository, clk clock.Clock) *CatalogService {
	return &CatalogService{
		repo:  repo,
		clock: clk,
	}
}

type CreateVenueInput struct {
	Name     string
	Address  string
	City     string
	Capacity int
}

func (s *CatalogService) CreateVenue(ctx context.Context, in CreateVenueInput) (domain.Venue, error) {
	if in.Name == "" {
		return domain.Venue{}, domain.ErrVenueNameRequired
	}
	if in.Capacity <= 0 {
		return domain.Venue{}, domain.ErrInvalidCapacity
	}

	venue := domain.Venue{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Address:  in.Address,
		City:     in.City,
		Capacity: in.Capacity,
	}

	if err := s.repo.CreateVenue(ctx, venue); err != nil {
		return domain.Venue{}, err
	}
	return venue, nil
}

func (s *CatalogService) GetVenue(ctx context.Context, id string) (domain.Venue, error) {
	if id == "" {
		return domain.Venue{}, domain.ErrInvalidID
	}
	return s.repo.GetVenue(ctx, id)
}

func (s *CatalogService) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	return s.repo.ListVenues(ctx)
}

type CreateTicketTypeInput struct {
	Name  string
	Price float64
	Total int
}

type CreateEventInput struct {
	VenueID     string
	Name        string
	Description string
	Date        time.Time
	TicketTypes []CreateTicketTypeInput
}

// CreateEvent stores the event and all its ticket types in one transaction,
// so a half-created event is never observable.
func (s *CatalogService) CreateEvent(ctx context.Context, in CreateEventInput) (domain.EventDetail, error) {
	if in.VenueID == "" {
		return domain.EventDetail{}, domain.ErrInvalidID
	}
	if in.Name == "" {
		return domain.EventDetail{}, domain.ErrEventNameRequired
	}
	if len(in.TicketTypes) == 0 {
		return domain.EventDetail{}, domain.ErrTicketsRequired
	}
	for _, t := range in.TicketTypes {
		if t.Name == "" {
			return domain.EventDetail{}, domain.ErrTicketNameRequired
		}
		if t.Price < 0 {
			return domain.EventDetail{}, domain.ErrInvalidPrice
		}
		if t.Total <= 0 {
			return domain.EventDetail{}, domain.ErrInvalidQuantity
		}
	}

	date := in.Date
	if date.IsZero() {
		date = s.clock.Now()
	}

	event := domain.Event{
		ID:          uuid.NewString(),
		VenueID:     in.VenueID,
		Name:        in.Name,
		Description: in.Description,
		Date:        date,
	}

	tickets := make([]domain.TicketType, 0, len(in.TicketTypes))
	for _, t := range in.TicketTypes {
		tickets = append(tickets, domain.TicketType{
			ID:        uuid.NewString(),
			EventID:   event.ID,
			Name:      t.Name,
			Price:     t.Price,
			Total:     t.Total,
			Available: t.Total,
		})
	}

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.CreateEvent(txCtx, event); err != nil {
			return err
		}
		for _, t := range tickets {
			if err := s.repo.CreateTicketType(txCtx, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.EventDetail{}, err
	}

	venue, err := s.repo.GetVenue(ctx, in.VenueID)
	if err != nil {
		return domain.EventDetail{}, err
	}

	return domain.EventDetail{
		Event:       event,
		Venue:       venue,
		TicketTypes: tickets,
	}, nil
}

func (s *CatalogService) ListEvents(ctx context.Context) ([]domain.EventSummary, error) {
	return s.repo.ListEvents(ctx)
}

func (s *CatalogService) ListUpcomingEvents(ctx context.Context) ([]domain.EventSummary, error) {
	return s.repo.ListUpcomingEvents(ctx, s.clock.Now())
}

func (s *CatalogService) GetEvent(ctx context.Context, id string) (domain.EventDetail, error) {
	if id == "" {
		return domain.EventDetail{}, domain.ErrInvalidID
	}
	return s.repo.GetEventDetail(ctx, id)
}
