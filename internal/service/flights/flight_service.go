package flights

import (
	"context"

	"github.com/mkraev/aeroticket/internal/domain"
	"github.com/mkraev/aeroticket/internal/repository"
)

type FlightUseCase interface {
	Create(ctx context.Context, flight *domain.Flight) error
	GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error)
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, filter domain.FlightFilter, page domain.Page) ([]domain.Flight, int, error)
	List(ctx context.Context, filter domain.FlightFilter, page domain.Page) ([]domain.Flight, int, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, int, error)
	SetFlights(ctx context.Context, flights []domain.Flight, total int) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
}

func NewFlightService(repo repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) Create(ctx context.Context, flight *domain.Flight) error {
	if err := s.repo.Create(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	return s.repo.GetByNumber(ctx, flightNumber)
}

func (s *FlightService) Update(ctx context.Context, flight *domain.Flight) error {
	if err := s.repo.Update(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Search distinguishes "no matches" from an empty catalogue on purpose: the
// endpoint contract reports zero results as ErrNoResults.
func (s *FlightService) Search(ctx context.Context, filter domain.FlightFilter, page domain.Page) ([]domain.Flight, int, error) {
	page = page.Normalize()
	flights, total, err := s.repo.Search(ctx, filter, page)
	if err != nil {
		return nil, 0, err
	}
	if len(flights) == 0 {
		return nil, 0, domain.ErrNoResults
	}
	return flights, total, nil
}

// List serves the plain catalogue and may return an empty page. Only the
// unfiltered first page at the default limit is cached; any other limit
// would hand back a slice cut for a different page size.
func (s *FlightService) List(ctx context.Context, filter domain.FlightFilter, page domain.Page) ([]domain.Flight, int, error) {
	page = page.Normalize()
	cacheable := filter.Empty() && page.Number == 1 && page.Limit == domain.DefaultLimit

	if cacheable && s.cache != nil {
		if cached, total, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, total, nil
		}
	}

	flights, total, err := s.repo.Search(ctx, filter, page)
	if err != nil {
		return nil, 0, err
	}
	if cacheable && s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights, total)
	}
	return flights, total, nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
}

var _ FlightUseCase = (*FlightService)(nil)
