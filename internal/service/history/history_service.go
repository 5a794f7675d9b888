package history

import (
	"context"

	"github.com/mkraev/aeroticket/internal/domain"
	"github.com/mkraev/aeroticket/internal/repository"
)

type HistoryUseCase interface {
	Read(ctx context.Context, userID int64, filter domain.HistoryFilter, page domain.Page) ([]domain.History, int, error)
	Monitor(ctx context.Context, filter domain.HistoryFilter, page domain.Page) ([]domain.History, int, error)
}

type HistoryService struct {
	repo repository.HistoryRepository
}

func NewHistoryService(repo repository.HistoryRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// Read lists the caller's own records, newest first. Zero matches surface
// as ErrNoResults, matching the original endpoint contract.
func (s *HistoryService) Read(ctx context.Context, userID int64, filter domain.HistoryFilter, page domain.Page) ([]domain.History, int, error) {
	filter.UserID = userID
	page = page.Normalize()

	records, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, 0, err
	}
	if len(records) == 0 {
		return nil, 0, domain.ErrNoResults
	}
	return records, total, nil
}

// Monitor is the admin view across all users.
func (s *HistoryService) Monitor(ctx context.Context, filter domain.HistoryFilter, page domain.Page) ([]domain.History, int, error) {
	filter.UserID = 0
	return s.repo.List(ctx, filter, page.Normalize())
}

var _ HistoryUseCase = (*HistoryService)(nil)
