package users

import (
	"context"

	"github.com/mkraev/aeroticket/internal/domain"
	"github.com/mkraev/aeroticket/internal/repository"
)

type UserUseCase interface {
	List(ctx context.Context, filter domain.UserFilter, page domain.Page) ([]domain.User, int, error)
	UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error)
}

type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List(ctx context.Context, filter domain.UserFilter, page domain.Page) ([]domain.User, int, error) {
	return s.repo.List(ctx, filter, page.Normalize())
}

func (s *UserService) UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error) {
	return s.repo.UpdateRole(ctx, id, role)
}

var _ UserUseCase = (*UserService)(nil)
