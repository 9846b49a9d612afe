package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/edu-events-api/internal/domain"
	"github.com/vietanh2810/edu-events-api/internal/repository"
)

var (
	ErrUserNotFound = repository.ErrUserNotFound

	// ErrNotAuthorized is the role-mismatch failure: the principal's role is
	// not in the operation's allow-list. Checked before any side effect.
	ErrNotAuthorized = errors.New("user role is not permitted to perform this operation")
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByRole(ctx context.Context, role domain.Role, page, limit int) ([]domain.User, int64, error)
	FindBySchool(ctx context.Context, schoolID uint, role domain.Role, page, limit int) ([]domain.User, int64, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	Deactivate(ctx context.Context, id uint) error
	CountAll(ctx context.Context) (int64, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) GetSchoolStudents(ctx context.Context, schoolID uint, page, limit int) ([]domain.User, int64, error) {
	students, total, err := s.repo.FindBySchool(ctx, schoolID, domain.RoleStudent, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindBySchool -> %w", err)
	}

	return students, total, nil
}
