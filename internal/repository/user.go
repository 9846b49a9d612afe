package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/edu-events-api/internal/domain"
	"github.com/vietanh2810/edu-events-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindByRole(ctx context.Context, role string, page, limit int) ([]dao.User, int64, error)
	FindBySchool(ctx context.Context, schoolID uint, role string, page, limit int) ([]dao.User, int64, error)
	Update(ctx context.Context, user dao.User) (dao.User, error)
	Deactivate(ctx context.Context, id uint) error
	CountAll(ctx context.Context) (int64, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) domainToDao(u domain.User) dao.User {
	return dao.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		Role:      string(u.Role),
		SchoolID:  u.SchoolID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		Role:      domain.Role(u.Role),
		SchoolID:  u.SchoolID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *UserRepository) daosToDomain(users []dao.User) []domain.User {
	result := make([]domain.User, len(users))
	for i, u := range users {
		result[i] = r.daoToDomain(u)
	}

	return result
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(user), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	user, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(user), nil
}

func (r *UserRepository) FindByRole(ctx context.Context, role domain.Role, page, limit int) ([]domain.User, int64, error) {
	users, total, err := r.dao.FindByRole(ctx, string(role), page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindByRole -> %w", err)
	}

	return r.daosToDomain(users), total, nil
}

func (r *UserRepository) FindBySchool(ctx context.Context, schoolID uint, role domain.Role, page, limit int) ([]domain.User, int64, error) {
	users, total, err := r.dao.FindBySchool(ctx, schoolID, string(role), page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindBySchool -> %w", err)
	}

	return r.daosToDomain(users), total, nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) Deactivate(ctx context.Context, id uint) error {
	if err := r.dao.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Deactivate -> %w", err)
	}

	return nil
}

func (r *UserRepository) CountAll(ctx context.Context) (int64, error) {
	total, err := r.dao.CountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountAll -> %w", err)
	}

	return total, nil
}
