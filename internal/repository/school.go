package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/edu-events-api/internal/domain"
	"github.com/vietanh2810/edu-events-api/internal/repository/dao"
)

var ErrSchoolNotFound = dao.ErrSchoolNotFound

type SchoolDAO interface {
	InsertWithAdmin(ctx context.Context, school dao.School) (dao.School, error)
	FindByID(ctx context.Context, id uint) (dao.School, error)
	FindByAdmin(ctx context.Context, userID uint) (dao.School, error)
	FindAll(ctx context.Context, page, limit int) ([]dao.School, int64, error)
	Update(ctx context.Context, school dao.School) (dao.School, error)
	ReplaceAdditionalAdmins(ctx context.Context, schoolID uint, admins []dao.User) error
	Delete(ctx context.Context, id uint) error
	CountAll(ctx context.Context) (int64, error)
}

type SchoolRepository struct {
	dao   SchoolDAO
	uRepo *UserRepository
}

func NewSchoolRepository(dao SchoolDAO, uRepo *UserRepository) *SchoolRepository {
	return &SchoolRepository{
		dao:   dao,
		uRepo: uRepo,
	}
}

func (r *SchoolRepository) domainToDao(s domain.School) dao.School {
	return dao.School{
		ID:          s.ID,
		Name:        s.Name,
		Address:     s.Address,
		Description: s.Description,
		AdminID:     s.AdminID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (r *SchoolRepository) daoToDomain(s dao.School) domain.School {
	return domain.School{
		ID:               s.ID,
		Name:             s.Name,
		Address:          s.Address,
		Description:      s.Description,
		AdminID:          s.AdminID,
		AdditionalAdmins: r.uRepo.daosToDomain(s.AdditionalAdmins),
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// CreateWithAdmin creates the school and promotes its primary admin
// atomically.
func (r *SchoolRepository) CreateWithAdmin(ctx context.Context, school domain.School) (domain.School, error) {
	created, err := r.dao.InsertWithAdmin(ctx, r.domainToDao(school))
	if err != nil {
		return domain.School{}, fmt.Errorf("r.dao.InsertWithAdmin -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SchoolRepository) FindByID(ctx context.Context, id uint) (domain.School, error) {
	school, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.School{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(school), nil
}

func (r *SchoolRepository) FindByAdmin(ctx context.Context, userID uint) (domain.School, error) {
	school, err := r.dao.FindByAdmin(ctx, userID)
	if err != nil {
		return domain.School{}, fmt.Errorf("r.dao.FindByAdmin -> %w", err)
	}

	return r.daoToDomain(school), nil
}

func (r *SchoolRepository) FindAll(ctx context.Context, page, limit int) ([]domain.School, int64, error) {
	schools, total, err := r.dao.FindAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	result := make([]domain.School, len(schools))
	for i, s := range schools {
		result[i] = r.daoToDomain(s)
	}

	return result, total, nil
}

func (r *SchoolRepository) Update(ctx context.Context, school domain.School) (domain.School, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(school))
	if err != nil {
		return domain.School{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *SchoolRepository) ReplaceAdditionalAdmins(ctx context.Context, schoolID uint, admins []domain.User) error {
	daoAdmins := make([]dao.User, len(admins))
	for i, admin := range admins {
		daoAdmins[i] = r.uRepo.domainToDao(admin)
	}

	if err := r.dao.ReplaceAdditionalAdmins(ctx, schoolID, daoAdmins); err != nil {
		return fmt.Errorf("r.dao.ReplaceAdditionalAdmins -> %w", err)
	}

	return nil
}

func (r *SchoolRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *SchoolRepository) CountAll(ctx context.Context) (int64, error) {
	total, err := r.dao.CountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountAll -> %w", err)
	}

	return total, nil
}
