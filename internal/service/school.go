package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/edu-events-api/internal/domain"
	"github.com/vietanh2810/edu-events-api/internal/repository"
)

var ErrSchoolNotFound = repository.ErrSchoolNotFound

type SchoolRepository interface {
	CreateWithAdmin(ctx context.Context, school domain.School) (domain.School, error)
	FindByID(ctx context.Context, id uint) (domain.School, error)
	FindByAdmin(ctx context.Context, userID uint) (domain.School, error)
	FindAll(ctx context.Context, page, limit int) ([]domain.School, int64, error)
	Update(ctx context.Context, school domain.School) (domain.School, error)
	ReplaceAdditionalAdmins(ctx context.Context, schoolID uint, admins []domain.User) error
	Delete(ctx context.Context, id uint) error
	CountAll(ctx context.Context) (int64, error)
}

type SchoolUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type SchoolService struct {
	repo     SchoolRepository
	userRepo SchoolUserRepository
}

func NewSchoolService(repo SchoolRepository, userRepo SchoolUserRepository) *SchoolService {
	return &SchoolService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *SchoolService) GetSchool(ctx context.Context, id uint) (domain.School, error) {
	school, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.School{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return school, nil
}

func (s *SchoolService) ListSchools(ctx context.Context, page, limit int) ([]domain.School, int64, error) {
	schools, total, err := s.repo.FindAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return schools, total, nil
}

// CreateSchool registers a new tenant and links its primary admin. The school
// row and the admin's promotion to school_admin are written in a single
// transaction.
func (s *SchoolService) CreateSchool(ctx context.Context, principal domain.User, school domain.School) (domain.School, error) {
	if principal.Role != domain.RoleSuperAdmin {
		return domain.School{}, ErrNotAuthorized
	}

	if _, err := s.userRepo.FindByID(ctx, school.AdminID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.School{}, ErrUserNotFound
		}

		return domain.School{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	created, err := s.repo.CreateWithAdmin(ctx, school)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.School{}, ErrUserNotFound
		}

		return domain.School{}, fmt.Errorf("s.repo.CreateWithAdmin -> %w", err)
	}

	return created, nil
}

// UpdateSchool edits tenant details. School admins may edit their own school
// only; super admins any. Additional admins are replaced when provided.
func (s *SchoolService) UpdateSchool(ctx context.Context, principal domain.User, schoolID uint, updated domain.School, additionalAdminIDs []uint) (domain.School, error) {
	school, err := s.repo.FindByID(ctx, schoolID)
	if err != nil {
		return domain.School{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if principal.Role != domain.RoleSuperAdmin && !school.IsAdministeredBy(principal.ID) {
		return domain.School{}, ErrNotAuthorized
	}

	school.Name = updated.Name
	school.Address = updated.Address
	school.Description = updated.Description

	saved, err := s.repo.Update(ctx, school)
	if err != nil {
		return domain.School{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	if additionalAdminIDs != nil {
		admins := make([]domain.User, 0, len(additionalAdminIDs))
		for _, id := range additionalAdminIDs {
			admin, err := s.userRepo.FindByID(ctx, id)
			if err != nil {
				return domain.School{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
			}
			admins = append(admins, admin)
		}

		if err = s.repo.ReplaceAdditionalAdmins(ctx, schoolID, admins); err != nil {
			return domain.School{}, fmt.Errorf("s.repo.ReplaceAdditionalAdmins -> %w", err)
		}
		saved.AdditionalAdmins = admins
	}

	return saved, nil
}

func (s *SchoolService) DeleteSchool(ctx context.Context, principal domain.User, schoolID uint) error {
	if principal.Role != domain.RoleSuperAdmin {
		return ErrNotAuthorized
	}

	if err := s.repo.Delete(ctx, schoolID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
