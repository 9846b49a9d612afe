package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vietanh2810/edu-events-api/internal/domain"
)

type StatsUserRepository interface {
	CountAll(ctx context.Context) (int64, error)
	FindByRole(ctx context.Context, role domain.Role, page, limit int) ([]domain.User, int64, error)
	Deactivate(ctx context.Context, id uint) error
}

type StatsSchoolRepository interface {
	CountAll(ctx context.Context) (int64, error)
}

type StatsEventRepository interface {
	CountAll(ctx context.Context) (int64, error)
	CountAfter(ctx context.Context, t time.Time) (int64, error)
}

type StatsRequestRepository interface {
	CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error)
}

type StatsRepository interface {
	CountPendingEventRequests(ctx context.Context) (int64, error)
	CountPendingSpeakerRequests(ctx context.Context) (int64, error)
	TopSchoolsByEvents(ctx context.Context, n int) ([]domain.SchoolRank, error)
}

type StatsService struct {
	repo           StatsRepository
	userRepo       StatsUserRepository
	schoolRepo     StatsSchoolRepository
	eventRepo      StatsEventRepository
	eventReqRepo   StatsRequestRepository
	speakerReqRepo StatsRequestRepository
}

func NewStatsService(
	repo StatsRepository,
	userRepo StatsUserRepository,
	schoolRepo StatsSchoolRepository,
	eventRepo StatsEventRepository,
	eventReqRepo StatsRequestRepository,
	speakerReqRepo StatsRequestRepository,
) *StatsService {
	return &StatsService{
		repo:           repo,
		userRepo:       userRepo,
		schoolRepo:     schoolRepo,
		eventRepo:      eventRepo,
		eventReqRepo:   eventReqRepo,
		speakerReqRepo: speakerReqRepo,
	}
}

func (s *StatsService) Dashboard(ctx context.Context, principal domain.User) (domain.DashboardStats, error) {
	if principal.Role != domain.RoleSuperAdmin {
		return domain.DashboardStats{}, ErrNotAuthorized
	}

	var stats domain.DashboardStats
	var err error

	if stats.TotalUsers, err = s.userRepo.CountAll(ctx); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.userRepo.CountAll -> %w", err)
	}

	if stats.TotalSchools, err = s.schoolRepo.CountAll(ctx); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.schoolRepo.CountAll -> %w", err)
	}

	if stats.TotalEvents, err = s.eventRepo.CountAll(ctx); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.eventRepo.CountAll -> %w", err)
	}

	if stats.UpcomingEvents, err = s.eventRepo.CountAfter(ctx, time.Now()); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.eventRepo.CountAfter -> %w", err)
	}

	if stats.PendingEventRequests, err = s.repo.CountPendingEventRequests(ctx); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.repo.CountPendingEventRequests -> %w", err)
	}

	if stats.PendingSpeakerRequests, err = s.repo.CountPendingSpeakerRequests(ctx); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.repo.CountPendingSpeakerRequests -> %w", err)
	}

	return stats, nil
}

func (s *StatsService) RequestBreakdown(ctx context.Context, principal domain.User) (domain.RequestBreakdown, error) {
	if principal.Role != domain.RoleSuperAdmin {
		return domain.RequestBreakdown{}, ErrNotAuthorized
	}

	eventCounts, err := s.eventReqRepo.CountByStatus(ctx)
	if err != nil {
		return domain.RequestBreakdown{}, fmt.Errorf("s.eventReqRepo.CountByStatus -> %w", err)
	}

	speakerCounts, err := s.speakerReqRepo.CountByStatus(ctx)
	if err != nil {
		return domain.RequestBreakdown{}, fmt.Errorf("s.speakerReqRepo.CountByStatus -> %w", err)
	}

	return domain.RequestBreakdown{
		EventRequests:   eventCounts,
		SpeakerRequests: speakerCounts,
	}, nil
}

func (s *StatsService) TopSchools(ctx context.Context, principal domain.User, n int) ([]domain.SchoolRank, error) {
	if principal.Role != domain.RoleSuperAdmin {
		return nil, ErrNotAuthorized
	}

	if n <= 0 {
		n = 5
	}

	ranks, err := s.repo.TopSchoolsByEvents(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("s.repo.TopSchoolsByEvents -> %w", err)
	}

	return ranks, nil
}

func (s *StatsService) ListByRole(ctx context.Context, principal domain.User, role domain.Role, page, limit int) ([]domain.User, int64, error) {
	if principal.Role != domain.RoleSuperAdmin {
		return nil, 0, ErrNotAuthorized
	}

	users, total, err := s.userRepo.FindByRole(ctx, role, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("s.userRepo.FindByRole -> %w", err)
	}

	return users, total, nil
}

// DeactivateUser disables an account without deleting it. Login rejects
// inactive users while their history stays intact.
func (s *StatsService) DeactivateUser(ctx context.Context, principal domain.User, userID uint) error {
	if principal.Role != domain.RoleSuperAdmin {
		return ErrNotAuthorized
	}

	if err := s.userRepo.Deactivate(ctx, userID); err != nil {
		return fmt.Errorf("s.userRepo.Deactivate -> %w", err)
	}

	return nil
}
