package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/edu-events-api/internal/domain"
	"github.com/vietanh2810/edu-events-api/internal/repository"
)

var (
	ErrEventRequestNotFound = repository.ErrEventRequestNotFound
	ErrRequestNotPending    = repository.ErrRequestNotPending
	ErrRequestApproved      = repository.ErrRequestApproved

	// ErrNotAssociated means a school_admin without a school tried to submit.
	ErrNotAssociated = errors.New("user is not associated with any school")

	ErrNotRequestOwner     = errors.New("user is not the owner of this request")
	ErrRequestFinalized    = errors.New("request has been finalized and can no longer be edited")
	ErrInvalidReviewStatus = errors.New("invalid review status")
)

type EventRequestRepository interface {
	Create(ctx context.Context, request domain.EventRequest) (domain.EventRequest, error)
	FindByID(ctx context.Context, id uint) (domain.EventRequest, error)
	FindAll(ctx context.Context, schoolID uint, status domain.RequestStatus, page, limit int) ([]domain.EventRequest, int64, error)
	Update(ctx context.Context, request domain.EventRequest) (domain.EventRequest, error)
	Review(ctx context.Context, requestID, reviewerID uint, status domain.RequestStatus, note string) (domain.EventRequest, error)
	Delete(ctx context.Context, id uint) error
	CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error)
}

type RequestSchoolRepository interface {
	FindByID(ctx context.Context, id uint) (domain.School, error)
	FindByAdmin(ctx context.Context, userID uint) (domain.School, error)
}

type EventRequestService struct {
	repo       EventRequestRepository
	schoolRepo RequestSchoolRepository
}

func NewEventRequestService(repo EventRequestRepository, schoolRepo RequestSchoolRepository) *EventRequestService {
	return &EventRequestService{
		repo:       repo,
		schoolRepo: schoolRepo,
	}
}

// Submit files a new proposal on behalf of the principal's school. The school
// is resolved from the principal's admin membership, never taken from the
// request body.
func (s *EventRequestService) Submit(ctx context.Context, principal domain.User, request domain.EventRequest) (domain.EventRequest, error) {
	if principal.Role != domain.RoleSchoolAdmin {
		return domain.EventRequest{}, ErrNotAuthorized
	}

	school, err := s.schoolRepo.FindByAdmin(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, repository.ErrSchoolNotFound) {
			return domain.EventRequest{}, ErrNotAssociated
		}

		return domain.EventRequest{}, fmt.Errorf("s.schoolRepo.FindByAdmin -> %w", err)
	}

	request.SchoolID = school.ID
	request.RequestedBy = principal.ID
	request.Status = domain.RequestPending
	request.ReviewedBy = nil
	request.ApprovedEventID = nil

	created, err := s.repo.Create(ctx, request)
	if err != nil {
		return domain.EventRequest{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Edit overwrites the proposal's fields and force-sets the status back to
// pending, which is how a needs_revision request re-enters the review queue.
// Finalized requests refuse edits.
func (s *EventRequestService) Edit(ctx context.Context, principal domain.User, requestID uint, updated domain.EventRequest) (domain.EventRequest, error) {
	request, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		return domain.EventRequest{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if request.RequestedBy != principal.ID {
		return domain.EventRequest{}, ErrNotRequestOwner
	}

	if request.Status.Final() {
		return domain.EventRequest{}, ErrRequestFinalized
	}

	request.Title = updated.Title
	request.Description = updated.Description
	request.ProposedDate = updated.ProposedDate
	request.Location = updated.Location
	request.ExpectedCapacity = updated.ExpectedCapacity
	request.MaxSpeakers = updated.MaxSpeakers
	request.Price = updated.Price
	request.Requirements = updated.Requirements
	request.Justification = updated.Justification
	request.Status = domain.RequestPending

	saved, err := s.repo.Update(ctx, request)
	if err != nil {
		return domain.EventRequest{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return saved, nil
}

// Review finalizes a pending proposal. Only super admins review; school
// admins are refused regardless of ownership. Approval materializes the
// event atomically in the repository.
func (s *EventRequestService) Review(ctx context.Context, principal domain.User, requestID uint, status domain.RequestStatus, note string) (domain.EventRequest, error) {
	if principal.Role != domain.RoleSuperAdmin {
		return domain.EventRequest{}, ErrNotAuthorized
	}

	switch status {
	case domain.RequestApproved, domain.RequestRejected, domain.RequestNeedsRevision:
	default:
		return domain.EventRequest{}, ErrInvalidReviewStatus
	}

	reviewed, err := s.repo.Review(ctx, requestID, principal.ID, status, note)
	if err != nil {
		return domain.EventRequest{}, fmt.Errorf("s.repo.Review -> %w", err)
	}

	return reviewed, nil
}

func (s *EventRequestService) Delete(ctx context.Context, principal domain.User, requestID uint) error {
	request, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if principal.Role != domain.RoleSuperAdmin && request.RequestedBy != principal.ID {
		return ErrNotRequestOwner
	}

	if err := s.repo.Delete(ctx, requestID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *EventRequestService) Get(ctx context.Context, principal domain.User, requestID uint) (domain.EventRequest, error) {
	request, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		return domain.EventRequest{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if principal.Role != domain.RoleSuperAdmin && request.RequestedBy != principal.ID {
		return domain.EventRequest{}, ErrNotRequestOwner
	}

	return request, nil
}

// List scopes results by role: super admins see everything, school admins
// see their own school's requests.
func (s *EventRequestService) List(ctx context.Context, principal domain.User, status domain.RequestStatus, page, limit int) ([]domain.EventRequest, int64, error) {
	switch principal.Role {
	case domain.RoleSuperAdmin:
		requests, total, err := s.repo.FindAll(ctx, 0, status, page, limit)
		if err != nil {
			return nil, 0, fmt.Errorf("s.repo.FindAll -> %w", err)
		}

		return requests, total, nil

	case domain.RoleSchoolAdmin:
		school, err := s.schoolRepo.FindByAdmin(ctx, principal.ID)
		if err != nil {
			if errors.Is(err, repository.ErrSchoolNotFound) {
				return nil, 0, ErrNotAssociated
			}

			return nil, 0, fmt.Errorf("s.schoolRepo.FindByAdmin -> %w", err)
		}

		requests, total, err := s.repo.FindAll(ctx, school.ID, status, page, limit)
		if err != nil {
			return nil, 0, fmt.Errorf("s.repo.FindAll -> %w", err)
		}

		return requests, total, nil
	}

	return nil, 0, ErrNotAuthorized
}
