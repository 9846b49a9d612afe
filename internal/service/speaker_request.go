package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/edu-events-api/internal/domain"
	"github.com/vietanh2810/edu-events-api/internal/repository"
)

var (
	ErrSpeakerRequestNotFound   = repository.ErrSpeakerRequestNotFound
	ErrDuplicateApplication     = repository.ErrDuplicateApplication
	ErrSpeakerRequestNotPending = repository.ErrSpeakerRequestNotPending
	ErrSpeakerRequestApproved   = repository.ErrSpeakerRequestApproved
	ErrSpeakerCapacity          = repository.ErrSpeakerCapacity

	ErrEventNotPublished = errors.New("event is not accepting speaker applications")
	ErrNotApplicant      = errors.New("user is not the applicant of this request")
)

type SpeakerRequestRepository interface {
	Create(ctx context.Context, request domain.SpeakerRequest) (domain.SpeakerRequest, error)
	FindByID(ctx context.Context, id uint) (domain.SpeakerRequest, error)
	FindByEventAndSpeaker(ctx context.Context, eventID, speakerID uint) (domain.SpeakerRequest, error)
	FindAll(ctx context.Context, speakerID, eventID uint, status domain.RequestStatus, page, limit int) ([]domain.SpeakerRequest, int64, error)
	FindByOrganizerSchool(ctx context.Context, schoolID uint, status domain.RequestStatus, page, limit int) ([]domain.SpeakerRequest, int64, error)
	Update(ctx context.Context, request domain.SpeakerRequest) (domain.SpeakerRequest, error)
	Review(ctx context.Context, requestID, reviewerID uint, status domain.RequestStatus, note string) (domain.SpeakerRequest, error)
	Delete(ctx context.Context, id uint) error
	CountApprovedByEvent(ctx context.Context, eventID uint) (int64, error)
	CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error)
}

type SpeakerEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

type SpeakerRequestService struct {
	repo       SpeakerRequestRepository
	eventRepo  SpeakerEventRepository
	schoolRepo RequestSchoolRepository
}

func NewSpeakerRequestService(repo SpeakerRequestRepository, eventRepo SpeakerEventRepository, schoolRepo RequestSchoolRepository) *SpeakerRequestService {
	return &SpeakerRequestService{
		repo:       repo,
		eventRepo:  eventRepo,
		schoolRepo: schoolRepo,
	}
}

// Submit files a speaker application against a published event. The duplicate
// pre-check here is backed by the unique index at the storage layer; both
// paths surface ErrDuplicateApplication.
func (s *SpeakerRequestService) Submit(ctx context.Context, principal domain.User, request domain.SpeakerRequest) (domain.SpeakerRequest, error) {
	if principal.Role != domain.RoleSpeaker {
		return domain.SpeakerRequest{}, ErrNotAuthorized
	}

	event, err := s.eventRepo.FindByID(ctx, request.EventID)
	if err != nil {
		return domain.SpeakerRequest{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}
	if event.Status != domain.EventPublished {
		return domain.SpeakerRequest{}, ErrEventNotPublished
	}

	if _, err = s.repo.FindByEventAndSpeaker(ctx, request.EventID, principal.ID); err == nil {
		return domain.SpeakerRequest{}, ErrDuplicateApplication
	} else if !errors.Is(err, repository.ErrSpeakerRequestNotFound) {
		return domain.SpeakerRequest{}, fmt.Errorf("s.repo.FindByEventAndSpeaker -> %w", err)
	}

	approved, err := s.repo.CountApprovedByEvent(ctx, request.EventID)
	if err != nil {
		return domain.SpeakerRequest{}, fmt.Errorf("s.repo.CountApprovedByEvent -> %w", err)
	}
	if approved >= int64(event.MaxSpeakers) {
		return domain.SpeakerRequest{}, ErrSpeakerCapacity
	}

	request.SpeakerID = principal.ID
	request.Status = domain.RequestPending
	request.ReviewedBy = nil

	created, err := s.repo.Create(ctx, request)
	if err != nil {
		return domain.SpeakerRequest{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Edit lets the applicant revise a not-yet-finalized application; the status
// drops back to pending.
func (s *SpeakerRequestService) Edit(ctx context.Context, principal domain.User, requestID uint, updated domain.SpeakerRequest) (domain.SpeakerRequest, error) {
	request, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		return domain.SpeakerRequest{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if request.SpeakerID != principal.ID {
		return domain.SpeakerRequest{}, ErrNotApplicant
	}

	if request.Status.Final() {
		return domain.SpeakerRequest{}, ErrRequestFinalized
	}

	request.Topic = updated.Topic
	request.Duration = updated.Duration
	request.Abstract = updated.Abstract
	request.Status = domain.RequestPending

	saved, err := s.repo.Update(ctx, request)
	if err != nil {
		return domain.SpeakerRequest{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return saved, nil
}

// Review finalizes an application. School admins may only review requests
// against events their own school hosts; super admins are unrestricted.
// Approval re-checks the speaker ceiling and appends the event's speaker
// slot atomically in the repository.
func (s *SpeakerRequestService) Review(ctx context.Context, principal domain.User, requestID uint, status domain.RequestStatus, note string) (domain.SpeakerRequest, error) {
	switch status {
	case domain.RequestApproved, domain.RequestRejected, domain.RequestWaitlisted:
	default:
		return domain.SpeakerRequest{}, ErrInvalidReviewStatus
	}

	request, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		return domain.SpeakerRequest{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	switch principal.Role {
	case domain.RoleSuperAdmin:
	case domain.RoleSchoolAdmin:
		event, err := s.eventRepo.FindByID(ctx, request.EventID)
		if err != nil {
			return domain.SpeakerRequest{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
		}

		school, err := s.schoolRepo.FindByID(ctx, event.HostSchoolID)
		if err != nil {
			return domain.SpeakerRequest{}, fmt.Errorf("s.schoolRepo.FindByID -> %w", err)
		}
		if !school.IsAdministeredBy(principal.ID) {
			return domain.SpeakerRequest{}, ErrNotAuthorized
		}
	default:
		return domain.SpeakerRequest{}, ErrNotAuthorized
	}

	reviewed, err := s.repo.Review(ctx, requestID, principal.ID, status, note)
	if err != nil {
		return domain.SpeakerRequest{}, fmt.Errorf("s.repo.Review -> %w", err)
	}

	return reviewed, nil
}

func (s *SpeakerRequestService) Delete(ctx context.Context, principal domain.User, requestID uint) error {
	request, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if principal.Role != domain.RoleSuperAdmin && request.SpeakerID != principal.ID {
		return ErrNotApplicant
	}

	if err := s.repo.Delete(ctx, requestID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *SpeakerRequestService) Get(ctx context.Context, principal domain.User, requestID uint) (domain.SpeakerRequest, error) {
	request, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		return domain.SpeakerRequest{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if principal.Role == domain.RoleSuperAdmin || request.SpeakerID == principal.ID {
		return request, nil
	}

	if principal.Role == domain.RoleSchoolAdmin {
		event, err := s.eventRepo.FindByID(ctx, request.EventID)
		if err != nil {
			return domain.SpeakerRequest{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
		}

		school, err := s.schoolRepo.FindByID(ctx, event.HostSchoolID)
		if err != nil {
			return domain.SpeakerRequest{}, fmt.Errorf("s.schoolRepo.FindByID -> %w", err)
		}
		if school.IsAdministeredBy(principal.ID) {
			return request, nil
		}
	}

	return domain.SpeakerRequest{}, ErrNotApplicant
}

// List scopes by role: speakers see their own applications, school admins
// see applications against their school's events, super admins see all.
func (s *SpeakerRequestService) List(ctx context.Context, principal domain.User, eventID uint, status domain.RequestStatus, page, limit int) ([]domain.SpeakerRequest, int64, error) {
	switch principal.Role {
	case domain.RoleSuperAdmin:
		requests, total, err := s.repo.FindAll(ctx, 0, eventID, status, page, limit)
		if err != nil {
			return nil, 0, fmt.Errorf("s.repo.FindAll -> %w", err)
		}

		return requests, total, nil

	case domain.RoleSpeaker:
		requests, total, err := s.repo.FindAll(ctx, principal.ID, eventID, status, page, limit)
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

		requests, total, err := s.repo.FindByOrganizerSchool(ctx, school.ID, status, page, limit)
		if err != nil {
			return nil, 0, fmt.Errorf("s.repo.FindByOrganizerSchool -> %w", err)
		}

		return requests, total, nil
	}

	return nil, 0, ErrNotAuthorized
}
