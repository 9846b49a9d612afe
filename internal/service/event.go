package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vietanh2810/edu-events-api/internal/domain"
	"github.com/vietanh2810/edu-events-api/internal/repository"
)

var (
	ErrEventNotFound        = repository.ErrEventNotFound
	ErrEventFull            = repository.ErrEventFull
	ErrAlreadyRegistered    = repository.ErrAlreadyRegistered
	ErrRegistrationNotFound = repository.ErrRegistrationNotFound
	ErrSpeakerNotFound      = repository.ErrSpeakerNotFound
	ErrDuplicateSpeaker     = repository.ErrDuplicateSpeaker
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindPublished(ctx context.Context, page, limit int) ([]domain.Event, int64, error)
	FindBySchool(ctx context.Context, schoolID uint, page, limit int) ([]domain.Event, int64, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
	Register(ctx context.Context, eventID, userID uint) (domain.EventRegistration, error)
	Unregister(ctx context.Context, eventID, userID uint) error
	FindRegistration(ctx context.Context, eventID, userID uint) (domain.EventRegistration, error)
	AddSpeaker(ctx context.Context, speaker domain.EventSpeaker) (domain.EventSpeaker, error)
	FindSpeaker(ctx context.Context, eventID, speakerID uint) (domain.EventSpeaker, error)
	FindSpeakers(ctx context.Context, eventID uint) ([]domain.EventSpeaker, error)
	ReviewSpeaker(ctx context.Context, eventID, speakerID uint, status domain.SpeakerStatus) (domain.EventSpeaker, error)
	CountApprovedSpeakers(ctx context.Context, eventID uint) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountAfter(ctx context.Context, t time.Time) (int64, error)
}

type EventSchoolRepository interface {
	FindByID(ctx context.Context, id uint) (domain.School, error)
	FindByAdmin(ctx context.Context, userID uint) (domain.School, error)
}

type EventService struct {
	repo       EventRepository
	schoolRepo EventSchoolRepository
}

func NewEventService(repo EventRepository, schoolRepo EventSchoolRepository) *EventService {
	return &EventService{
		repo:       repo,
		schoolRepo: schoolRepo,
	}
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) ListPublished(ctx context.Context, page, limit int) ([]domain.Event, int64, error) {
	events, total, err := s.repo.FindPublished(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindPublished -> %w", err)
	}

	return events, total, nil
}

func (s *EventService) ListBySchool(ctx context.Context, schoolID uint, page, limit int) ([]domain.Event, int64, error) {
	events, total, err := s.repo.FindBySchool(ctx, schoolID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindBySchool -> %w", err)
	}

	return events, total, nil
}

// CreateEvent creates an event directly, outside the proposal workflow.
// School admins create for their own school only; super admins for any.
func (s *EventService) CreateEvent(ctx context.Context, principal domain.User, event domain.Event) (domain.Event, error) {
	switch principal.Role {
	case domain.RoleSuperAdmin:
	case domain.RoleSchoolAdmin:
		school, err := s.schoolRepo.FindByAdmin(ctx, principal.ID)
		if err != nil {
			if errors.Is(err, repository.ErrSchoolNotFound) {
				return domain.Event{}, ErrNotAssociated
			}

			return domain.Event{}, fmt.Errorf("s.schoolRepo.FindByAdmin -> %w", err)
		}

		event.HostSchoolID = school.ID
		event.OrganizerID = principal.ID
	default:
		return domain.Event{}, ErrNotAuthorized
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, principal domain.User, eventID uint, updated domain.Event) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.checkEventAdmin(ctx, principal, event); err != nil {
		return domain.Event{}, err
	}

	event.Title = updated.Title
	event.Description = updated.Description
	event.Date = updated.Date
	event.Location = updated.Location
	event.Capacity = updated.Capacity
	event.MaxSpeakers = updated.MaxSpeakers
	event.Price = updated.Price
	event.Requirements = updated.Requirements
	event.IsPublic = updated.IsPublic
	if updated.Status != "" {
		event.Status = updated.Status
	}

	saved, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return saved, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, principal domain.User, eventID uint) error {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.checkEventAdmin(ctx, principal, event); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// Register adds the student to the event. The capacity ceiling and the
// duplicate check are enforced at the storage layer in one transaction.
func (s *EventService) Register(ctx context.Context, principal domain.User, eventID uint) (domain.EventRegistration, error) {
	if principal.Role != domain.RoleStudent {
		return domain.EventRegistration{}, ErrNotAuthorized
	}

	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return domain.EventRegistration{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if event.Status != domain.EventPublished {
		return domain.EventRegistration{}, ErrEventNotPublished
	}

	registration, err := s.repo.Register(ctx, eventID, principal.ID)
	if err != nil {
		return domain.EventRegistration{}, fmt.Errorf("s.repo.Register -> %w", err)
	}

	return registration, nil
}

func (s *EventService) Unregister(ctx context.Context, principal domain.User, eventID uint) error {
	if err := s.repo.Unregister(ctx, eventID, principal.ID); err != nil {
		return fmt.Errorf("s.repo.Unregister -> %w", err)
	}

	return nil
}

// ApplySpeaker is the legacy in-event application path: it appends a pending
// speaker slot directly onto the event.
func (s *EventService) ApplySpeaker(ctx context.Context, principal domain.User, eventID uint, topic string, duration int) (domain.EventSpeaker, error) {
	if principal.Role != domain.RoleSpeaker {
		return domain.EventSpeaker{}, ErrNotAuthorized
	}

	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return domain.EventSpeaker{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if event.Status != domain.EventPublished {
		return domain.EventSpeaker{}, ErrEventNotPublished
	}

	speaker, err := s.repo.AddSpeaker(ctx, domain.EventSpeaker{
		EventID:  eventID,
		UserID:   principal.ID,
		Topic:    topic,
		Duration: duration,
		Status:   domain.SpeakerPending,
	})
	if err != nil {
		return domain.EventSpeaker{}, fmt.Errorf("s.repo.AddSpeaker -> %w", err)
	}

	return speaker, nil
}

// ReviewSpeaker approves or rejects an in-event speaker slot. The
// max-speakers ceiling is re-checked in the same transaction as the update.
func (s *EventService) ReviewSpeaker(ctx context.Context, principal domain.User, eventID, speakerID uint, status domain.SpeakerStatus) (domain.EventSpeaker, error) {
	if status != domain.SpeakerApproved && status != domain.SpeakerRejected {
		return domain.EventSpeaker{}, ErrInvalidReviewStatus
	}

	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return domain.EventSpeaker{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.checkEventAdmin(ctx, principal, event); err != nil {
		return domain.EventSpeaker{}, err
	}

	speaker, err := s.repo.ReviewSpeaker(ctx, eventID, speakerID, status)
	if err != nil {
		return domain.EventSpeaker{}, fmt.Errorf("s.repo.ReviewSpeaker -> %w", err)
	}

	return speaker, nil
}

func (s *EventService) GetSpeakers(ctx context.Context, eventID uint) ([]domain.EventSpeaker, error) {
	speakers, err := s.repo.FindSpeakers(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindSpeakers -> %w", err)
	}

	return speakers, nil
}

func (s *EventService) IsRegistered(ctx context.Context, eventID, userID uint) (bool, error) {
	_, err := s.repo.FindRegistration(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return false, nil
		}

		return false, fmt.Errorf("s.repo.FindRegistration -> %w", err)
	}

	return true, nil
}

// checkEventAdmin allows super admins and admins of the event's host school.
func (s *EventService) checkEventAdmin(ctx context.Context, principal domain.User, event domain.Event) error {
	if principal.Role == domain.RoleSuperAdmin {
		return nil
	}
	if principal.Role != domain.RoleSchoolAdmin {
		return ErrNotAuthorized
	}

	school, err := s.schoolRepo.FindByID(ctx, event.HostSchoolID)
	if err != nil {
		return fmt.Errorf("s.schoolRepo.FindByID -> %w", err)
	}
	if !school.IsAdministeredBy(principal.ID) {
		return ErrNotAuthorized
	}

	return nil
}
