package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/vietanh2810/edu-events-api/internal/domain"
	"github.com/vietanh2810/edu-events-api/internal/repository/dao"
)

var (
	ErrEventNotFound        = dao.ErrEventNotFound
	ErrEventFull            = dao.ErrEventFull
	ErrAlreadyRegistered    = dao.ErrAlreadyRegistered
	ErrRegistrationNotFound = dao.ErrRegistrationNotFound
	ErrSpeakerCapacity      = dao.ErrSpeakerCapacity
	ErrSpeakerNotFound      = dao.ErrSpeakerNotFound
	ErrDuplicateSpeaker     = dao.ErrDuplicateSpeaker
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindPublished(ctx context.Context, page, limit int) ([]dao.Event, int64, error)
	FindBySchool(ctx context.Context, schoolID uint, page, limit int) ([]dao.Event, int64, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	Delete(ctx context.Context, id uint) error
	Register(ctx context.Context, eventID, userID uint) (dao.EventRegistration, error)
	Unregister(ctx context.Context, eventID, userID uint) error
	FindRegistration(ctx context.Context, eventID, userID uint) (dao.EventRegistration, error)
	InsertSpeaker(ctx context.Context, speaker dao.EventSpeaker) (dao.EventSpeaker, error)
	FindSpeaker(ctx context.Context, eventID, speakerID uint) (dao.EventSpeaker, error)
	FindSpeakers(ctx context.Context, eventID uint) ([]dao.EventSpeaker, error)
	UpdateSpeakerStatus(ctx context.Context, eventID, speakerID uint, status string) (dao.EventSpeaker, error)
	CountApprovedSpeakers(ctx context.Context, eventID uint) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountAfter(ctx context.Context, t time.Time) (int64, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) domainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:            e.ID,
		HostSchoolID:  e.HostSchoolID,
		OrganizerID:   e.OrganizerID,
		Title:         e.Title,
		Description:   e.Description,
		Date:          e.Date,
		Location:      e.Location,
		Capacity:      e.Capacity,
		MaxSpeakers:   e.MaxSpeakers,
		Price:         e.Price,
		Requirements:  e.Requirements,
		Status:        string(e.Status),
		IsPublic:      e.IsPublic,
		AverageRating: e.AverageRating,
		TotalRatings:  e.TotalRatings,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:            e.ID,
		HostSchoolID:  e.HostSchoolID,
		OrganizerID:   e.OrganizerID,
		Title:         e.Title,
		Description:   e.Description,
		Date:          e.Date,
		Location:      e.Location,
		Capacity:      e.Capacity,
		MaxSpeakers:   e.MaxSpeakers,
		Price:         e.Price,
		Requirements:  e.Requirements,
		Status:        domain.EventStatus(e.Status),
		IsPublic:      e.IsPublic,
		AverageRating: e.AverageRating,
		TotalRatings:  e.TotalRatings,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (r *EventRepository) daosToDomain(events []dao.Event) []domain.Event {
	result := make([]domain.Event, len(events))
	for i, e := range events {
		result[i] = r.daoToDomain(e)
	}

	return result
}

func (r *EventRepository) speakerDaoToDomain(s dao.EventSpeaker) domain.EventSpeaker {
	return domain.EventSpeaker{
		ID:        s.ID,
		EventID:   s.EventID,
		UserID:    s.UserID,
		Topic:     s.Topic,
		Duration:  s.Duration,
		Status:    domain.SpeakerStatus(s.Status),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (r *EventRepository) registrationDaoToDomain(reg dao.EventRegistration) domain.EventRegistration {
	return domain.EventRegistration{
		ID:        reg.ID,
		EventID:   reg.EventID,
		UserID:    reg.UserID,
		CreatedAt: reg.CreatedAt,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	event, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(event), nil
}

func (r *EventRepository) FindPublished(ctx context.Context, page, limit int) ([]domain.Event, int64, error) {
	events, total, err := r.dao.FindPublished(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindPublished -> %w", err)
	}

	return r.daosToDomain(events), total, nil
}

func (r *EventRepository) FindBySchool(ctx context.Context, schoolID uint, page, limit int) ([]domain.Event, int64, error) {
	events, total, err := r.dao.FindBySchool(ctx, schoolID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindBySchool -> %w", err)
	}

	return r.daosToDomain(events), total, nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EventRepository) Register(ctx context.Context, eventID, userID uint) (domain.EventRegistration, error) {
	registration, err := r.dao.Register(ctx, eventID, userID)
	if err != nil {
		return domain.EventRegistration{}, fmt.Errorf("r.dao.Register -> %w", err)
	}

	return r.registrationDaoToDomain(registration), nil
}

func (r *EventRepository) Unregister(ctx context.Context, eventID, userID uint) error {
	if err := r.dao.Unregister(ctx, eventID, userID); err != nil {
		return fmt.Errorf("r.dao.Unregister -> %w", err)
	}

	return nil
}

func (r *EventRepository) FindRegistration(ctx context.Context, eventID, userID uint) (domain.EventRegistration, error) {
	registration, err := r.dao.FindRegistration(ctx, eventID, userID)
	if err != nil {
		return domain.EventRegistration{}, fmt.Errorf("r.dao.FindRegistration -> %w", err)
	}

	return r.registrationDaoToDomain(registration), nil
}

func (r *EventRepository) AddSpeaker(ctx context.Context, speaker domain.EventSpeaker) (domain.EventSpeaker, error) {
	created, err := r.dao.InsertSpeaker(ctx, dao.EventSpeaker{
		EventID:  speaker.EventID,
		UserID:   speaker.UserID,
		Topic:    speaker.Topic,
		Duration: speaker.Duration,
		Status:   string(speaker.Status),
	})
	if err != nil {
		return domain.EventSpeaker{}, fmt.Errorf("r.dao.InsertSpeaker -> %w", err)
	}

	return r.speakerDaoToDomain(created), nil
}

func (r *EventRepository) FindSpeaker(ctx context.Context, eventID, speakerID uint) (domain.EventSpeaker, error) {
	speaker, err := r.dao.FindSpeaker(ctx, eventID, speakerID)
	if err != nil {
		return domain.EventSpeaker{}, fmt.Errorf("r.dao.FindSpeaker -> %w", err)
	}

	return r.speakerDaoToDomain(speaker), nil
}

func (r *EventRepository) FindSpeakers(ctx context.Context, eventID uint) ([]domain.EventSpeaker, error) {
	speakers, err := r.dao.FindSpeakers(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindSpeakers -> %w", err)
	}

	result := make([]domain.EventSpeaker, len(speakers))
	for i, s := range speakers {
		result[i] = r.speakerDaoToDomain(s)
	}

	return result, nil
}

func (r *EventRepository) ReviewSpeaker(ctx context.Context, eventID, speakerID uint, status domain.SpeakerStatus) (domain.EventSpeaker, error) {
	speaker, err := r.dao.UpdateSpeakerStatus(ctx, eventID, speakerID, string(status))
	if err != nil {
		return domain.EventSpeaker{}, fmt.Errorf("r.dao.UpdateSpeakerStatus -> %w", err)
	}

	return r.speakerDaoToDomain(speaker), nil
}

func (r *EventRepository) CountApprovedSpeakers(ctx context.Context, eventID uint) (int64, error) {
	count, err := r.dao.CountApprovedSpeakers(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountApprovedSpeakers -> %w", err)
	}

	return count, nil
}

func (r *EventRepository) CountAll(ctx context.Context) (int64, error) {
	total, err := r.dao.CountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountAll -> %w", err)
	}

	return total, nil
}

func (r *EventRepository) CountAfter(ctx context.Context, t time.Time) (int64, error) {
	total, err := r.dao.CountAfter(ctx, t)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountAfter -> %w", err)
	}

	return total, nil
}
