package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/edu-events-api/internal/domain"
	"github.com/vietanh2810/edu-events-api/internal/repository"
)

var (
	ErrFeedbackNotFound  = repository.ErrFeedbackNotFound
	ErrDuplicateFeedback = repository.ErrDuplicateFeedback

	ErrNotRegisteredForEvent = errors.New("user is not registered for this event")
	ErrNotFeedbackOwner      = errors.New("user is not the owner of this feedback")
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error)
	FindByID(ctx context.Context, id uint) (domain.Feedback, error)
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (domain.Feedback, error)
	FindByEvent(ctx context.Context, eventID uint, page, limit int) ([]domain.Feedback, int64, error)
	FindByUser(ctx context.Context, userID uint, page, limit int) ([]domain.Feedback, int64, error)
	Update(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error)
	Delete(ctx context.Context, id uint) error
	Histogram(ctx context.Context, eventID uint) (map[int]int, error)
}

type FeedbackEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindRegistration(ctx context.Context, eventID, userID uint) (domain.EventRegistration, error)
}

type FeedbackService struct {
	repo      FeedbackRepository
	eventRepo FeedbackEventRepository
}

func NewFeedbackService(repo FeedbackRepository, eventRepo FeedbackEventRepository) *FeedbackService {
	return &FeedbackService{
		repo:      repo,
		eventRepo: eventRepo,
	}
}

// Submit records one rating per (event, user). The caller must hold a
// registration for the event; the duplicate pre-check is backstopped by the
// unique index. The event's rating rollup is recomputed in the same
// transaction as the insert.
func (s *FeedbackService) Submit(ctx context.Context, principal domain.User, feedback domain.Feedback) (domain.Feedback, error) {
	if _, err := s.eventRepo.FindByID(ctx, feedback.EventID); err != nil {
		return domain.Feedback{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	if _, err := s.eventRepo.FindRegistration(ctx, feedback.EventID, principal.ID); err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return domain.Feedback{}, ErrNotRegisteredForEvent
		}

		return domain.Feedback{}, fmt.Errorf("s.eventRepo.FindRegistration -> %w", err)
	}

	if _, err := s.repo.FindByEventAndUser(ctx, feedback.EventID, principal.ID); err == nil {
		return domain.Feedback{}, ErrDuplicateFeedback
	} else if !errors.Is(err, repository.ErrFeedbackNotFound) {
		return domain.Feedback{}, fmt.Errorf("s.repo.FindByEventAndUser -> %w", err)
	}

	feedback.UserID = principal.ID

	created, err := s.repo.Create(ctx, feedback)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *FeedbackService) Update(ctx context.Context, principal domain.User, feedbackID uint, rating int, comment string) (domain.Feedback, error) {
	feedback, err := s.repo.FindByID(ctx, feedbackID)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if principal.Role != domain.RoleSuperAdmin && feedback.UserID != principal.ID {
		return domain.Feedback{}, ErrNotFeedbackOwner
	}

	feedback.Rating = rating
	feedback.Comment = comment

	saved, err := s.repo.Update(ctx, feedback)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return saved, nil
}

func (s *FeedbackService) Delete(ctx context.Context, principal domain.User, feedbackID uint) error {
	feedback, err := s.repo.FindByID(ctx, feedbackID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if principal.Role != domain.RoleSuperAdmin && feedback.UserID != principal.ID {
		return ErrNotFeedbackOwner
	}

	if err := s.repo.Delete(ctx, feedbackID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *FeedbackService) ListByEvent(ctx context.Context, eventID uint, page, limit int) ([]domain.Feedback, int64, error) {
	feedbacks, total, err := s.repo.FindByEvent(ctx, eventID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindByEvent -> %w", err)
	}

	return feedbacks, total, nil
}

// ListByUser returns the caller's own feedback entries.
func (s *FeedbackService) ListByUser(ctx context.Context, principal domain.User, page, limit int) ([]domain.Feedback, int64, error) {
	feedbacks, total, err := s.repo.FindByUser(ctx, principal.ID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindByUser -> %w", err)
	}

	return feedbacks, total, nil
}

// Stats returns the event's rating rollup plus a 1..5 histogram.
func (s *FeedbackService) Stats(ctx context.Context, eventID uint) (domain.FeedbackStats, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return domain.FeedbackStats{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	histogram, err := s.repo.Histogram(ctx, eventID)
	if err != nil {
		return domain.FeedbackStats{}, fmt.Errorf("s.repo.Histogram -> %w", err)
	}

	return domain.FeedbackStats{
		EventID:       event.ID,
		AverageRating: event.AverageRating,
		TotalRatings:  event.TotalRatings,
		Histogram:     histogram,
	}, nil
}
