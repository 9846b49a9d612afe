package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/edu-events-api/internal/domain"
	"github.com/vietanh2810/edu-events-api/internal/repository/dao"
)

var (
	ErrFeedbackNotFound  = dao.ErrFeedbackNotFound
	ErrDuplicateFeedback = dao.ErrDuplicateFeedback
)

type FeedbackDAO interface {
	Insert(ctx context.Context, feedback dao.Feedback) (dao.Feedback, error)
	FindByID(ctx context.Context, id uint) (dao.Feedback, error)
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (dao.Feedback, error)
	FindByEvent(ctx context.Context, eventID uint, page, limit int) ([]dao.Feedback, int64, error)
	FindByUser(ctx context.Context, userID uint, page, limit int) ([]dao.Feedback, int64, error)
	Update(ctx context.Context, feedback dao.Feedback) (dao.Feedback, error)
	Delete(ctx context.Context, id uint) error
	Histogram(ctx context.Context, eventID uint) (map[int]int, error)
}

type FeedbackRepository struct {
	dao FeedbackDAO
}

func NewFeedbackRepository(dao FeedbackDAO) *FeedbackRepository {
	return &FeedbackRepository{
		dao: dao,
	}
}

func (r *FeedbackRepository) domainToDao(f domain.Feedback) dao.Feedback {
	return dao.Feedback{
		ID:        f.ID,
		EventID:   f.EventID,
		UserID:    f.UserID,
		Rating:    f.Rating,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func (r *FeedbackRepository) daoToDomain(f dao.Feedback) domain.Feedback {
	return domain.Feedback{
		ID:        f.ID,
		EventID:   f.EventID,
		UserID:    f.UserID,
		Rating:    f.Rating,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(feedback))
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *FeedbackRepository) FindByID(ctx context.Context, id uint) (domain.Feedback, error) {
	feedback, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(feedback), nil
}

func (r *FeedbackRepository) FindByEventAndUser(ctx context.Context, eventID, userID uint) (domain.Feedback, error) {
	feedback, err := r.dao.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("r.dao.FindByEventAndUser -> %w", err)
	}

	return r.daoToDomain(feedback), nil
}

func (r *FeedbackRepository) FindByEvent(ctx context.Context, eventID uint, page, limit int) ([]domain.Feedback, int64, error) {
	feedbacks, total, err := r.dao.FindByEvent(ctx, eventID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindByEvent -> %w", err)
	}

	result := make([]domain.Feedback, len(feedbacks))
	for i, f := range feedbacks {
		result[i] = r.daoToDomain(f)
	}

	return result, total, nil
}

func (r *FeedbackRepository) FindByUser(ctx context.Context, userID uint, page, limit int) ([]domain.Feedback, int64, error) {
	feedbacks, total, err := r.dao.FindByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindByUser -> %w", err)
	}

	result := make([]domain.Feedback, len(feedbacks))
	for i, f := range feedbacks {
		result[i] = r.daoToDomain(f)
	}

	return result, total, nil
}

func (r *FeedbackRepository) Update(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(feedback))
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *FeedbackRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *FeedbackRepository) Histogram(ctx context.Context, eventID uint) (map[int]int, error) {
	histogram, err := r.dao.Histogram(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Histogram -> %w", err)
	}

	return histogram, nil
}
