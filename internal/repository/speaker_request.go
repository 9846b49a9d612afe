package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/edu-events-api/internal/domain"
	"github.com/vietanh2810/edu-events-api/internal/repository/dao"
)

var (
	ErrSpeakerRequestNotFound   = dao.ErrSpeakerRequestNotFound
	ErrDuplicateApplication     = dao.ErrDuplicateApplication
	ErrSpeakerRequestNotPending = dao.ErrSpeakerRequestNotPending
	ErrSpeakerRequestApproved   = dao.ErrSpeakerRequestApproved
)

type SpeakerRequestDAO interface {
	Insert(ctx context.Context, request dao.SpeakerRequest) (dao.SpeakerRequest, error)
	FindByID(ctx context.Context, id uint) (dao.SpeakerRequest, error)
	FindByEventAndSpeaker(ctx context.Context, eventID, speakerID uint) (dao.SpeakerRequest, error)
	FindAll(ctx context.Context, speakerID, eventID uint, status string, page, limit int) ([]dao.SpeakerRequest, int64, error)
	FindByOrganizerSchool(ctx context.Context, schoolID uint, status string, page, limit int) ([]dao.SpeakerRequest, int64, error)
	Update(ctx context.Context, request dao.SpeakerRequest) (dao.SpeakerRequest, error)
	Review(ctx context.Context, requestID, reviewerID uint, status, note string) (dao.SpeakerRequest, error)
	Delete(ctx context.Context, id uint) error
	CountApprovedByEvent(ctx context.Context, eventID uint) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type SpeakerRequestRepository struct {
	dao SpeakerRequestDAO
}

func NewSpeakerRequestRepository(dao SpeakerRequestDAO) *SpeakerRequestRepository {
	return &SpeakerRequestRepository{
		dao: dao,
	}
}

func (r *SpeakerRequestRepository) domainToDao(req domain.SpeakerRequest) dao.SpeakerRequest {
	return dao.SpeakerRequest{
		ID:         req.ID,
		EventID:    req.EventID,
		SpeakerID:  req.SpeakerID,
		Topic:      req.Topic,
		Duration:   req.Duration,
		Abstract:   req.Abstract,
		Status:     string(req.Status),
		ReviewedBy: req.ReviewedBy,
		ReviewNote: req.ReviewNote,
		CreatedAt:  req.CreatedAt,
		UpdatedAt:  req.UpdatedAt,
	}
}

func (r *SpeakerRequestRepository) daoToDomain(req dao.SpeakerRequest) domain.SpeakerRequest {
	return domain.SpeakerRequest{
		ID:         req.ID,
		EventID:    req.EventID,
		SpeakerID:  req.SpeakerID,
		Topic:      req.Topic,
		Duration:   req.Duration,
		Abstract:   req.Abstract,
		Status:     domain.RequestStatus(req.Status),
		ReviewedBy: req.ReviewedBy,
		ReviewNote: req.ReviewNote,
		CreatedAt:  req.CreatedAt,
		UpdatedAt:  req.UpdatedAt,
	}
}

func (r *SpeakerRequestRepository) daosToDomain(requests []dao.SpeakerRequest) []domain.SpeakerRequest {
	result := make([]domain.SpeakerRequest, len(requests))
	for i, req := range requests {
		result[i] = r.daoToDomain(req)
	}

	return result
}

func (r *SpeakerRequestRepository) Create(ctx context.Context, request domain.SpeakerRequest) (domain.SpeakerRequest, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(request))
	if err != nil {
		return domain.SpeakerRequest{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SpeakerRequestRepository) FindByID(ctx context.Context, id uint) (domain.SpeakerRequest, error) {
	request, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.SpeakerRequest{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(request), nil
}

func (r *SpeakerRequestRepository) FindByEventAndSpeaker(ctx context.Context, eventID, speakerID uint) (domain.SpeakerRequest, error) {
	request, err := r.dao.FindByEventAndSpeaker(ctx, eventID, speakerID)
	if err != nil {
		return domain.SpeakerRequest{}, fmt.Errorf("r.dao.FindByEventAndSpeaker -> %w", err)
	}

	return r.daoToDomain(request), nil
}

func (r *SpeakerRequestRepository) FindAll(ctx context.Context, speakerID, eventID uint, status domain.RequestStatus, page, limit int) ([]domain.SpeakerRequest, int64, error) {
	requests, total, err := r.dao.FindAll(ctx, speakerID, eventID, string(status), page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(requests), total, nil
}

func (r *SpeakerRequestRepository) FindByOrganizerSchool(ctx context.Context, schoolID uint, status domain.RequestStatus, page, limit int) ([]domain.SpeakerRequest, int64, error) {
	requests, total, err := r.dao.FindByOrganizerSchool(ctx, schoolID, string(status), page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindByOrganizerSchool -> %w", err)
	}

	return r.daosToDomain(requests), total, nil
}

func (r *SpeakerRequestRepository) Update(ctx context.Context, request domain.SpeakerRequest) (domain.SpeakerRequest, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(request))
	if err != nil {
		return domain.SpeakerRequest{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *SpeakerRequestRepository) Review(ctx context.Context, requestID, reviewerID uint, status domain.RequestStatus, note string) (domain.SpeakerRequest, error) {
	reviewed, err := r.dao.Review(ctx, requestID, reviewerID, string(status), note)
	if err != nil {
		return domain.SpeakerRequest{}, fmt.Errorf("r.dao.Review -> %w", err)
	}

	return r.daoToDomain(reviewed), nil
}

func (r *SpeakerRequestRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *SpeakerRequestRepository) CountApprovedByEvent(ctx context.Context, eventID uint) (int64, error) {
	count, err := r.dao.CountApprovedByEvent(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountApprovedByEvent -> %w", err)
	}

	return count, nil
}

func (r *SpeakerRequestRepository) CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error) {
	counts, err := r.dao.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	return statusCountsToDomain(counts), nil
}
