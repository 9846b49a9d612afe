package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/edu-events-api/internal/domain"
	"github.com/vietanh2810/edu-events-api/internal/repository/dao"
)

var (
	ErrEventRequestNotFound = dao.ErrEventRequestNotFound
	ErrRequestNotPending    = dao.ErrRequestNotPending
	ErrRequestApproved      = dao.ErrRequestApproved
)

type EventRequestDAO interface {
	Insert(ctx context.Context, request dao.EventRequest) (dao.EventRequest, error)
	FindByID(ctx context.Context, id uint) (dao.EventRequest, error)
	FindAll(ctx context.Context, schoolID uint, status string, page, limit int) ([]dao.EventRequest, int64, error)
	Update(ctx context.Context, request dao.EventRequest) (dao.EventRequest, error)
	Review(ctx context.Context, requestID, reviewerID uint, status, note string) (dao.EventRequest, error)
	Delete(ctx context.Context, id uint) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type EventRequestRepository struct {
	dao EventRequestDAO
}

func NewEventRequestRepository(dao EventRequestDAO) *EventRequestRepository {
	return &EventRequestRepository{
		dao: dao,
	}
}

func (r *EventRequestRepository) domainToDao(req domain.EventRequest) dao.EventRequest {
	return dao.EventRequest{
		ID:               req.ID,
		SchoolID:         req.SchoolID,
		RequestedBy:      req.RequestedBy,
		Title:            req.Title,
		Description:      req.Description,
		ProposedDate:     req.ProposedDate,
		Location:         req.Location,
		ExpectedCapacity: req.ExpectedCapacity,
		MaxSpeakers:      req.MaxSpeakers,
		Price:            req.Price,
		Requirements:     req.Requirements,
		Justification:    req.Justification,
		Status:           string(req.Status),
		ReviewedBy:       req.ReviewedBy,
		ReviewNote:       req.ReviewNote,
		ApprovedEventID:  req.ApprovedEventID,
		CreatedAt:        req.CreatedAt,
		UpdatedAt:        req.UpdatedAt,
	}
}

func (r *EventRequestRepository) daoToDomain(req dao.EventRequest) domain.EventRequest {
	return domain.EventRequest{
		ID:               req.ID,
		SchoolID:         req.SchoolID,
		RequestedBy:      req.RequestedBy,
		Title:            req.Title,
		Description:      req.Description,
		ProposedDate:     req.ProposedDate,
		Location:         req.Location,
		ExpectedCapacity: req.ExpectedCapacity,
		MaxSpeakers:      req.MaxSpeakers,
		Price:            req.Price,
		Requirements:     req.Requirements,
		Justification:    req.Justification,
		Status:           domain.RequestStatus(req.Status),
		ReviewedBy:       req.ReviewedBy,
		ReviewNote:       req.ReviewNote,
		ApprovedEventID:  req.ApprovedEventID,
		CreatedAt:        req.CreatedAt,
		UpdatedAt:        req.UpdatedAt,
	}
}

func (r *EventRequestRepository) Create(ctx context.Context, request domain.EventRequest) (domain.EventRequest, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(request))
	if err != nil {
		return domain.EventRequest{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRequestRepository) FindByID(ctx context.Context, id uint) (domain.EventRequest, error) {
	request, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.EventRequest{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(request), nil
}

func (r *EventRequestRepository) FindAll(ctx context.Context, schoolID uint, status domain.RequestStatus, page, limit int) ([]domain.EventRequest, int64, error) {
	requests, total, err := r.dao.FindAll(ctx, schoolID, string(status), page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	result := make([]domain.EventRequest, len(requests))
	for i, req := range requests {
		result[i] = r.daoToDomain(req)
	}

	return result, total, nil
}

func (r *EventRequestRepository) Update(ctx context.Context, request domain.EventRequest) (domain.EventRequest, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(request))
	if err != nil {
		return domain.EventRequest{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventRequestRepository) Review(ctx context.Context, requestID, reviewerID uint, status domain.RequestStatus, note string) (domain.EventRequest, error) {
	reviewed, err := r.dao.Review(ctx, requestID, reviewerID, string(status), note)
	if err != nil {
		return domain.EventRequest{}, fmt.Errorf("r.dao.Review -> %w", err)
	}

	return r.daoToDomain(reviewed), nil
}

func (r *EventRequestRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EventRequestRepository) CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error) {
	counts, err := r.dao.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	return statusCountsToDomain(counts), nil
}

func statusCountsToDomain(counts map[string]int64) map[domain.RequestStatus]int64 {
	result := make(map[domain.RequestStatus]int64, len(counts))
	for status, count := range counts {
		result[domain.RequestStatus(status)] = count
	}

	return result
}
