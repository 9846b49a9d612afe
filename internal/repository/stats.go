package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/edu-events-api/internal/domain"
	"github.com/vietanh2810/edu-events-api/internal/repository/dao"
)

type StatsDAO interface {
	CountPendingEventRequests(ctx context.Context) (int64, error)
	CountPendingSpeakerRequests(ctx context.Context) (int64, error)
	TopSchoolsByEvents(ctx context.Context, n int) ([]dao.SchoolEventCount, error)
}

type StatsRepository struct {
	dao StatsDAO
}

func NewStatsRepository(dao StatsDAO) *StatsRepository {
	return &StatsRepository{
		dao: dao,
	}
}

func (r *StatsRepository) CountPendingEventRequests(ctx context.Context) (int64, error) {
	count, err := r.dao.CountPendingEventRequests(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountPendingEventRequests -> %w", err)
	}

	return count, nil
}

func (r *StatsRepository) CountPendingSpeakerRequests(ctx context.Context) (int64, error) {
	count, err := r.dao.CountPendingSpeakerRequests(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountPendingSpeakerRequests -> %w", err)
	}

	return count, nil
}

func (r *StatsRepository) TopSchoolsByEvents(ctx context.Context, n int) ([]domain.SchoolRank, error) {
	rows, err := r.dao.TopSchoolsByEvents(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("r.dao.TopSchoolsByEvents -> %w", err)
	}

	ranks := make([]domain.SchoolRank, len(rows))
	for i, row := range rows {
		ranks[i] = domain.SchoolRank{
			SchoolID:   row.SchoolID,
			SchoolName: row.SchoolName,
			EventCount: row.EventCount,
		}
	}

	return ranks, nil
}
