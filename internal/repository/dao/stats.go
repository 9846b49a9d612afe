package dao

import (
	"context"

	"gorm.io/gorm"
)

type StatsDAO struct {
	db *gorm.DB
}

func NewStatsDAO(db *gorm.DB) *StatsDAO {
	return &StatsDAO{
		db: db,
	}
}

func (d *StatsDAO) CountPendingEventRequests(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&EventRequest{}).Where("status = ?", "pending").Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *StatsDAO) CountPendingSpeakerRequests(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&SpeakerRequest{}).Where("status = ?", "pending").Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

type SchoolEventCount struct {
	SchoolID   uint
	SchoolName string
	EventCount int64
}

// TopSchoolsByEvents ranks schools by hosted event count, descending.
func (d *StatsDAO) TopSchoolsByEvents(ctx context.Context, n int) ([]SchoolEventCount, error) {
	var rows []SchoolEventCount

	result := d.db.WithContext(ctx).Model(&School{}).
		Select("schools.id AS school_id, schools.name AS school_name, COUNT(events.id) AS event_count").
		Joins("LEFT JOIN events ON events.host_school_id = schools.id").
		Group("schools.id, schools.name").
		Order("event_count DESC, schools.id").
		Limit(n).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}
