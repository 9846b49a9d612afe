package dao

import (
	"context"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrFeedbackNotFound  = errors.New("feedback not found")
	ErrDuplicateFeedback = errors.New("user has already left feedback for this event")
)

type Feedback struct {
	ID uint `gorm:"primaryKey"`

	EventID uint  `gorm:"not null;index;uniqueIndex:idx_event_feedback"`
	Event   Event `gorm:"foreignKey:EventID"`
	UserID  uint  `gorm:"not null;uniqueIndex:idx_event_feedback"`
	User    User  `gorm:"foreignKey:UserID"`

	Rating  int `gorm:"not null"`
	Comment string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type FeedbackDAO struct {
	db *gorm.DB
}

func NewFeedbackDAO(db *gorm.DB) *FeedbackDAO {
	return &FeedbackDAO{
		db: db,
	}
}

// Insert persists the feedback and recomputes the event's rating rollup in
// the same transaction. The unique index on (event, user) backstops the
// service-level duplicate pre-check.
func (d *FeedbackDAO) Insert(ctx context.Context, feedback Feedback) (Feedback, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&feedback).Error; err != nil {
			if isUniqueViolation(err, "idx_event_feedback") {
				return ErrDuplicateFeedback
			}

			return err
		}

		return recomputeEventRating(tx, feedback.EventID)
	})
	if err != nil {
		return Feedback{}, err
	}

	return feedback, nil
}

func (d *FeedbackDAO) FindByID(ctx context.Context, id uint) (Feedback, error) {
	var feedback Feedback

	result := d.db.WithContext(ctx).First(&feedback, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Feedback{}, ErrFeedbackNotFound
		}

		return Feedback{}, result.Error
	}

	return feedback, nil
}

func (d *FeedbackDAO) FindByEventAndUser(ctx context.Context, eventID, userID uint) (Feedback, error) {
	var feedback Feedback

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&feedback)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Feedback{}, ErrFeedbackNotFound
		}

		return Feedback{}, result.Error
	}

	return feedback, nil
}

func (d *FeedbackDAO) FindByEvent(ctx context.Context, eventID uint, page, limit int) ([]Feedback, int64, error) {
	var (
		feedbacks []Feedback
		total     int64
	)

	query := d.db.WithContext(ctx).Model(&Feedback{}).Where("event_id = ?", eventID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := query.Scopes(paginate(page, limit)).Order("created_at DESC").Find(&feedbacks)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return feedbacks, total, nil
}

func (d *FeedbackDAO) FindByUser(ctx context.Context, userID uint, page, limit int) ([]Feedback, int64, error) {
	var (
		feedbacks []Feedback
		total     int64
	)

	query := d.db.WithContext(ctx).Model(&Feedback{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := query.Scopes(paginate(page, limit)).Order("created_at DESC").Find(&feedbacks)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return feedbacks, total, nil
}

func (d *FeedbackDAO) Update(ctx context.Context, feedback Feedback) (Feedback, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&feedback).Error; err != nil {
			return err
		}

		return recomputeEventRating(tx, feedback.EventID)
	})
	if err != nil {
		return Feedback{}, err
	}

	return feedback, nil
}

func (d *FeedbackDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var feedback Feedback
		if err := tx.First(&feedback, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFeedbackNotFound
			}

			return err
		}

		if err := tx.Delete(&feedback).Error; err != nil {
			return err
		}

		return recomputeEventRating(tx, feedback.EventID)
	})
}

// Histogram returns per-rating counts for one event.
func (d *FeedbackDAO) Histogram(ctx context.Context, eventID uint) (map[int]int, error) {
	var rows []struct {
		Rating int
		Count  int
	}

	result := d.db.WithContext(ctx).Model(&Feedback{}).
		Select("rating, COUNT(*) AS count").
		Where("event_id = ?", eventID).
		Group("rating").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	histogram := make(map[int]int, len(rows))
	for _, row := range rows {
		histogram[row.Rating] = row.Count
	}

	return histogram, nil
}

// recomputeEventRating rewrites the event's denormalized rollup from the
// remaining feedback rows: mean rounded to one decimal, plus the count.
func recomputeEventRating(tx *gorm.DB, eventID uint) error {
	var event Event
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}

		return err
	}

	var stats struct {
		Total int64
		Sum   float64
	}
	if err := tx.Model(&Feedback{}).
		Select("COUNT(*) AS total, COALESCE(SUM(rating), 0) AS sum").
		Where("event_id = ?", eventID).
		Scan(&stats).Error; err != nil {
		return err
	}

	event.TotalRatings = int(stats.Total)
	if stats.Total == 0 {
		event.AverageRating = 0
	} else {
		event.AverageRating = math.Round(stats.Sum/float64(stats.Total)*10) / 10
	}

	return tx.Save(&event).Error
}
