package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSpeakerRequestNotFound   = errors.New("speaker request not found")
	ErrDuplicateApplication     = errors.New("speaker has already applied to this event")
	ErrSpeakerRequestNotPending = errors.New("speaker request has already been reviewed")
	ErrSpeakerRequestApproved   = errors.New("approved speaker requests cannot be deleted")
)

type SpeakerRequest struct {
	ID uint `gorm:"primaryKey"`

	EventID   uint  `gorm:"not null;index;uniqueIndex:idx_speaker_request"`
	Event     Event `gorm:"foreignKey:EventID"`
	SpeakerID uint  `gorm:"not null;uniqueIndex:idx_speaker_request"`
	Speaker   User  `gorm:"foreignKey:SpeakerID"`

	Topic    string `gorm:"not null"`
	Duration int    `gorm:"not null;default:0"`
	Abstract string

	Status     string `gorm:"not null;default:pending"` // "pending", "approved", "rejected" or "waitlisted"
	ReviewedBy *uint
	ReviewNote string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type SpeakerRequestDAO struct {
	db *gorm.DB
}

func NewSpeakerRequestDAO(db *gorm.DB) *SpeakerRequestDAO {
	return &SpeakerRequestDAO{
		db: db,
	}
}

// Insert persists a new application. The unique index on (event, speaker) is
// the backstop behind the service-level duplicate pre-check; both surface as
// ErrDuplicateApplication.
func (d *SpeakerRequestDAO) Insert(ctx context.Context, request SpeakerRequest) (SpeakerRequest, error) {
	result := d.db.WithContext(ctx).Create(&request)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_speaker_request") {
			return SpeakerRequest{}, ErrDuplicateApplication
		}

		return SpeakerRequest{}, result.Error
	}

	return request, nil
}

func (d *SpeakerRequestDAO) FindByID(ctx context.Context, id uint) (SpeakerRequest, error) {
	var request SpeakerRequest

	result := d.db.WithContext(ctx).First(&request, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return SpeakerRequest{}, ErrSpeakerRequestNotFound
		}

		return SpeakerRequest{}, result.Error
	}

	return request, nil
}

func (d *SpeakerRequestDAO) FindByEventAndSpeaker(ctx context.Context, eventID, speakerID uint) (SpeakerRequest, error) {
	var request SpeakerRequest

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND speaker_id = ?", eventID, speakerID).
		First(&request)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return SpeakerRequest{}, ErrSpeakerRequestNotFound
		}

		return SpeakerRequest{}, result.Error
	}

	return request, nil
}

// FindAll lists applications filtered by any combination of speaker, event
// and status.
func (d *SpeakerRequestDAO) FindAll(ctx context.Context, speakerID, eventID uint, status string, page, limit int) ([]SpeakerRequest, int64, error) {
	var (
		requests []SpeakerRequest
		total    int64
	)

	query := d.db.WithContext(ctx).Model(&SpeakerRequest{})
	if speakerID != 0 {
		query = query.Where("speaker_id = ?", speakerID)
	}
	if eventID != 0 {
		query = query.Where("event_id = ?", eventID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := query.Scopes(paginate(page, limit)).Order("created_at DESC").Find(&requests)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return requests, total, nil
}

// FindByOrganizerSchool lists applications against events hosted by the
// given school, for school-admin review queues.
func (d *SpeakerRequestDAO) FindByOrganizerSchool(ctx context.Context, schoolID uint, status string, page, limit int) ([]SpeakerRequest, int64, error) {
	var (
		requests []SpeakerRequest
		total    int64
	)

	query := d.db.WithContext(ctx).Model(&SpeakerRequest{}).
		Joins("JOIN events ON events.id = speaker_requests.event_id").
		Where("events.host_school_id = ?", schoolID)
	if status != "" {
		query = query.Where("speaker_requests.status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := query.Scopes(paginate(page, limit)).Order("speaker_requests.created_at DESC").Find(&requests)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return requests, total, nil
}

func (d *SpeakerRequestDAO) Update(ctx context.Context, request SpeakerRequest) (SpeakerRequest, error) {
	result := d.db.WithContext(ctx).Save(&request)
	if result.Error != nil {
		return SpeakerRequest{}, result.Error
	}

	return request, nil
}

// Review finalizes an application. A pending or waitlisted request may be
// reviewed; approved and rejected are terminal. Approval re-checks the
// max-speakers ceiling and appends the speaker slot to the event inside the
// same transaction, with the event row locked.
func (d *SpeakerRequestDAO) Review(ctx context.Context, requestID, reviewerID uint, status, note string) (SpeakerRequest, error) {
	var request SpeakerRequest

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSpeakerRequestNotFound
			}

			return err
		}

		if request.Status != "pending" && request.Status != "waitlisted" {
			return ErrSpeakerRequestNotPending
		}

		if status == "approved" {
			var event Event
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, request.EventID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrEventNotFound
				}

				return err
			}

			var approved int64
			if err := tx.Model(&EventSpeaker{}).
				Where("event_id = ? AND status = ?", request.EventID, "approved").
				Count(&approved).Error; err != nil {
				return err
			}
			if approved >= int64(event.MaxSpeakers) {
				return ErrSpeakerCapacity
			}

			speaker := EventSpeaker{
				EventID:  request.EventID,
				UserID:   request.SpeakerID,
				Topic:    request.Topic,
				Duration: request.Duration,
				Status:   "approved",
			}
			if err := tx.Create(&speaker).Error; err != nil {
				if isUniqueViolation(err, "idx_event_speaker") {
					return ErrDuplicateSpeaker
				}

				return err
			}
		}

		request.Status = status
		request.ReviewedBy = &reviewerID
		request.ReviewNote = note

		return tx.Save(&request).Error
	})
	if err != nil {
		return SpeakerRequest{}, err
	}

	return request, nil
}

func (d *SpeakerRequestDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request SpeakerRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSpeakerRequestNotFound
			}

			return err
		}

		if request.Status == "approved" {
			return ErrSpeakerRequestApproved
		}

		return tx.Delete(&request).Error
	})
}

func (d *SpeakerRequestDAO) CountApprovedByEvent(ctx context.Context, eventID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&SpeakerRequest{}).
		Where("event_id = ? AND status = ?", eventID, "approved").
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *SpeakerRequestDAO) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return countByStatus(d.db.WithContext(ctx), &SpeakerRequest{})
}
