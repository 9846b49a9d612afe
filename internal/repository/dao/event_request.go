package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEventRequestNotFound = errors.New("event request not found")
	ErrRequestNotPending    = errors.New("event request has already been reviewed")
	ErrRequestApproved      = errors.New("approved event requests cannot be deleted")
)

type EventRequest struct {
	ID uint `gorm:"primaryKey"`

	SchoolID    uint   `gorm:"not null;index"`
	School      School `gorm:"foreignKey:SchoolID"`
	RequestedBy uint   `gorm:"not null;index"`
	Requester   User   `gorm:"foreignKey:RequestedBy"`

	Title            string    `gorm:"not null"`
	Description      string
	ProposedDate     time.Time `gorm:"not null"`
	Location         string    `gorm:"not null"`
	ExpectedCapacity int       `gorm:"not null"`
	MaxSpeakers      int       `gorm:"not null;default:0"`
	Price            float64   `gorm:"not null;default:0"`
	Requirements     string
	Justification    string

	Status          string `gorm:"not null;default:pending"` // "pending", "approved", "rejected" or "needs_revision"
	ReviewedBy      *uint
	ReviewNote      string
	ApprovedEventID *uint `gorm:"unique"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventRequestDAO struct {
	db *gorm.DB
}

func NewEventRequestDAO(db *gorm.DB) *EventRequestDAO {
	return &EventRequestDAO{
		db: db,
	}
}

func (d *EventRequestDAO) Insert(ctx context.Context, request EventRequest) (EventRequest, error) {
	result := d.db.WithContext(ctx).Create(&request)
	if result.Error != nil {
		return EventRequest{}, result.Error
	}

	return request, nil
}

func (d *EventRequestDAO) FindByID(ctx context.Context, id uint) (EventRequest, error) {
	var request EventRequest

	result := d.db.WithContext(ctx).First(&request, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventRequest{}, ErrEventRequestNotFound
		}

		return EventRequest{}, result.Error
	}

	return request, nil
}

// FindAll lists requests, optionally filtered by school and/or status.
func (d *EventRequestDAO) FindAll(ctx context.Context, schoolID uint, status string, page, limit int) ([]EventRequest, int64, error) {
	var (
		requests []EventRequest
		total    int64
	)

	query := d.db.WithContext(ctx).Model(&EventRequest{})
	if schoolID != 0 {
		query = query.Where("school_id = ?", schoolID)
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

func (d *EventRequestDAO) Update(ctx context.Context, request EventRequest) (EventRequest, error) {
	result := d.db.WithContext(ctx).Save(&request)
	if result.Error != nil {
		return EventRequest{}, result.Error
	}

	return request, nil
}

// Review finalizes a pending request. When the target status is "approved"
// it creates the Event from the proposed fields and links it back via
// ApprovedEventID, all inside one transaction so a crash cannot leave an
// approved request without its event. The request row is locked so two
// reviewers cannot both see "pending".
func (d *EventRequestDAO) Review(ctx context.Context, requestID, reviewerID uint, status, note string) (EventRequest, error) {
	var request EventRequest

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventRequestNotFound
			}

			return err
		}

		if request.Status != "pending" {
			return ErrRequestNotPending
		}

		request.Status = status
		request.ReviewedBy = &reviewerID
		request.ReviewNote = note

		if status == "approved" {
			event := Event{
				HostSchoolID: request.SchoolID,
				OrganizerID:  request.RequestedBy,
				Title:        request.Title,
				Description:  request.Description,
				Date:         request.ProposedDate,
				Location:     request.Location,
				Capacity:     request.ExpectedCapacity,
				MaxSpeakers:  request.MaxSpeakers,
				Price:        request.Price,
				Requirements: request.Requirements,
				Status:       "published",
				IsPublic:     true,
			}
			if err := tx.Create(&event).Error; err != nil {
				return err
			}

			request.ApprovedEventID = &event.ID
		}

		return tx.Save(&request).Error
	})
	if err != nil {
		return EventRequest{}, err
	}

	return request, nil
}

func (d *EventRequestDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request EventRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventRequestNotFound
			}

			return err
		}

		if request.Status == "approved" {
			return ErrRequestApproved
		}

		return tx.Delete(&request).Error
	})
}

func (d *EventRequestDAO) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return countByStatus(d.db.WithContext(ctx), &EventRequest{})
}

type statusCount struct {
	Status string
	Count  int64
}

func countByStatus(db *gorm.DB, model interface{}) (map[string]int64, error) {
	var rows []statusCount

	result := db.Model(model).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}
