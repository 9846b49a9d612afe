package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrEventFull            = errors.New("event has reached its capacity")
	ErrAlreadyRegistered    = errors.New("user is already registered for this event")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrSpeakerCapacity      = errors.New("event has reached its speaker limit")
	ErrSpeakerNotFound      = errors.New("event speaker not found")
	ErrDuplicateSpeaker     = errors.New("user has already applied to speak at this event")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	HostSchoolID uint   `gorm:"not null;index"`
	HostSchool   School `gorm:"foreignKey:HostSchoolID"`
	OrganizerID  uint   `gorm:"not null;index"`
	Organizer    User   `gorm:"foreignKey:OrganizerID"`

	Title        string    `gorm:"not null"`
	Description  string
	Date         time.Time `gorm:"not null"`
	Location     string    `gorm:"not null"`
	Capacity     int       `gorm:"not null"`
	MaxSpeakers  int       `gorm:"not null"`
	Price        float64   `gorm:"not null;default:0"`
	Requirements string
	Status       string `gorm:"not null;default:draft"` // "draft", "published", "cancelled" or "completed"
	IsPublic     bool   `gorm:"not null;default:false"`

	AverageRating float64 `gorm:"not null;default:0"`
	TotalRatings  int     `gorm:"not null;default:0"`

	Speakers      []EventSpeaker      `gorm:"foreignKey:EventID"`
	Registrations []EventRegistration `gorm:"foreignKey:EventID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventSpeaker struct {
	ID uint `gorm:"primaryKey"`

	EventID  uint   `gorm:"not null;index;uniqueIndex:idx_event_speaker"`
	UserID   uint   `gorm:"not null;uniqueIndex:idx_event_speaker"`
	Topic    string `gorm:"not null"`
	Duration int    `gorm:"not null;default:0"`
	Status   string `gorm:"not null;default:pending"` // "pending", "approved" or "rejected"

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventRegistration struct {
	ID uint `gorm:"primaryKey"`

	EventID uint `gorm:"not null;index;uniqueIndex:idx_event_registration"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_event_registration"`

	CreatedAt time.Time `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).Preload("Speakers").First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

// FindPublished lists published public events, newest first.
func (d *EventDAO) FindPublished(ctx context.Context, page, limit int) ([]Event, int64, error) {
	var (
		events []Event
		total  int64
	)

	query := d.db.WithContext(ctx).Model(&Event{}).
		Where("status = ? AND is_public = ?", "published", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := query.Scopes(paginate(page, limit)).Order("date DESC").Find(&events)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return events, total, nil
}

func (d *EventDAO) FindBySchool(ctx context.Context, schoolID uint, page, limit int) ([]Event, int64, error) {
	var (
		events []Event
		total  int64
	)

	query := d.db.WithContext(ctx).Model(&Event{}).Where("host_school_id = ?", schoolID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := query.Scopes(paginate(page, limit)).Order("date DESC").Find(&events)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return events, total, nil
}

func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Save(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// Register inserts a registration after re-checking the capacity ceiling.
// The event row is locked for the duration of the transaction so two
// concurrent registrations cannot both fill the last slot.
func (d *EventDAO) Register(ctx context.Context, eventID, userID uint) (EventRegistration, error) {
	var registration EventRegistration

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}

			return err
		}

		var count int64
		if err := tx.Model(&EventRegistration{}).Where("event_id = ?", eventID).Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(event.Capacity) {
			return ErrEventFull
		}

		registration = EventRegistration{EventID: eventID, UserID: userID}
		if err := tx.Create(&registration).Error; err != nil {
			if isUniqueViolation(err, "idx_event_registration") {
				return ErrAlreadyRegistered
			}

			return err
		}

		return nil
	})
	if err != nil {
		return EventRegistration{}, err
	}

	return registration, nil
}

func (d *EventDAO) Unregister(ctx context.Context, eventID, userID uint) error {
	result := d.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&EventRegistration{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRegistrationNotFound
	}

	return nil
}

func (d *EventDAO) FindRegistration(ctx context.Context, eventID, userID uint) (EventRegistration, error) {
	var registration EventRegistration

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&registration)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventRegistration{}, ErrRegistrationNotFound
		}

		return EventRegistration{}, result.Error
	}

	return registration, nil
}

func (d *EventDAO) InsertSpeaker(ctx context.Context, speaker EventSpeaker) (EventSpeaker, error) {
	result := d.db.WithContext(ctx).Create(&speaker)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_event_speaker") {
			return EventSpeaker{}, ErrDuplicateSpeaker
		}

		return EventSpeaker{}, result.Error
	}

	return speaker, nil
}

func (d *EventDAO) FindSpeaker(ctx context.Context, eventID, speakerID uint) (EventSpeaker, error) {
	var speaker EventSpeaker

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND id = ?", eventID, speakerID).
		First(&speaker)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventSpeaker{}, ErrSpeakerNotFound
		}

		return EventSpeaker{}, result.Error
	}

	return speaker, nil
}

func (d *EventDAO) FindSpeakers(ctx context.Context, eventID uint) ([]EventSpeaker, error) {
	var speakers []EventSpeaker

	result := d.db.WithContext(ctx).Where("event_id = ?", eventID).Order("id").Find(&speakers)
	if result.Error != nil {
		return nil, result.Error
	}

	return speakers, nil
}

// UpdateSpeakerStatus reviews a speaker slot. Approval re-checks the
// max-speakers ceiling under a row lock on the event so the approved count
// can never overshoot.
func (d *EventDAO) UpdateSpeakerStatus(ctx context.Context, eventID, speakerID uint, status string) (EventSpeaker, error) {
	var speaker EventSpeaker

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}

			return err
		}

		if err := tx.Where("event_id = ? AND id = ?", eventID, speakerID).First(&speaker).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSpeakerNotFound
			}

			return err
		}

		if status == "approved" {
			var approved int64
			if err := tx.Model(&EventSpeaker{}).
				Where("event_id = ? AND status = ?", eventID, "approved").
				Count(&approved).Error; err != nil {
				return err
			}
			if approved >= int64(event.MaxSpeakers) {
				return ErrSpeakerCapacity
			}
		}

		speaker.Status = status

		return tx.Save(&speaker).Error
	})
	if err != nil {
		return EventSpeaker{}, err
	}

	return speaker, nil
}

func (d *EventDAO) CountApprovedSpeakers(ctx context.Context, eventID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&EventSpeaker{}).
		Where("event_id = ? AND status = ?", eventID, "approved").
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *EventDAO) CountAll(ctx context.Context) (int64, error) {
	var total int64

	result := d.db.WithContext(ctx).Model(&Event{}).Count(&total)
	if result.Error != nil {
		return 0, result.Error
	}

	return total, nil
}

func (d *EventDAO) CountAfter(ctx context.Context, t time.Time) (int64, error) {
	var total int64

	result := d.db.WithContext(ctx).Model(&Event{}).Where("date > ?", t).Count(&total)
	if result.Error != nil {
		return 0, result.Error
	}

	return total, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		strings.Contains(pgErr.Message, constraint)
}
