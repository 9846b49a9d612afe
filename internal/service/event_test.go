package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/edu-events-api/internal/domain"
	"github.com/vietanh2810/edu-events-api/internal/repository"
)

type fakeEventRepo struct {
	events        map[uint]domain.Event
	registrations map[uint]map[uint]domain.EventRegistration // eventID -> userID
	speakers      map[uint]domain.EventSpeaker
	nextID        uint
	nextSpeakerID uint
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:        make(map[uint]domain.Event),
		registrations: make(map[uint]map[uint]domain.EventRegistration),
		speakers:      make(map[uint]domain.EventSpeaker),
		nextID:        1,
		nextSpeakerID: 1,
	}
}

func (r *fakeEventRepo) add(event domain.Event) domain.Event {
	if event.ID == 0 {
		event.ID = r.nextID
		r.nextID++
	}
	r.events[event.ID] = event

	return event
}

func (r *fakeEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	return r.add(event), nil
}

func (r *fakeEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

func (r *fakeEventRepo) FindPublished(_ context.Context, _, _ int) ([]domain.Event, int64, error) {
	var out []domain.Event
	for _, event := range r.events {
		if event.Status == domain.EventPublished {
			out = append(out, event)
		}
	}

	return out, int64(len(out)), nil
}

func (r *fakeEventRepo) FindBySchool(_ context.Context, schoolID uint, _, _ int) ([]domain.Event, int64, error) {
	var out []domain.Event
	for _, event := range r.events {
		if event.HostSchoolID == schoolID {
			out = append(out, event)
		}
	}

	return out, int64(len(out)), nil
}

func (r *fakeEventRepo) Update(_ context.Context, event domain.Event) (domain.Event, error) {
	if _, ok := r.events[event.ID]; !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}
	r.events[event.ID] = event

	return event, nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.events[id]; !ok {
		return repository.ErrEventNotFound
	}
	delete(r.events, id)

	return nil
}

func (r *fakeEventRepo) Register(_ context.Context, eventID, userID uint) (domain.EventRegistration, error) {
	event, ok := r.events[eventID]
	if !ok {
		return domain.EventRegistration{}, repository.ErrEventNotFound
	}
	if r.registrations[eventID] == nil {
		r.registrations[eventID] = make(map[uint]domain.EventRegistration)
	}
	if _, dup := r.registrations[eventID][userID]; dup {
		return domain.EventRegistration{}, repository.ErrAlreadyRegistered
	}
	if len(r.registrations[eventID]) >= event.Capacity {
		return domain.EventRegistration{}, repository.ErrEventFull
	}

	registration := domain.EventRegistration{EventID: eventID, UserID: userID}
	r.registrations[eventID][userID] = registration

	return registration, nil
}

func (r *fakeEventRepo) Unregister(_ context.Context, eventID, userID uint) error {
	if _, ok := r.registrations[eventID][userID]; !ok {
		return repository.ErrRegistrationNotFound
	}
	delete(r.registrations[eventID], userID)

	return nil
}

func (r *fakeEventRepo) FindRegistration(_ context.Context, eventID, userID uint) (domain.EventRegistration, error) {
	registration, ok := r.registrations[eventID][userID]
	if !ok {
		return domain.EventRegistration{}, repository.ErrRegistrationNotFound
	}

	return registration, nil
}

func (r *fakeEventRepo) AddSpeaker(_ context.Context, speaker domain.EventSpeaker) (domain.EventSpeaker, error) {
	for _, existing := range r.speakers {
		if existing.EventID == speaker.EventID && existing.UserID == speaker.UserID {
			return domain.EventSpeaker{}, repository.ErrDuplicateSpeaker
		}
	}

	speaker.ID = r.nextSpeakerID
	r.nextSpeakerID++
	r.speakers[speaker.ID] = speaker

	return speaker, nil
}

func (r *fakeEventRepo) FindSpeaker(_ context.Context, eventID, speakerID uint) (domain.EventSpeaker, error) {
	for _, speaker := range r.speakers {
		if speaker.EventID == eventID && speaker.ID == speakerID {
			return speaker, nil
		}
	}

	return domain.EventSpeaker{}, repository.ErrSpeakerNotFound
}

func (r *fakeEventRepo) FindSpeakers(_ context.Context, eventID uint) ([]domain.EventSpeaker, error) {
	var out []domain.EventSpeaker
	for _, speaker := range r.speakers {
		if speaker.EventID == eventID {
			out = append(out, speaker)
		}
	}

	return out, nil
}

func (r *fakeEventRepo) ReviewSpeaker(_ context.Context, eventID, speakerID uint, status domain.SpeakerStatus) (domain.EventSpeaker, error) {
	speaker, err := r.FindSpeaker(context.Background(), eventID, speakerID)
	if err != nil {
		return domain.EventSpeaker{}, err
	}

	if status == domain.SpeakerApproved {
		event := r.events[eventID]
		approved, _ := r.CountApprovedSpeakers(context.Background(), eventID)
		if approved >= int64(event.MaxSpeakers) {
			return domain.EventSpeaker{}, repository.ErrSpeakerCapacity
		}
	}

	speaker.Status = status
	r.speakers[speaker.ID] = speaker

	return speaker, nil
}

func (r *fakeEventRepo) CountApprovedSpeakers(_ context.Context, eventID uint) (int64, error) {
	var n int64
	for _, speaker := range r.speakers {
		if speaker.EventID == eventID && speaker.Status == domain.SpeakerApproved {
			n++
		}
	}

	return n, nil
}

func (r *fakeEventRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.events)), nil
}

func (r *fakeEventRepo) CountAfter(_ context.Context, t time.Time) (int64, error) {
	var n int64
	for _, event := range r.events {
		if event.Date.After(t) {
			n++
		}
	}

	return n, nil
}

func newEventService() (*EventService, *fakeEventRepo, *fakeSchoolRepo) {
	repo := newFakeEventRepo()
	schoolRepo := newFakeSchoolRepo()
	schoolRepo.add(domain.School{ID: 10, Name: "Northside High", AdminID: schoolAdmin.ID})

	return NewEventService(repo, schoolRepo), repo, schoolRepo
}

func publishedEvent(capacity int) domain.Event {
	return domain.Event{
		HostSchoolID: 10,
		OrganizerID:  schoolAdmin.ID,
		Title:        "Science Fair",
		Date:         time.Now().AddDate(0, 1, 0),
		Location:     "Main hall",
		Capacity:     capacity,
		MaxSpeakers:  1,
		Status:       domain.EventPublished,
		IsPublic:     true,
	}
}

func TestEventService_CreateEvent(t *testing.T) {
	t.Run("school admin creates for their own school", func(t *testing.T) {
		svc, _, _ := newEventService()

		input := publishedEvent(50)
		input.HostSchoolID = 999 // ignored, resolved from the principal
		created, err := svc.CreateEvent(context.Background(), schoolAdmin, input)
		require.NoError(t, err)

		assert.Equal(t, uint(10), created.HostSchoolID)
		assert.Equal(t, schoolAdmin.ID, created.OrganizerID)
	})

	t.Run("super admin creates for any school", func(t *testing.T) {
		svc, _, _ := newEventService()

		input := publishedEvent(50)
		input.HostSchoolID = 20
		created, err := svc.CreateEvent(context.Background(), superAdmin, input)
		require.NoError(t, err)
		assert.Equal(t, uint(20), created.HostSchoolID)
	})

	t.Run("students and speakers cannot create", func(t *testing.T) {
		svc, _, _ := newEventService()

		for _, principal := range []domain.User{student, speaker} {
			_, err := svc.CreateEvent(context.Background(), principal, publishedEvent(50))
			assert.ErrorIs(t, err, ErrNotAuthorized)
		}
	})

	t.Run("school admin without a school", func(t *testing.T) {
		svc, _, _ := newEventService()

		orphan := domain.User{ID: 77, Role: domain.RoleSchoolAdmin}
		_, err := svc.CreateEvent(context.Background(), orphan, publishedEvent(50))
		assert.ErrorIs(t, err, ErrNotAssociated)
	})
}

func TestEventService_UpdateEvent(t *testing.T) {
	svc, repo, schoolRepo := newEventService()
	event := repo.add(publishedEvent(50))

	t.Run("administering school admin updates", func(t *testing.T) {
		updated := event
		updated.Title = "Science Fair 2026"
		updated.IsPublic = false

		saved, err := svc.UpdateEvent(context.Background(), schoolAdmin, event.ID, updated)
		require.NoError(t, err)
		assert.Equal(t, "Science Fair 2026", saved.Title)
		assert.False(t, saved.IsPublic)
	})

	t.Run("blank status leaves the current status alone", func(t *testing.T) {
		updated := event
		updated.Status = ""

		saved, err := svc.UpdateEvent(context.Background(), superAdmin, event.ID, updated)
		require.NoError(t, err)
		assert.Equal(t, domain.EventPublished, saved.Status)
	})

	t.Run("admin of another school is refused", func(t *testing.T) {
		otherAdmin := domain.User{ID: 60, Role: domain.RoleSchoolAdmin}
		schoolRepo.add(domain.School{ID: 20, AdminID: otherAdmin.ID})

		_, err := svc.UpdateEvent(context.Background(), otherAdmin, event.ID, event)
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := svc.UpdateEvent(context.Background(), superAdmin, 999, event)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestEventService_DeleteEvent(t *testing.T) {
	svc, repo, _ := newEventService()
	event := repo.add(publishedEvent(50))

	t.Run("students cannot delete", func(t *testing.T) {
		err := svc.DeleteEvent(context.Background(), student, event.ID)
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("super admin deletes", func(t *testing.T) {
		err := svc.DeleteEvent(context.Background(), superAdmin, event.ID)
		require.NoError(t, err)

		_, err = svc.GetEvent(context.Background(), event.ID)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestEventService_Register(t *testing.T) {
	t.Run("student registers for a published event", func(t *testing.T) {
		svc, repo, _ := newEventService()
		event := repo.add(publishedEvent(50))

		registration, err := svc.Register(context.Background(), student, event.ID)
		require.NoError(t, err)
		assert.Equal(t, student.ID, registration.UserID)

		registered, err := svc.IsRegistered(context.Background(), event.ID, student.ID)
		require.NoError(t, err)
		assert.True(t, registered)
	})

	t.Run("only students register", func(t *testing.T) {
		svc, repo, _ := newEventService()
		event := repo.add(publishedEvent(50))

		for _, principal := range []domain.User{speaker, schoolAdmin, superAdmin} {
			_, err := svc.Register(context.Background(), principal, event.ID)
			assert.ErrorIs(t, err, ErrNotAuthorized)
		}
	})

	t.Run("draft events refuse registrations", func(t *testing.T) {
		svc, repo, _ := newEventService()
		draft := publishedEvent(50)
		draft.Status = domain.EventDraft
		event := repo.add(draft)

		_, err := svc.Register(context.Background(), student, event.ID)
		assert.ErrorIs(t, err, ErrEventNotPublished)
	})

	t.Run("duplicate registration", func(t *testing.T) {
		svc, repo, _ := newEventService()
		event := repo.add(publishedEvent(50))

		_, err := svc.Register(context.Background(), student, event.ID)
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), student, event.ID)
		assert.ErrorIs(t, err, ErrAlreadyRegistered)
	})

	t.Run("full event", func(t *testing.T) {
		svc, repo, _ := newEventService()
		event := repo.add(publishedEvent(1))

		_, err := svc.Register(context.Background(), domain.User{ID: 201, Role: domain.RoleStudent}, event.ID)
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), student, event.ID)
		assert.ErrorIs(t, err, ErrEventFull)
	})

	t.Run("unregister frees the spot", func(t *testing.T) {
		svc, repo, _ := newEventService()
		event := repo.add(publishedEvent(1))

		_, err := svc.Register(context.Background(), student, event.ID)
		require.NoError(t, err)
		require.NoError(t, svc.Unregister(context.Background(), student, event.ID))

		registered, err := svc.IsRegistered(context.Background(), event.ID, student.ID)
		require.NoError(t, err)
		assert.False(t, registered)

		_, err = svc.Register(context.Background(), domain.User{ID: 201, Role: domain.RoleStudent}, event.ID)
		assert.NoError(t, err)
	})

	t.Run("unregister without a registration", func(t *testing.T) {
		svc, repo, _ := newEventService()
		event := repo.add(publishedEvent(50))

		err := svc.Unregister(context.Background(), student, event.ID)
		assert.ErrorIs(t, err, ErrRegistrationNotFound)
	})
}

func TestEventService_Speakers(t *testing.T) {
	t.Run("speaker applies to a published event", func(t *testing.T) {
		svc, repo, _ := newEventService()
		event := repo.add(publishedEvent(50))

		slot, err := svc.ApplySpeaker(context.Background(), speaker, event.ID, "Robotics 101", 45)
		require.NoError(t, err)
		assert.Equal(t, domain.SpeakerPending, slot.Status)
		assert.Equal(t, speaker.ID, slot.UserID)
	})

	t.Run("duplicate application", func(t *testing.T) {
		svc, repo, _ := newEventService()
		event := repo.add(publishedEvent(50))

		_, err := svc.ApplySpeaker(context.Background(), speaker, event.ID, "Robotics 101", 45)
		require.NoError(t, err)

		_, err = svc.ApplySpeaker(context.Background(), speaker, event.ID, "Robotics 201", 30)
		assert.ErrorIs(t, err, ErrDuplicateSpeaker)
	})

	t.Run("review approves up to the ceiling", func(t *testing.T) {
		svc, repo, _ := newEventService()
		event := repo.add(publishedEvent(50)) // MaxSpeakers is 1

		first, err := svc.ApplySpeaker(context.Background(), speaker, event.ID, "Robotics 101", 45)
		require.NoError(t, err)
		second, err := svc.ApplySpeaker(context.Background(), domain.User{ID: 102, Role: domain.RoleSpeaker}, event.ID, "Chemistry", 30)
		require.NoError(t, err)

		reviewed, err := svc.ReviewSpeaker(context.Background(), schoolAdmin, event.ID, first.ID, domain.SpeakerApproved)
		require.NoError(t, err)
		assert.Equal(t, domain.SpeakerApproved, reviewed.Status)

		_, err = svc.ReviewSpeaker(context.Background(), schoolAdmin, event.ID, second.ID, domain.SpeakerApproved)
		assert.ErrorIs(t, err, ErrSpeakerCapacity)
	})

	t.Run("only approved and rejected are valid review statuses", func(t *testing.T) {
		svc, repo, _ := newEventService()
		event := repo.add(publishedEvent(50))

		_, err := svc.ReviewSpeaker(context.Background(), superAdmin, event.ID, 1, domain.SpeakerPending)
		assert.ErrorIs(t, err, ErrInvalidReviewStatus)
	})

	t.Run("speakers cannot review", func(t *testing.T) {
		svc, repo, _ := newEventService()
		event := repo.add(publishedEvent(50))

		slot, err := svc.ApplySpeaker(context.Background(), speaker, event.ID, "Robotics 101", 45)
		require.NoError(t, err)

		_, err = svc.ReviewSpeaker(context.Background(), speaker, event.ID, slot.ID, domain.SpeakerApproved)
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})
}

func TestEventService_Listing(t *testing.T) {
	svc, repo, _ := newEventService()
	repo.add(publishedEvent(50))
	draft := publishedEvent(50)
	draft.Status = domain.EventDraft
	repo.add(draft)
	foreign := publishedEvent(50)
	foreign.HostSchoolID = 20
	repo.add(foreign)

	t.Run("published listing skips drafts", func(t *testing.T) {
		_, total, err := svc.ListPublished(context.Background(), 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("school listing filters by host school", func(t *testing.T) {
		events, total, err := svc.ListBySchool(context.Background(), 10, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		for _, event := range events {
			assert.Equal(t, uint(10), event.HostSchoolID)
		}
	})
}
