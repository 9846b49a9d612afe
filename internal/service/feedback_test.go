package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/edu-events-api/internal/domain"
	"github.com/vietanh2810/edu-events-api/internal/repository"
)

type fakeFeedbackRepo struct {
	feedbacks map[uint]domain.Feedback
	nextID    uint
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{feedbacks: make(map[uint]domain.Feedback), nextID: 1}
}

func (r *fakeFeedbackRepo) Create(_ context.Context, feedback domain.Feedback) (domain.Feedback, error) {
	for _, existing := range r.feedbacks {
		if existing.EventID == feedback.EventID && existing.UserID == feedback.UserID {
			return domain.Feedback{}, repository.ErrDuplicateFeedback
		}
	}

	feedback.ID = r.nextID
	r.nextID++
	r.feedbacks[feedback.ID] = feedback

	return feedback, nil
}

func (r *fakeFeedbackRepo) FindByID(_ context.Context, id uint) (domain.Feedback, error) {
	feedback, ok := r.feedbacks[id]
	if !ok {
		return domain.Feedback{}, repository.ErrFeedbackNotFound
	}

	return feedback, nil
}

func (r *fakeFeedbackRepo) FindByEventAndUser(_ context.Context, eventID, userID uint) (domain.Feedback, error) {
	for _, feedback := range r.feedbacks {
		if feedback.EventID == eventID && feedback.UserID == userID {
			return feedback, nil
		}
	}

	return domain.Feedback{}, repository.ErrFeedbackNotFound
}

func (r *fakeFeedbackRepo) FindByEvent(_ context.Context, eventID uint, _, _ int) ([]domain.Feedback, int64, error) {
	var out []domain.Feedback
	for _, feedback := range r.feedbacks {
		if feedback.EventID == eventID {
			out = append(out, feedback)
		}
	}

	return out, int64(len(out)), nil
}

func (r *fakeFeedbackRepo) FindByUser(_ context.Context, userID uint, _, _ int) ([]domain.Feedback, int64, error) {
	var out []domain.Feedback
	for _, feedback := range r.feedbacks {
		if feedback.UserID == userID {
			out = append(out, feedback)
		}
	}

	return out, int64(len(out)), nil
}

func (r *fakeFeedbackRepo) Update(_ context.Context, feedback domain.Feedback) (domain.Feedback, error) {
	if _, ok := r.feedbacks[feedback.ID]; !ok {
		return domain.Feedback{}, repository.ErrFeedbackNotFound
	}
	r.feedbacks[feedback.ID] = feedback

	return feedback, nil
}

func (r *fakeFeedbackRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.feedbacks[id]; !ok {
		return repository.ErrFeedbackNotFound
	}
	delete(r.feedbacks, id)

	return nil
}

func (r *fakeFeedbackRepo) Histogram(_ context.Context, eventID uint) (map[int]int, error) {
	histogram := make(map[int]int)
	for _, feedback := range r.feedbacks {
		if feedback.EventID == eventID {
			histogram[feedback.Rating]++
		}
	}

	return histogram, nil
}

type fakeFeedbackEventRepo struct {
	events        map[uint]domain.Event
	registrations map[uint]map[uint]bool // eventID -> userID
}

func (r *fakeFeedbackEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

func (r *fakeFeedbackEventRepo) FindRegistration(_ context.Context, eventID, userID uint) (domain.EventRegistration, error) {
	if !r.registrations[eventID][userID] {
		return domain.EventRegistration{}, repository.ErrRegistrationNotFound
	}

	return domain.EventRegistration{EventID: eventID, UserID: userID}, nil
}

func newFeedbackService() (*FeedbackService, *fakeFeedbackRepo, *fakeFeedbackEventRepo) {
	repo := newFakeFeedbackRepo()
	events := &fakeFeedbackEventRepo{
		events: map[uint]domain.Event{
			1: {ID: 1, Status: domain.EventCompleted, AverageRating: 4.5, TotalRatings: 2},
		},
		registrations: map[uint]map[uint]bool{
			1: {student.ID: true},
		},
	}

	return NewFeedbackService(repo, events), repo, events
}

func TestFeedbackService_Submit(t *testing.T) {
	t.Run("registered attendee submits", func(t *testing.T) {
		svc, _, _ := newFeedbackService()

		created, err := svc.Submit(context.Background(), student, domain.Feedback{EventID: 1, Rating: 5, Comment: "great"})
		require.NoError(t, err)
		assert.Equal(t, student.ID, created.UserID)
		assert.Equal(t, 5, created.Rating)
	})

	t.Run("non-attendees are refused", func(t *testing.T) {
		svc, _, _ := newFeedbackService()

		_, err := svc.Submit(context.Background(), speaker, domain.Feedback{EventID: 1, Rating: 4})
		assert.ErrorIs(t, err, ErrNotRegisteredForEvent)
	})

	t.Run("one feedback per attendee per event", func(t *testing.T) {
		svc, _, _ := newFeedbackService()

		_, err := svc.Submit(context.Background(), student, domain.Feedback{EventID: 1, Rating: 5})
		require.NoError(t, err)

		_, err = svc.Submit(context.Background(), student, domain.Feedback{EventID: 1, Rating: 3})
		assert.ErrorIs(t, err, ErrDuplicateFeedback)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc, _, _ := newFeedbackService()

		_, err := svc.Submit(context.Background(), student, domain.Feedback{EventID: 99, Rating: 5})
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestFeedbackService_Update(t *testing.T) {
	svc, _, _ := newFeedbackService()

	created, err := svc.Submit(context.Background(), student, domain.Feedback{EventID: 1, Rating: 5, Comment: "great"})
	require.NoError(t, err)

	t.Run("owner revises", func(t *testing.T) {
		saved, err := svc.Update(context.Background(), student, created.ID, 3, "actually average")
		require.NoError(t, err)
		assert.Equal(t, 3, saved.Rating)
		assert.Equal(t, "actually average", saved.Comment)
	})

	t.Run("strangers are refused", func(t *testing.T) {
		_, err := svc.Update(context.Background(), domain.User{ID: 99, Role: domain.RoleStudent}, created.ID, 1, "")
		assert.ErrorIs(t, err, ErrNotFeedbackOwner)
	})

	t.Run("super admin may moderate", func(t *testing.T) {
		saved, err := svc.Update(context.Background(), superAdmin, created.ID, 3, "moderated")
		require.NoError(t, err)
		assert.Equal(t, "moderated", saved.Comment)
	})
}

func TestFeedbackService_Delete(t *testing.T) {
	svc, _, _ := newFeedbackService()

	created, err := svc.Submit(context.Background(), student, domain.Feedback{EventID: 1, Rating: 5})
	require.NoError(t, err)

	t.Run("strangers are refused", func(t *testing.T) {
		err := svc.Delete(context.Background(), domain.User{ID: 99, Role: domain.RoleStudent}, created.ID)
		assert.ErrorIs(t, err, ErrNotFeedbackOwner)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, svc.Delete(context.Background(), student, created.ID))

		err := svc.Delete(context.Background(), student, created.ID)
		assert.ErrorIs(t, err, ErrFeedbackNotFound)
	})
}

func TestFeedbackService_ListByUser(t *testing.T) {
	svc, repo, _ := newFeedbackService()

	repo.feedbacks[1] = domain.Feedback{ID: 1, EventID: 1, UserID: student.ID, Rating: 5}
	repo.feedbacks[2] = domain.Feedback{ID: 2, EventID: 2, UserID: student.ID, Rating: 3}
	repo.feedbacks[3] = domain.Feedback{ID: 3, EventID: 1, UserID: 99, Rating: 1}

	feedbacks, total, err := svc.ListByUser(context.Background(), student, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, feedback := range feedbacks {
		assert.Equal(t, student.ID, feedback.UserID)
	}
}

func TestFeedbackService_Stats(t *testing.T) {
	svc, repo, _ := newFeedbackService()

	repo.feedbacks[1] = domain.Feedback{ID: 1, EventID: 1, UserID: 50, Rating: 5}
	repo.feedbacks[2] = domain.Feedback{ID: 2, EventID: 1, UserID: 51, Rating: 4}

	stats, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, uint(1), stats.EventID)
	assert.Equal(t, 4.5, stats.AverageRating)
	assert.Equal(t, 2, stats.TotalRatings)
	assert.Equal(t, map[int]int{5: 1, 4: 1}, stats.Histogram)

	_, err = svc.Stats(context.Background(), 99)
	assert.ErrorIs(t, err, ErrEventNotFound)
}
