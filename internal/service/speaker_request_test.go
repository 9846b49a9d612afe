package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/edu-events-api/internal/domain"
	"github.com/vietanh2810/edu-events-api/internal/repository"
)

type fakeSpeakerRequestRepo struct {
	requests         map[uint]domain.SpeakerRequest
	approvedSpeakers map[uint]int64 // eventID -> approved slot count
	maxSpeakers      map[uint]int   // eventID -> ceiling, enforced in Review
	nextID           uint
}

func newFakeSpeakerRequestRepo() *fakeSpeakerRequestRepo {
	return &fakeSpeakerRequestRepo{
		requests:         make(map[uint]domain.SpeakerRequest),
		approvedSpeakers: make(map[uint]int64),
		maxSpeakers:      make(map[uint]int),
		nextID:           1,
	}
}

func (r *fakeSpeakerRequestRepo) Create(_ context.Context, request domain.SpeakerRequest) (domain.SpeakerRequest, error) {
	for _, existing := range r.requests {
		if existing.EventID == request.EventID && existing.SpeakerID == request.SpeakerID {
			return domain.SpeakerRequest{}, repository.ErrDuplicateApplication
		}
	}

	request.ID = r.nextID
	r.nextID++
	r.requests[request.ID] = request

	return request, nil
}

func (r *fakeSpeakerRequestRepo) FindByID(_ context.Context, id uint) (domain.SpeakerRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return domain.SpeakerRequest{}, repository.ErrSpeakerRequestNotFound
	}

	return request, nil
}

func (r *fakeSpeakerRequestRepo) FindByEventAndSpeaker(_ context.Context, eventID, speakerID uint) (domain.SpeakerRequest, error) {
	for _, request := range r.requests {
		if request.EventID == eventID && request.SpeakerID == speakerID {
			return request, nil
		}
	}

	return domain.SpeakerRequest{}, repository.ErrSpeakerRequestNotFound
}

func (r *fakeSpeakerRequestRepo) FindAll(_ context.Context, speakerID, eventID uint, status domain.RequestStatus, _, _ int) ([]domain.SpeakerRequest, int64, error) {
	var out []domain.SpeakerRequest
	for _, request := range r.requests {
		if speakerID != 0 && request.SpeakerID != speakerID {
			continue
		}
		if eventID != 0 && request.EventID != eventID {
			continue
		}
		if status != "" && request.Status != status {
			continue
		}
		out = append(out, request)
	}

	return out, int64(len(out)), nil
}

func (r *fakeSpeakerRequestRepo) FindByOrganizerSchool(_ context.Context, _ uint, _ domain.RequestStatus, _, _ int) ([]domain.SpeakerRequest, int64, error) {
	return nil, 0, nil
}

func (r *fakeSpeakerRequestRepo) Update(_ context.Context, request domain.SpeakerRequest) (domain.SpeakerRequest, error) {
	if _, ok := r.requests[request.ID]; !ok {
		return domain.SpeakerRequest{}, repository.ErrSpeakerRequestNotFound
	}
	r.requests[request.ID] = request

	return request, nil
}

func (r *fakeSpeakerRequestRepo) Review(_ context.Context, requestID, reviewerID uint, status domain.RequestStatus, note string) (domain.SpeakerRequest, error) {
	request, ok := r.requests[requestID]
	if !ok {
		return domain.SpeakerRequest{}, repository.ErrSpeakerRequestNotFound
	}
	if request.Status != domain.RequestPending && request.Status != domain.RequestWaitlisted {
		return domain.SpeakerRequest{}, repository.ErrSpeakerRequestNotPending
	}

	if status == domain.RequestApproved {
		if r.approvedSpeakers[request.EventID] >= int64(r.maxSpeakers[request.EventID]) {
			return domain.SpeakerRequest{}, repository.ErrSpeakerCapacity
		}
		r.approvedSpeakers[request.EventID]++
	}

	request.Status = status
	request.ReviewedBy = &reviewerID
	request.ReviewNote = note
	r.requests[requestID] = request

	return request, nil
}

func (r *fakeSpeakerRequestRepo) Delete(_ context.Context, id uint) error {
	request, ok := r.requests[id]
	if !ok {
		return repository.ErrSpeakerRequestNotFound
	}
	if request.Status == domain.RequestApproved {
		return repository.ErrSpeakerRequestApproved
	}
	delete(r.requests, id)

	return nil
}

func (r *fakeSpeakerRequestRepo) CountApprovedByEvent(_ context.Context, eventID uint) (int64, error) {
	return r.approvedSpeakers[eventID], nil
}

func (r *fakeSpeakerRequestRepo) CountByStatus(_ context.Context) (map[domain.RequestStatus]int64, error) {
	counts := make(map[domain.RequestStatus]int64)
	for _, request := range r.requests {
		counts[request.Status]++
	}

	return counts, nil
}

type fakeEventFinder struct {
	events map[uint]domain.Event
}

func (r *fakeEventFinder) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

func newSpeakerRequestService() (*SpeakerRequestService, *fakeSpeakerRequestRepo, *fakeEventFinder, *fakeSchoolRepo) {
	repo := newFakeSpeakerRequestRepo()
	events := &fakeEventFinder{events: map[uint]domain.Event{
		1: {ID: 1, HostSchoolID: 10, Status: domain.EventPublished, MaxSpeakers: 2},
		2: {ID: 2, HostSchoolID: 10, Status: domain.EventDraft, MaxSpeakers: 2},
	}}
	repo.maxSpeakers[1] = 2
	schoolRepo := newFakeSchoolRepo()
	schoolRepo.add(domain.School{ID: 10, Name: "Northside High", AdminID: schoolAdmin.ID})

	return NewSpeakerRequestService(repo, events, schoolRepo), repo, events, schoolRepo
}

func application(eventID uint) domain.SpeakerRequest {
	return domain.SpeakerRequest{
		EventID:  eventID,
		Topic:    "Robotics 101",
		Duration: 45,
		Abstract: "Intro to robotics",
	}
}

func TestSpeakerRequestService_Submit(t *testing.T) {
	t.Run("speaker applies to a published event", func(t *testing.T) {
		svc, _, _, _ := newSpeakerRequestService()

		created, err := svc.Submit(context.Background(), speaker, application(1))
		require.NoError(t, err)

		assert.Equal(t, speaker.ID, created.SpeakerID)
		assert.Equal(t, domain.RequestPending, created.Status)
	})

	t.Run("only speakers apply", func(t *testing.T) {
		svc, _, _, _ := newSpeakerRequestService()

		for _, principal := range []domain.User{student, schoolAdmin, superAdmin} {
			_, err := svc.Submit(context.Background(), principal, application(1))
			assert.ErrorIs(t, err, ErrNotAuthorized)
		}
	})

	t.Run("unpublished events refuse applications", func(t *testing.T) {
		svc, _, _, _ := newSpeakerRequestService()

		_, err := svc.Submit(context.Background(), speaker, application(2))
		assert.ErrorIs(t, err, ErrEventNotPublished)
	})

	t.Run("one application per event per speaker", func(t *testing.T) {
		svc, _, _, _ := newSpeakerRequestService()

		_, err := svc.Submit(context.Background(), speaker, application(1))
		require.NoError(t, err)

		_, err = svc.Submit(context.Background(), speaker, application(1))
		assert.ErrorIs(t, err, ErrDuplicateApplication)
	})

	t.Run("full events refuse new applications", func(t *testing.T) {
		svc, repo, _, _ := newSpeakerRequestService()
		repo.approvedSpeakers[1] = 2 // ceiling reached

		_, err := svc.Submit(context.Background(), speaker, application(1))
		assert.ErrorIs(t, err, ErrSpeakerCapacity)
	})
}

func TestSpeakerRequestService_Edit(t *testing.T) {
	svc, repo, _, _ := newSpeakerRequestService()

	created, err := svc.Submit(context.Background(), speaker, application(1))
	require.NoError(t, err)

	t.Run("waitlisted application drops back to pending on edit", func(t *testing.T) {
		stored := repo.requests[created.ID]
		stored.Status = domain.RequestWaitlisted
		repo.requests[created.ID] = stored

		updated := application(1)
		updated.Topic = "Robotics 201"
		saved, err := svc.Edit(context.Background(), speaker, created.ID, updated)
		require.NoError(t, err)

		assert.Equal(t, "Robotics 201", saved.Topic)
		assert.Equal(t, domain.RequestPending, saved.Status)
	})

	t.Run("only the applicant edits", func(t *testing.T) {
		_, err := svc.Edit(context.Background(), domain.User{ID: 99, Role: domain.RoleSpeaker}, created.ID, application(1))
		assert.ErrorIs(t, err, ErrNotApplicant)
	})

	t.Run("finalized applications refuse edits", func(t *testing.T) {
		stored := repo.requests[created.ID]
		stored.Status = domain.RequestApproved
		repo.requests[created.ID] = stored

		_, err := svc.Edit(context.Background(), speaker, created.ID, application(1))
		assert.ErrorIs(t, err, ErrRequestFinalized)
	})
}

func TestSpeakerRequestService_Review(t *testing.T) {
	submit := func(t *testing.T, svc *SpeakerRequestService, applicant domain.User) domain.SpeakerRequest {
		t.Helper()
		created, err := svc.Submit(context.Background(), applicant, application(1))
		require.NoError(t, err)
		return created
	}

	t.Run("school admin of the host school approves", func(t *testing.T) {
		svc, _, _, _ := newSpeakerRequestService()
		created := submit(t, svc, speaker)

		reviewed, err := svc.Review(context.Background(), schoolAdmin, created.ID, domain.RequestApproved, "")
		require.NoError(t, err)
		assert.Equal(t, domain.RequestApproved, reviewed.Status)
	})

	t.Run("admin of another school is refused", func(t *testing.T) {
		svc, _, _, schoolRepo := newSpeakerRequestService()
		otherAdmin := domain.User{ID: 60, Role: domain.RoleSchoolAdmin}
		schoolRepo.add(domain.School{ID: 20, AdminID: otherAdmin.ID})
		created := submit(t, svc, speaker)

		_, err := svc.Review(context.Background(), otherAdmin, created.ID, domain.RequestApproved, "")
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("waitlisted applications stay reviewable", func(t *testing.T) {
		svc, _, _, _ := newSpeakerRequestService()
		created := submit(t, svc, speaker)

		_, err := svc.Review(context.Background(), superAdmin, created.ID, domain.RequestWaitlisted, "no slots yet")
		require.NoError(t, err)

		reviewed, err := svc.Review(context.Background(), superAdmin, created.ID, domain.RequestApproved, "slot opened")
		require.NoError(t, err)
		assert.Equal(t, domain.RequestApproved, reviewed.Status)
	})

	t.Run("rejected applications are final", func(t *testing.T) {
		svc, _, _, _ := newSpeakerRequestService()
		created := submit(t, svc, speaker)

		_, err := svc.Review(context.Background(), superAdmin, created.ID, domain.RequestRejected, "")
		require.NoError(t, err)

		_, err = svc.Review(context.Background(), superAdmin, created.ID, domain.RequestApproved, "")
		assert.ErrorIs(t, err, ErrSpeakerRequestNotPending)
	})

	t.Run("approval stops at the speaker ceiling", func(t *testing.T) {
		svc, _, _, _ := newSpeakerRequestService()

		first := submit(t, svc, domain.User{ID: 101, Role: domain.RoleSpeaker})
		second := submit(t, svc, domain.User{ID: 102, Role: domain.RoleSpeaker})
		third := submit(t, svc, domain.User{ID: 103, Role: domain.RoleSpeaker})

		_, err := svc.Review(context.Background(), superAdmin, first.ID, domain.RequestApproved, "")
		require.NoError(t, err)
		_, err = svc.Review(context.Background(), superAdmin, second.ID, domain.RequestApproved, "")
		require.NoError(t, err)

		_, err = svc.Review(context.Background(), superAdmin, third.ID, domain.RequestApproved, "")
		assert.ErrorIs(t, err, ErrSpeakerCapacity)
	})

	t.Run("needs_revision is not a valid speaker review status", func(t *testing.T) {
		svc, _, _, _ := newSpeakerRequestService()
		created := submit(t, svc, speaker)

		_, err := svc.Review(context.Background(), superAdmin, created.ID, domain.RequestNeedsRevision, "")
		assert.ErrorIs(t, err, ErrInvalidReviewStatus)
	})
}

func TestSpeakerRequestService_List(t *testing.T) {
	svc, _, _, _ := newSpeakerRequestService()

	other := domain.User{ID: 102, Role: domain.RoleSpeaker}
	_, err := svc.Submit(context.Background(), speaker, application(1))
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), other, application(1))
	require.NoError(t, err)

	t.Run("speakers see only their own", func(t *testing.T) {
		requests, total, err := svc.List(context.Background(), speaker, 0, "", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, requests, 1)
		assert.Equal(t, speaker.ID, requests[0].SpeakerID)
	})

	t.Run("super admin sees all", func(t *testing.T) {
		_, total, err := svc.List(context.Background(), superAdmin, 0, "", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("students cannot list", func(t *testing.T) {
		_, _, err := svc.List(context.Background(), student, 0, "", 1, 20)
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})
}
