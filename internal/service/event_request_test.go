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

type fakeEventRequestRepo struct {
	requests map[uint]domain.EventRequest
	nextID   uint
}

func newFakeEventRequestRepo() *fakeEventRequestRepo {
	return &fakeEventRequestRepo{
		requests: make(map[uint]domain.EventRequest),
		nextID:   1,
	}
}

func (r *fakeEventRequestRepo) Create(_ context.Context, request domain.EventRequest) (domain.EventRequest, error) {
	request.ID = r.nextID
	r.nextID++
	r.requests[request.ID] = request

	return request, nil
}

func (r *fakeEventRequestRepo) FindByID(_ context.Context, id uint) (domain.EventRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return domain.EventRequest{}, repository.ErrEventRequestNotFound
	}

	return request, nil
}

func (r *fakeEventRequestRepo) FindAll(_ context.Context, schoolID uint, status domain.RequestStatus, _, _ int) ([]domain.EventRequest, int64, error) {
	var out []domain.EventRequest
	for _, request := range r.requests {
		if schoolID != 0 && request.SchoolID != schoolID {
			continue
		}
		if status != "" && request.Status != status {
			continue
		}
		out = append(out, request)
	}

	return out, int64(len(out)), nil
}

func (r *fakeEventRequestRepo) Update(_ context.Context, request domain.EventRequest) (domain.EventRequest, error) {
	if _, ok := r.requests[request.ID]; !ok {
		return domain.EventRequest{}, repository.ErrEventRequestNotFound
	}
	r.requests[request.ID] = request

	return request, nil
}

func (r *fakeEventRequestRepo) Review(_ context.Context, requestID, reviewerID uint, status domain.RequestStatus, note string) (domain.EventRequest, error) {
	request, ok := r.requests[requestID]
	if !ok {
		return domain.EventRequest{}, repository.ErrEventRequestNotFound
	}
	if request.Status != domain.RequestPending {
		return domain.EventRequest{}, repository.ErrRequestNotPending
	}

	request.Status = status
	request.ReviewedBy = &reviewerID
	request.ReviewNote = note
	if status == domain.RequestApproved {
		eventID := uint(100 + requestID)
		request.ApprovedEventID = &eventID
	}
	r.requests[requestID] = request

	return request, nil
}

func (r *fakeEventRequestRepo) Delete(_ context.Context, id uint) error {
	request, ok := r.requests[id]
	if !ok {
		return repository.ErrEventRequestNotFound
	}
	if request.Status == domain.RequestApproved {
		return repository.ErrRequestApproved
	}
	delete(r.requests, id)

	return nil
}

func (r *fakeEventRequestRepo) CountByStatus(_ context.Context) (map[domain.RequestStatus]int64, error) {
	counts := make(map[domain.RequestStatus]int64)
	for _, request := range r.requests {
		counts[request.Status]++
	}

	return counts, nil
}

type fakeSchoolRepo struct {
	schools        map[uint]domain.School
	schoolsByAdmin map[uint]uint
}

func newFakeSchoolRepo() *fakeSchoolRepo {
	return &fakeSchoolRepo{
		schools:        make(map[uint]domain.School),
		schoolsByAdmin: make(map[uint]uint),
	}
}

func (r *fakeSchoolRepo) add(school domain.School) {
	r.schools[school.ID] = school
	r.schoolsByAdmin[school.AdminID] = school.ID
	for _, admin := range school.AdditionalAdmins {
		r.schoolsByAdmin[admin.ID] = school.ID
	}
}

func (r *fakeSchoolRepo) FindByID(_ context.Context, id uint) (domain.School, error) {
	school, ok := r.schools[id]
	if !ok {
		return domain.School{}, repository.ErrSchoolNotFound
	}

	return school, nil
}

func (r *fakeSchoolRepo) FindByAdmin(_ context.Context, userID uint) (domain.School, error) {
	schoolID, ok := r.schoolsByAdmin[userID]
	if !ok {
		return domain.School{}, repository.ErrSchoolNotFound
	}

	return r.schools[schoolID], nil
}

var (
	superAdmin  = domain.User{ID: 1, Role: domain.RoleSuperAdmin}
	schoolAdmin = domain.User{ID: 2, Role: domain.RoleSchoolAdmin}
	student     = domain.User{ID: 3, Role: domain.RoleStudent}
	speaker     = domain.User{ID: 4, Role: domain.RoleSpeaker}
)

func newEventRequestService() (*EventRequestService, *fakeEventRequestRepo, *fakeSchoolRepo) {
	repo := newFakeEventRequestRepo()
	schoolRepo := newFakeSchoolRepo()
	schoolRepo.add(domain.School{ID: 10, Name: "Northside High", AdminID: schoolAdmin.ID})

	return NewEventRequestService(repo, schoolRepo), repo, schoolRepo
}

func proposal() domain.EventRequest {
	return domain.EventRequest{
		Title:            "Science Fair",
		Description:      "Annual science fair",
		ProposedDate:     time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC),
		Location:         "Main Hall",
		ExpectedCapacity: 200,
		MaxSpeakers:      3,
		Justification:    "Tradition",
	}
}

func TestEventRequestService_Submit(t *testing.T) {
	t.Run("school admin submits for own school", func(t *testing.T) {
		svc, _, _ := newEventRequestService()

		created, err := svc.Submit(context.Background(), schoolAdmin, proposal())
		require.NoError(t, err)

		assert.Equal(t, uint(10), created.SchoolID)
		assert.Equal(t, schoolAdmin.ID, created.RequestedBy)
		assert.Equal(t, domain.RequestPending, created.Status)
		assert.Nil(t, created.ReviewedBy)
		assert.Nil(t, created.ApprovedEventID)
	})

	t.Run("client cannot choose status or school", func(t *testing.T) {
		svc, _, _ := newEventRequestService()

		sneaky := proposal()
		sneaky.SchoolID = 99
		sneaky.Status = domain.RequestApproved

		created, err := svc.Submit(context.Background(), schoolAdmin, sneaky)
		require.NoError(t, err)
		assert.Equal(t, uint(10), created.SchoolID)
		assert.Equal(t, domain.RequestPending, created.Status)
	})

	t.Run("other roles are refused", func(t *testing.T) {
		svc, _, _ := newEventRequestService()

		for _, principal := range []domain.User{student, speaker, superAdmin} {
			_, err := svc.Submit(context.Background(), principal, proposal())
			assert.ErrorIs(t, err, ErrNotAuthorized)
		}
	})

	t.Run("admin without a school is refused", func(t *testing.T) {
		svc, _, _ := newEventRequestService()

		orphan := domain.User{ID: 77, Role: domain.RoleSchoolAdmin}
		_, err := svc.Submit(context.Background(), orphan, proposal())
		assert.ErrorIs(t, err, ErrNotAssociated)
	})
}

func TestEventRequestService_Edit(t *testing.T) {
	makeRequest := func(t *testing.T, svc *EventRequestService) domain.EventRequest {
		t.Helper()
		created, err := svc.Submit(context.Background(), schoolAdmin, proposal())
		require.NoError(t, err)
		return created
	}

	t.Run("edit resets needs_revision back to pending", func(t *testing.T) {
		svc, repo, _ := newEventRequestService()
		created := makeRequest(t, svc)

		stored := repo.requests[created.ID]
		stored.Status = domain.RequestNeedsRevision
		repo.requests[created.ID] = stored

		updated := proposal()
		updated.Title = "Science Fair v2"
		saved, err := svc.Edit(context.Background(), schoolAdmin, created.ID, updated)
		require.NoError(t, err)

		assert.Equal(t, "Science Fair v2", saved.Title)
		assert.Equal(t, domain.RequestPending, saved.Status)
	})

	t.Run("finalized requests refuse edits", func(t *testing.T) {
		for _, status := range []domain.RequestStatus{domain.RequestApproved, domain.RequestRejected} {
			svc, repo, _ := newEventRequestService()
			created := makeRequest(t, svc)

			stored := repo.requests[created.ID]
			stored.Status = status
			repo.requests[created.ID] = stored

			_, err := svc.Edit(context.Background(), schoolAdmin, created.ID, proposal())
			assert.ErrorIs(t, err, ErrRequestFinalized)
		}
	})

	t.Run("only the owner can edit", func(t *testing.T) {
		svc, _, _ := newEventRequestService()
		created := makeRequest(t, svc)

		_, err := svc.Edit(context.Background(), domain.User{ID: 42, Role: domain.RoleSchoolAdmin}, created.ID, proposal())
		assert.ErrorIs(t, err, ErrNotRequestOwner)
	})
}

func TestEventRequestService_Review(t *testing.T) {
	t.Run("only super admins review", func(t *testing.T) {
		svc, _, _ := newEventRequestService()
		created, err := svc.Submit(context.Background(), schoolAdmin, proposal())
		require.NoError(t, err)

		_, err = svc.Review(context.Background(), schoolAdmin, created.ID, domain.RequestApproved, "")
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("approval records reviewer and linked event", func(t *testing.T) {
		svc, _, _ := newEventRequestService()
		created, err := svc.Submit(context.Background(), schoolAdmin, proposal())
		require.NoError(t, err)

		reviewed, err := svc.Review(context.Background(), superAdmin, created.ID, domain.RequestApproved, "looks good")
		require.NoError(t, err)

		assert.Equal(t, domain.RequestApproved, reviewed.Status)
		require.NotNil(t, reviewed.ReviewedBy)
		assert.Equal(t, superAdmin.ID, *reviewed.ReviewedBy)
		assert.NotNil(t, reviewed.ApprovedEventID)
		assert.Equal(t, "looks good", reviewed.ReviewNote)
	})

	t.Run("rejects statuses outside the review set", func(t *testing.T) {
		svc, _, _ := newEventRequestService()
		created, err := svc.Submit(context.Background(), schoolAdmin, proposal())
		require.NoError(t, err)

		for _, status := range []domain.RequestStatus{domain.RequestPending, domain.RequestWaitlisted, "bogus"} {
			_, err = svc.Review(context.Background(), superAdmin, created.ID, status, "")
			assert.ErrorIs(t, err, ErrInvalidReviewStatus)
		}
	})

	t.Run("already reviewed requests cannot be reviewed again", func(t *testing.T) {
		svc, _, _ := newEventRequestService()
		created, err := svc.Submit(context.Background(), schoolAdmin, proposal())
		require.NoError(t, err)

		_, err = svc.Review(context.Background(), superAdmin, created.ID, domain.RequestRejected, "")
		require.NoError(t, err)

		_, err = svc.Review(context.Background(), superAdmin, created.ID, domain.RequestApproved, "")
		assert.ErrorIs(t, err, ErrRequestNotPending)
	})
}

func TestEventRequestService_Delete(t *testing.T) {
	t.Run("approved requests cannot be deleted", func(t *testing.T) {
		svc, _, _ := newEventRequestService()
		created, err := svc.Submit(context.Background(), schoolAdmin, proposal())
		require.NoError(t, err)

		_, err = svc.Review(context.Background(), superAdmin, created.ID, domain.RequestApproved, "")
		require.NoError(t, err)

		err = svc.Delete(context.Background(), schoolAdmin, created.ID)
		assert.ErrorIs(t, err, ErrRequestApproved)
	})

	t.Run("strangers cannot delete", func(t *testing.T) {
		svc, _, _ := newEventRequestService()
		created, err := svc.Submit(context.Background(), schoolAdmin, proposal())
		require.NoError(t, err)

		err = svc.Delete(context.Background(), domain.User{ID: 42, Role: domain.RoleSchoolAdmin}, created.ID)
		assert.ErrorIs(t, err, ErrNotRequestOwner)
	})
}

func TestEventRequestService_List(t *testing.T) {
	svc, _, schoolRepo := newEventRequestService()

	otherAdmin := domain.User{ID: 50, Role: domain.RoleSchoolAdmin}
	schoolRepo.add(domain.School{ID: 20, Name: "Southside High", AdminID: otherAdmin.ID})

	_, err := svc.Submit(context.Background(), schoolAdmin, proposal())
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), otherAdmin, proposal())
	require.NoError(t, err)

	t.Run("super admin sees everything", func(t *testing.T) {
		requests, total, err := svc.List(context.Background(), superAdmin, "", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, requests, 2)
	})

	t.Run("school admin sees own school only", func(t *testing.T) {
		requests, total, err := svc.List(context.Background(), schoolAdmin, "", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, requests, 1)
		assert.Equal(t, uint(10), requests[0].SchoolID)
	})

	t.Run("students cannot list", func(t *testing.T) {
		_, _, err := svc.List(context.Background(), student, "", 1, 20)
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})
}
