package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/edu-events-api/internal/domain"
	"github.com/vietanh2810/edu-events-api/internal/repository"
)

type fakeSchoolUsers struct {
	users map[uint]domain.User
}

func (r *fakeSchoolUsers) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

type fakeSchoolStore struct {
	schools map[uint]domain.School
	users   *fakeSchoolUsers
	nextID  uint
}

func newFakeSchoolStore(users *fakeSchoolUsers) *fakeSchoolStore {
	return &fakeSchoolStore{schools: make(map[uint]domain.School), users: users, nextID: 1}
}

// CreateWithAdmin mirrors the transactional DAO path: either both the school
// row and the admin promotion land, or neither does.
func (r *fakeSchoolStore) CreateWithAdmin(_ context.Context, school domain.School) (domain.School, error) {
	admin, ok := r.users.users[school.AdminID]
	if !ok {
		return domain.School{}, repository.ErrUserNotFound
	}

	school.ID = r.nextID
	r.nextID++
	r.schools[school.ID] = school

	admin.Role = domain.RoleSchoolAdmin
	admin.SchoolID = &school.ID
	r.users.users[admin.ID] = admin

	return school, nil
}

func (r *fakeSchoolStore) FindByID(_ context.Context, id uint) (domain.School, error) {
	school, ok := r.schools[id]
	if !ok {
		return domain.School{}, repository.ErrSchoolNotFound
	}

	return school, nil
}

func (r *fakeSchoolStore) FindByAdmin(_ context.Context, userID uint) (domain.School, error) {
	for _, school := range r.schools {
		if school.IsAdministeredBy(userID) {
			return school, nil
		}
	}

	return domain.School{}, repository.ErrSchoolNotFound
}

func (r *fakeSchoolStore) FindAll(_ context.Context, _, _ int) ([]domain.School, int64, error) {
	var out []domain.School
	for _, school := range r.schools {
		out = append(out, school)
	}

	return out, int64(len(out)), nil
}

func (r *fakeSchoolStore) Update(_ context.Context, school domain.School) (domain.School, error) {
	if _, ok := r.schools[school.ID]; !ok {
		return domain.School{}, repository.ErrSchoolNotFound
	}
	r.schools[school.ID] = school

	return school, nil
}

func (r *fakeSchoolStore) ReplaceAdditionalAdmins(_ context.Context, schoolID uint, admins []domain.User) error {
	school, ok := r.schools[schoolID]
	if !ok {
		return repository.ErrSchoolNotFound
	}
	school.AdditionalAdmins = admins
	r.schools[schoolID] = school

	return nil
}

func (r *fakeSchoolStore) Delete(_ context.Context, id uint) error {
	if _, ok := r.schools[id]; !ok {
		return repository.ErrSchoolNotFound
	}
	delete(r.schools, id)

	return nil
}

func (r *fakeSchoolStore) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.schools)), nil
}

func newSchoolService() (*SchoolService, *fakeSchoolStore, *fakeSchoolUsers) {
	users := &fakeSchoolUsers{users: map[uint]domain.User{
		7: {ID: 7, Role: domain.RoleStudent, IsActive: true},
	}}
	store := newFakeSchoolStore(users)

	return NewSchoolService(store, users), store, users
}

func TestSchoolService_CreateSchool(t *testing.T) {
	t.Run("school and admin promotion land together", func(t *testing.T) {
		svc, _, users := newSchoolService()

		created, err := svc.CreateSchool(context.Background(), superAdmin, domain.School{
			Name:    "Northside High",
			Address: "1 Main St",
			AdminID: 7,
		})
		require.NoError(t, err)

		admin := users.users[7]
		assert.Equal(t, domain.RoleSchoolAdmin, admin.Role)
		require.NotNil(t, admin.SchoolID)
		assert.Equal(t, created.ID, *admin.SchoolID)
	})

	t.Run("unknown admin leaves no school behind", func(t *testing.T) {
		svc, store, _ := newSchoolService()

		_, err := svc.CreateSchool(context.Background(), superAdmin, domain.School{
			Name:    "Ghost High",
			AdminID: 99,
		})
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Empty(t, store.schools)
	})

	t.Run("only super admins may register schools", func(t *testing.T) {
		svc, _, _ := newSchoolService()

		for _, principal := range []domain.User{schoolAdmin, student, speaker} {
			_, err := svc.CreateSchool(context.Background(), principal, domain.School{Name: "X", AdminID: 7})
			assert.ErrorIs(t, err, ErrNotAuthorized)
		}
	})
}

func TestSchoolService_UpdateSchool(t *testing.T) {
	svc, store, _ := newSchoolService()

	store.schools[1] = domain.School{ID: 1, Name: "Old Name", AdminID: schoolAdmin.ID}

	t.Run("own admin edits", func(t *testing.T) {
		saved, err := svc.UpdateSchool(context.Background(), schoolAdmin, 1, domain.School{Name: "New Name"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "New Name", saved.Name)
	})

	t.Run("foreign admins are refused", func(t *testing.T) {
		_, err := svc.UpdateSchool(context.Background(), domain.User{ID: 55, Role: domain.RoleSchoolAdmin}, 1, domain.School{Name: "Hijack"}, nil)
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})
}

func TestSchoolService_DeleteSchool(t *testing.T) {
	svc, store, _ := newSchoolService()
	store.schools[1] = domain.School{ID: 1, Name: "Closing Down", AdminID: schoolAdmin.ID}

	assert.ErrorIs(t, svc.DeleteSchool(context.Background(), schoolAdmin, 1), ErrNotAuthorized)
	require.NoError(t, svc.DeleteSchool(context.Background(), superAdmin, 1))
	assert.Empty(t, store.schools)
}
