package staff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/avelsk/NSD-SchedulingService/internal/domain"
	staffRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/staff"
)

type fakeStaffRepo struct {
	hasAdmin  bool
	createErr error

	created *domain.Staff
	list    []*domain.Staff
}

func (f *fakeStaffRepo) Create(_ context.Context, member *domain.Staff) (*domain.Staff, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *member
	created.ID = 1
	f.created = &created
	return &created, nil
}

func (f *fakeStaffRepo) List(_ context.Context) ([]*domain.Staff, error) {
	return f.list, nil
}

func (f *fakeStaffRepo) HasAdmin(_ context.Context) (bool, error) {
	return f.hasAdmin, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validBootstrapRequest() *BootstrapAdminRequest {
	return &BootstrapAdminRequest{
		Name:     "Администратор",
		Email:    "admin@example.com",
		Password: "secret-password",
	}
}

func TestBootstrapAdmin_Success(t *testing.T) {
	repo := &fakeStaffRepo{}
	svc := NewService(repo, false, nopLogger{})

	resp, err := svc.BootstrapAdmin(context.Background(), validBootstrapRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.RoleAdmin), resp.Role)
	assert.Equal(t, "admin@example.com", resp.Email)

	// Пароль хранится только в виде bcrypt хеша
	require.NotNil(t, repo.created)
	assert.NotContains(t, repo.created.PasswordHash, "secret-password")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("secret-password")))
}

func TestBootstrapAdmin_ForbiddenInProduction(t *testing.T) {
	svc := NewService(&fakeStaffRepo{}, true, nopLogger{})

	_, err := svc.BootstrapAdmin(context.Background(), validBootstrapRequest())
	assert.ErrorIs(t, err, ErrForbiddenInProduction)
}

func TestBootstrapAdmin_AdminExists(t *testing.T) {
	svc := NewService(&fakeStaffRepo{hasAdmin: true}, false, nopLogger{})

	_, err := svc.BootstrapAdmin(context.Background(), validBootstrapRequest())
	assert.ErrorIs(t, err, ErrAdminExists)
}

func TestBootstrapAdmin_EmailTaken(t *testing.T) {
	svc := NewService(&fakeStaffRepo{createErr: staffRepo.ErrEmailTaken}, false, nopLogger{})

	_, err := svc.BootstrapAdmin(context.Background(), validBootstrapRequest())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestBootstrapAdmin_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *BootstrapAdminRequest)
	}{
		{"нет имени", func(r *BootstrapAdminRequest) { r.Name = " " }},
		{"email без @", func(r *BootstrapAdminRequest) { r.Email = "admin.example.com" }},
		{"короткий пароль", func(r *BootstrapAdminRequest) { r.Password = "short" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeStaffRepo{}, false, nopLogger{})
			req := validBootstrapRequest()
			tt.mutate(req)

			_, err := svc.BootstrapAdmin(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestList(t *testing.T) {
	repo := &fakeStaffRepo{list: []*domain.Staff{
		{ID: 1, Name: "Сато", Email: "sato@example.com", Role: domain.RoleStaff},
	}}
	svc := NewService(repo, false, nopLogger{})

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Сато", list[0].Name)
	assert.Equal(t, string(domain.RoleStaff), list[0].Role)
}
