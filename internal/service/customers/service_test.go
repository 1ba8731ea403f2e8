package customers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelsk/NSD-SchedulingService/internal/domain"
	customerRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/customer"
	"github.com/avelsk/NSD-SchedulingService/internal/service/customers/models"
)

type fakeCustomerRepo struct {
	store map[int64]*domain.Customer

	byEmail    *domain.Customer
	byEmailErr error

	createErr error
	updateErr error
	deleteErr error

	searchResult []*domain.Customer
	lastQuery    string
	lastLimit    uint64

	lastExcludeID *int64
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{
		store:      map[int64]*domain.Customer{},
		byEmailErr: customerRepo.ErrCustomerNotFound,
	}
}

func (f *fakeCustomerRepo) Create(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *c
	created.ID = int64(len(f.store) + 1)
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.store[created.ID] = &created
	return &created, nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	c, ok := f.store[id]
	if !ok {
		return nil, customerRepo.ErrCustomerNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCustomerRepo) GetByEmail(_ context.Context, _ string, excludeID *int64) (*domain.Customer, error) {
	f.lastExcludeID = excludeID
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmail, nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, c *domain.Customer) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	existing, ok := f.store[c.ID]
	if !ok {
		return customerRepo.ErrCustomerNotFound
	}
	updated := *c
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	f.store[c.ID] = &updated
	return nil
}

func (f *fakeCustomerRepo) Delete(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.store[id]; !ok {
		return customerRepo.ErrCustomerNotFound
	}
	delete(f.store, id)
	return nil
}

func (f *fakeCustomerRepo) Search(_ context.Context, q string, limit uint64) ([]*domain.Customer, error) {
	f.lastQuery = q
	f.lastLimit = limit
	return f.searchResult, nil
}

type fakeTreatmentRepo struct {
	history []*domain.TreatmentRecord
	err     error
}

func (f *fakeTreatmentRepo) GetByCustomerID(_ context.Context, _ int64) ([]*domain.TreatmentRecord, error) {
	return f.history, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validCreateRequest() *models.CreateCustomerRequest {
	return &models.CreateCustomerRequest{
		FirstName: "Ханако",
		LastName:  "Ямада",
		Email:     "hanako@example.com",
		Phone:     "090-1234-5678",
	}
}

func TestCreate_Success(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewService(repo, &fakeTreatmentRepo{}, nopLogger{})

	health := "аллергия на акрил"
	req := validCreateRequest()
	req.HealthInfo = &health

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "hanako@example.com", resp.Email)
	require.NotNil(t, resp.HealthInfo)
	assert.Equal(t, health, *resp.HealthInfo)

	// При создании email проверяется без исключения по ID
	assert.Nil(t, repo.lastExcludeID)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.CreateCustomerRequest)
	}{
		{"нет имени", func(r *models.CreateCustomerRequest) { r.FirstName = " " }},
		{"нет фамилии", func(r *models.CreateCustomerRequest) { r.LastName = "" }},
		{"нет email", func(r *models.CreateCustomerRequest) { r.Email = "" }},
		{"email без @", func(r *models.CreateCustomerRequest) { r.Email = "hanako.example.com" }},
		{"нет телефона", func(r *models.CreateCustomerRequest) { r.Phone = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeCustomerRepo(), &fakeTreatmentRepo{}, nopLogger{})
			req := validCreateRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreate_EmailTaken(t *testing.T) {
	repo := newFakeCustomerRepo()
	repo.byEmailErr = nil
	repo.byEmail = &domain.Customer{ID: 9, Email: "hanako@example.com"}
	svc := NewService(repo, &fakeTreatmentRepo{}, nopLogger{})

	_, err := svc.Create(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Empty(t, repo.store)
}

func TestUpdate_Success(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewService(repo, &fakeTreatmentRepo{}, nopLogger{})

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	resp, err := svc.Update(context.Background(), &models.UpdateCustomerRequest{
		CustomerID: created.ID,
		FirstName:  "Ханако",
		LastName:   "Сато",
		Email:      "hanako@example.com",
		Phone:      "090-1234-5678",
	})
	require.NoError(t, err)

	assert.Equal(t, "Сато", resp.LastName)

	// Собственный email клиента не считается занятым
	require.NotNil(t, repo.lastExcludeID)
	assert.Equal(t, created.ID, *repo.lastExcludeID)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(newFakeCustomerRepo(), &fakeTreatmentRepo{}, nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateCustomerRequest{
		CustomerID: 42,
		FirstName:  "Ханако",
		LastName:   "Ямада",
		Email:      "hanako@example.com",
		Phone:      "090-1234-5678",
	})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestUpdate_EmailTakenByAnother(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewService(repo, &fakeTreatmentRepo{}, nopLogger{})

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	repo.byEmailErr = nil
	repo.byEmail = &domain.Customer{ID: 9, Email: "taken@example.com"}

	_, err = svc.Update(context.Background(), &models.UpdateCustomerRequest{
		CustomerID: created.ID,
		FirstName:  "Ханако",
		LastName:   "Ямада",
		Email:      "taken@example.com",
		Phone:      "090-1234-5678",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestGetWithHistory_Success(t *testing.T) {
	repo := newFakeCustomerRepo()
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	treatments := &fakeTreatmentRepo{history: []*domain.TreatmentRecord{{
		ID:            77,
		CustomerID:    1,
		AppointmentID: 5,
		Date:          date,
		Services: domain.TreatmentServices{
			MenuIDs: []int64{1},
			CompletedServices: []domain.CompletedService{
				{ID: 1, Name: "Gel Nail", Price: 6000},
			},
		},
		Products: &domain.ProductList{Items: []string{"Base Gel X"}},
	}}}
	svc := NewService(repo, treatments, nopLogger{})

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	resp, err := svc.GetWithHistory(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, resp.Customer.ID)
	require.Len(t, resp.Treatments, 1)
	assert.Equal(t, "2026-09-14", resp.Treatments[0].Date)
	assert.Equal(t, []string{"Base Gel X"}, resp.Treatments[0].Products)
	require.Len(t, resp.Treatments[0].CompletedServices, 1)
	assert.Equal(t, "Gel Nail", resp.Treatments[0].CompletedServices[0].Name)
}

func TestGetWithHistory_NotFound(t *testing.T) {
	svc := NewService(newFakeCustomerRepo(), &fakeTreatmentRepo{}, nopLogger{})

	_, err := svc.GetWithHistory(context.Background(), 42)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestSearch(t *testing.T) {
	repo := newFakeCustomerRepo()
	repo.searchResult = []*domain.Customer{{ID: 1, FirstName: "Ханако", LastName: "Ямада"}}
	svc := NewService(repo, &fakeTreatmentRepo{}, nopLogger{})

	resp, err := svc.Search(context.Background(), "  Ямада ")
	require.NoError(t, err)

	require.Len(t, resp.Customers, 1)
	assert.Equal(t, "Ямада", repo.lastQuery)
	assert.Equal(t, uint64(domain.CustomerSearchLimit), repo.lastLimit)
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc := NewService(newFakeCustomerRepo(), &fakeTreatmentRepo{}, nopLogger{})

	_, err := svc.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewService(repo, &fakeTreatmentRepo{}, nopLogger{})

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), ErrCustomerNotFound)
}
