package complete_treatment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelsk/NSD-SchedulingService/internal/catalog"
	"github.com/avelsk/NSD-SchedulingService/internal/domain"
	apptRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/appointment"
	treatmentRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/treatment"
)

type fakeAppointmentRepo struct {
	existing *domain.Appointment
	getErr   error

	statusErr    error
	statusCalls  int
	updatedTo    domain.AppointmentStatus
	updatedID    int64
	statusCalled bool
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	appt := *f.existing
	return &appt, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	f.statusCalls++
	f.statusCalled = true
	if f.statusErr != nil {
		return f.statusErr
	}
	f.updatedID = id
	f.updatedTo = status
	return nil
}

type fakeTreatmentRepo struct {
	createErr   error
	createCalls int
	lastRecord  *domain.TreatmentRecord
}

func (f *fakeTreatmentRepo) Create(_ context.Context, record *domain.TreatmentRecord) (*domain.TreatmentRecord, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.lastRecord = record
	created := *record
	created.ID = 77
	created.CreatedAt = time.Now()
	return &created, nil
}

// fakeTxManager выполняет fn напрямую; при ошибке внутри fn
// изменения каскадно не применяются, как при откате транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	appointments *fakeAppointmentRepo
	treatments   *fakeTreatmentRepo
	tx           *fakeTxManager
	uc           *UseCase
}

func newFixture(status domain.AppointmentStatus) *fixture {
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	f := &fixture{
		appointments: &fakeAppointmentRepo{existing: &domain.Appointment{
			ID:         5,
			CustomerID: 1,
			StaffID:    2,
			Date:       date,
			StartTime:  date.Add(10 * time.Hour),
			EndTime:    date.Add(11*time.Hour + 30*time.Minute),
			Status:     status,
			Services: domain.ServiceSelection{
				MenuIDs:              []int64{1, 2},
				TotalDurationMinutes: 90,
				TotalPrice:           9000,
			},
		}},
		treatments: &fakeTreatmentRepo{},
		tx:         &fakeTxManager{},
	}
	f.uc = NewUseCase(f.appointments, f.treatments, catalog.Default(), f.tx, nopLogger{})
	return f
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(domain.StatusConfirmed)

	resp, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID:    5,
		CompletedMenuIDs: []int64{1, 2},
		Products:         []string{"Base Gel X"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(77), resp.TreatmentID)
	assert.Equal(t, int64(5), resp.AppointmentID)
	assert.Equal(t, int64(1), resp.CustomerID)
	assert.Equal(t, string(domain.StatusCompleted), resp.AppointmentStatus)

	require.NotNil(t, resp.Products)
	assert.Equal(t, []string{"Base Gel X"}, resp.Products.Items)

	// Дата обслуживания берется из записи на прием
	assert.Equal(t, f.appointments.existing.Date, resp.Date)

	// Выполненные услуги зафиксированы с названиями и ценами из справочника
	require.Len(t, resp.Services.CompletedServices, 2)
	assert.Equal(t, "Gel Nail", resp.Services.CompletedServices[0].Name)
	assert.Equal(t, 6000, resp.Services.CompletedServices[0].Price)

	assert.Equal(t, domain.StatusCompleted, f.appointments.updatedTo)
	assert.Equal(t, int64(5), f.appointments.updatedID)
	assert.Equal(t, 1, f.tx.calls)
}

func TestExecute_PartialSubset(t *testing.T) {
	f := newFixture(domain.StatusScheduled)

	resp, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID:    5,
		CompletedMenuIDs: []int64{2},
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{2}, resp.Services.MenuIDs)
	assert.Nil(t, resp.Products)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{"нет идентификатора", &Request{CompletedMenuIDs: []int64{1}}},
		{"пустой список услуг", &Request{AppointmentID: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(domain.StatusConfirmed)

			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, 0, f.treatments.createCalls)
		})
	}
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	f := newFixture(domain.StatusConfirmed)
	f.appointments.getErr = apptRepo.ErrAppointmentNotFound

	_, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID:    5,
		CompletedMenuIDs: []int64{1},
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_TerminalStatus(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusCancelled, domain.StatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(status)

			_, err := f.uc.Execute(context.Background(), &Request{
				AppointmentID:    5,
				CompletedMenuIDs: []int64{1},
			})
			assert.ErrorIs(t, err, ErrInvalidStatus)
			assert.Equal(t, 0, f.treatments.createCalls)
			assert.Equal(t, 0, f.appointments.statusCalls)
		})
	}
}

func TestExecute_NotASubset(t *testing.T) {
	f := newFixture(domain.StatusConfirmed)

	// Услуга 3 не входила в состав записи ([1, 2])
	_, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID:    5,
		CompletedMenuIDs: []int64{1, 3},
	})
	assert.ErrorIs(t, err, ErrNotASubset)
	assert.Equal(t, 0, f.treatments.createCalls)
	assert.Equal(t, 0, f.appointments.statusCalls)
}

func TestExecute_AlreadyCompleted(t *testing.T) {
	f := newFixture(domain.StatusConfirmed)
	f.treatments.createErr = treatmentRepo.ErrAlreadyRecorded

	_, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID:    5,
		CompletedMenuIDs: []int64{1},
	})
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.False(t, f.appointments.statusCalled)
}

func TestExecute_CreateFailureSkipsStatusUpdate(t *testing.T) {
	// Сбой создания записи об обслуживании прерывает транзакцию:
	// статус записи на прием не меняется
	f := newFixture(domain.StatusConfirmed)
	f.treatments.createErr = errors.New("insert failed")

	_, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID:    5,
		CompletedMenuIDs: []int64{1},
	})
	assert.ErrorIs(t, err, ErrInternal)
	assert.False(t, f.appointments.statusCalled)
}

func TestExecute_StatusFailurePropagates(t *testing.T) {
	f := newFixture(domain.StatusConfirmed)
	f.appointments.statusErr = errors.New("update failed")

	_, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID:    5,
		CompletedMenuIDs: []int64{1},
	})
	assert.ErrorIs(t, err, ErrInternal)
}
