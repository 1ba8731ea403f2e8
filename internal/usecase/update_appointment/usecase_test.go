package update_appointment

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
	"github.com/avelsk/NSD-SchedulingService/internal/integrations/gcalendar"
	createAppointment "github.com/avelsk/NSD-SchedulingService/internal/usecase/create_appointment"
)

type fakeAppointmentRepo struct {
	existing *domain.Appointment
	getErr   error

	overlap   bool
	updateErr error
	updatedAt time.Time

	lastExcludeID *int64
	updateCalls   int
	lastStart     time.Time
	lastEnd       time.Time
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	appt := *f.existing
	return &appt, nil
}

func (f *fakeAppointmentRepo) HasOverlap(_ context.Context, _ int64, _, _ time.Time, excludeID *int64) (bool, error) {
	f.lastExcludeID = excludeID
	return f.overlap, nil
}

func (f *fakeAppointmentRepo) UpdateSchedule(_ context.Context, _ int64, _, start, end time.Time, _ domain.ServiceSelection, _ *string) (time.Time, error) {
	f.updateCalls++
	if f.updateErr != nil {
		return time.Time{}, f.updateErr
	}
	f.lastStart = start
	f.lastEnd = end
	return f.updatedAt, nil
}

type fakeCustomerRepo struct {
	customer *domain.Customer
	err      error
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, _ int64) (*domain.Customer, error) {
	return f.customer, f.err
}

type fakeStaffRepo struct {
	member *domain.Staff
	err    error
}

func (f *fakeStaffRepo) GetByID(_ context.Context, _ int64) (*domain.Staff, error) {
	return f.member, f.err
}

type fakeCalendar struct {
	err         error
	calls       int
	lastEventID string
}

func (f *fakeCalendar) UpdateEvent(_ context.Context, eventID string, _ *gcalendar.Event) error {
	f.calls++
	f.lastEventID = eventID
	return f.err
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	appointments *fakeAppointmentRepo
	customers    *fakeCustomerRepo
	staff        *fakeStaffRepo
	calendar     *fakeCalendar
	uc           *UseCase
}

func newFixture() *fixture {
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	eventID := "evt-1"
	f := &fixture{
		appointments: &fakeAppointmentRepo{existing: &domain.Appointment{
			ID:         5,
			CustomerID: 1,
			StaffID:    2,
			Date:       date,
			StartTime:  date.Add(10 * time.Hour),
			EndTime:    date.Add(11 * time.Hour),
			Status:     domain.StatusConfirmed,
			Services: domain.ServiceSelection{
				MenuIDs:              []int64{1},
				TotalDurationMinutes: 60,
				TotalPrice:           6000,
			},
			CalendarEventID: &eventID,
			UpdatedAt:       date.Add(-24 * time.Hour),
		}},
		customers: &fakeCustomerRepo{customer: &domain.Customer{
			ID: 1, FirstName: "Ханако", LastName: "Ямада",
		}},
		staff:    &fakeStaffRepo{member: &domain.Staff{ID: 2, Name: "Сато"}},
		calendar: &fakeCalendar{},
	}
	f.appointments.updatedAt = date.Add(12 * time.Hour)
	f.uc = NewUseCase(
		f.appointments,
		f.customers,
		f.staff,
		catalog.Default(),
		f.calendar,
		fakeTxManager{},
		domain.DefaultBusinessHours,
		nopLogger{},
	)
	return f
}

func validRequest() *Request {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	return &Request{
		AppointmentID: 5,
		Date:          date,
		StartTime:     date.Add(14 * time.Hour),
		MenuIDs:       []int64{1, 2},
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Новый состав услуг: 90 минут, 14:00 - 15:30
	assert.Equal(t, 14, resp.StartTime.Hour())
	assert.Equal(t, 15, resp.EndTime.Hour())
	assert.Equal(t, 30, resp.EndTime.Minute())
	assert.Equal(t, 9000, resp.Services.TotalPrice)

	// Статус переносом не меняется
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	// UpdatedAt берется из хранилища, а не из записи до переноса
	assert.Equal(t, f.appointments.updatedAt, resp.UpdatedAt)

	// Запись исключается из проверки пересечений
	require.NotNil(t, f.appointments.lastExcludeID)
	assert.Equal(t, int64(5), *f.appointments.lastExcludeID)

	assert.Equal(t, createAppointment.SyncSynced, resp.CalendarSync)
	assert.Equal(t, "evt-1", f.calendar.lastEventID)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"нет идентификатора", func(r *Request) { r.AppointmentID = 0 }},
		{"нет даты", func(r *Request) { r.Date = time.Time{} }},
		{"нет времени начала", func(r *Request) { r.StartTime = time.Time{} }},
		{"пустое меню", func(r *Request) { r.MenuIDs = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, 0, f.appointments.updateCalls)
		})
	}
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture()
	f.appointments.getErr = apptRepo.ErrAppointmentNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_UnknownMenuItem(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.MenuIDs = []int64{42}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnknownMenuItem)
	assert.Equal(t, 0, f.appointments.updateCalls)
}

func TestExecute_OutsideBusinessHours(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.StartTime = req.Date.Add(18*time.Hour + 30*time.Minute)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)
	assert.Equal(t, 0, f.appointments.updateCalls)
}

func TestExecute_TimeSlotConflict(t *testing.T) {
	f := newFixture()
	f.appointments.overlap = true

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTimeSlotConflict)
	assert.Equal(t, 0, f.appointments.updateCalls)
	assert.Equal(t, 0, f.calendar.calls)
}

func TestExecute_ExclusionConstraintRace(t *testing.T) {
	f := newFixture()
	f.appointments.updateErr = apptRepo.ErrTimeSlotTaken

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTimeSlotConflict)
	assert.Equal(t, 0, f.calendar.calls)
}

func TestExecute_NoCalendarEventSkipsSync(t *testing.T) {
	f := newFixture()
	f.appointments.existing.CalendarEventID = nil

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, createAppointment.SyncSkipped, resp.CalendarSync)
	assert.Equal(t, 0, f.calendar.calls)
}

func TestExecute_CalendarFailureDegrades(t *testing.T) {
	f := newFixture()
	f.calendar.err = errors.New("calendar api is down")

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, createAppointment.SyncFailed, resp.CalendarSync)
	require.NotNil(t, resp.CalendarError)
	assert.Contains(t, *resp.CalendarError, "calendar api is down")
}

func TestExecute_CalendarDisabledSkips(t *testing.T) {
	f := newFixture()
	f.calendar.err = gcalendar.ErrDisabled

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, createAppointment.SyncSkipped, resp.CalendarSync)
	assert.Nil(t, resp.CalendarError)
}
