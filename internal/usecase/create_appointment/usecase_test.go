package create_appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelsk/NSD-SchedulingService/internal/catalog"
	"github.com/avelsk/NSD-SchedulingService/internal/domain"
	apptRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/appointment"
	customerRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/customer"
	staffRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/staff"
	"github.com/avelsk/NSD-SchedulingService/internal/integrations/gcalendar"
)

// fakeAppointmentRepo фейковый репозиторий записей для тестов use case
type fakeAppointmentRepo struct {
	overlap    bool
	overlapErr error
	createErr  error

	createdCalls  int
	lastExcludeID *int64
	eventIDCalls  int
	storedEventID *string
	setEventErr   error
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.createdCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *appt
	created.ID = 101
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	return &created, nil
}

func (f *fakeAppointmentRepo) HasOverlap(_ context.Context, _ int64, _, _ time.Time, excludeID *int64) (bool, error) {
	f.lastExcludeID = excludeID
	return f.overlap, f.overlapErr
}

func (f *fakeAppointmentRepo) SetCalendarEventID(_ context.Context, _ int64, eventID *string) error {
	f.eventIDCalls++
	if f.setEventErr != nil {
		return f.setEventErr
	}
	f.storedEventID = eventID
	return nil
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

// fakeCalendar фейковый клиент календаря с настраиваемым исходом
type fakeCalendar struct {
	eventID   string
	err       error
	lastEvent *gcalendar.Event
	calls     int
}

func (f *fakeCalendar) CreateEvent(_ context.Context, event *gcalendar.Event) (string, error) {
	f.calls++
	f.lastEvent = event
	if f.err != nil {
		return "", f.err
	}
	return f.eventID, nil
}

// fakeTxManager выполняет fn напрямую, без реальной транзакции
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
	f := &fixture{
		appointments: &fakeAppointmentRepo{},
		customers: &fakeCustomerRepo{customer: &domain.Customer{
			ID:        1,
			FirstName: "Ханако",
			LastName:  "Ямада",
			Email:     "hanako@example.com",
		}},
		staff:    &fakeStaffRepo{member: &domain.Staff{ID: 2, Name: "Сато", Role: domain.RoleStaff}},
		calendar: &fakeCalendar{eventID: "evt-1"},
	}
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
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	return &Request{
		CustomerID: 1,
		StaffID:    2,
		Date:       date,
		StartTime:  date.Add(10 * time.Hour),
		MenuIDs:    []int64{1, 2},
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	// Gel Nail (60 мин) + Nail Care (30 мин) = 90 минут, 10:00 - 11:30
	assert.Equal(t, 10, resp.StartTime.Hour())
	assert.Equal(t, 11, resp.EndTime.Hour())
	assert.Equal(t, 30, resp.EndTime.Minute())
	assert.Equal(t, 90, resp.Services.TotalDurationMinutes)
	assert.Equal(t, 9000, resp.Services.TotalPrice)
	assert.Equal(t, "Ямада Ханако", resp.CustomerName)
	assert.Equal(t, "Сато", resp.StaffName)

	assert.Equal(t, SyncSynced, resp.CalendarSync)
	require.NotNil(t, resp.CalendarEventID)
	assert.Equal(t, "evt-1", *resp.CalendarEventID)
	assert.Equal(t, 1, f.appointments.eventIDCalls)

	// При создании проверка пересечений идет без исключения по ID
	assert.Nil(t, f.appointments.lastExcludeID)
}

func TestExecute_Validation(t *testing.T) {
	longNotes := make([]byte, domain.MaxNotesLength+1)
	for i := range longNotes {
		longNotes[i] = 'a'
	}
	notes := string(longNotes)

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"нет клиента", func(r *Request) { r.CustomerID = 0 }},
		{"нет мастера", func(r *Request) { r.StaffID = -1 }},
		{"нет даты", func(r *Request) { r.Date = time.Time{} }},
		{"нет времени начала", func(r *Request) { r.StartTime = time.Time{} }},
		{"пустое меню", func(r *Request) { r.MenuIDs = nil }},
		{"время не в день записи", func(r *Request) { r.StartTime = r.StartTime.Add(24 * time.Hour) }},
		{"слишком длинные заметки", func(r *Request) { r.Notes = &notes }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, 0, f.appointments.createdCalls)
		})
	}
}

func TestExecute_CustomerNotFound(t *testing.T) {
	f := newFixture()
	f.customers.customer = nil
	f.customers.err = customerRepo.ErrCustomerNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestExecute_StaffNotFound(t *testing.T) {
	f := newFixture()
	f.staff.member = nil
	f.staff.err = staffRepo.ErrStaffNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecute_UnknownMenuItem(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.MenuIDs = []int64{1, 999}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnknownMenuItem)
	assert.Equal(t, 0, f.appointments.createdCalls)
}

func TestExecute_OutsideBusinessHours(t *testing.T) {
	f := newFixture()

	// 08:30 при открытии в 09:00
	req := validRequest()
	req.StartTime = req.Date.Add(8*time.Hour + 30*time.Minute)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)
	assert.Equal(t, 0, f.appointments.createdCalls)
	assert.Equal(t, 0, f.calendar.calls)
}

func TestExecute_EndExactlyAtClose(t *testing.T) {
	f := newFixture()

	// Nail Care 30 минут: 18:30 - 19:00, конец ровно в закрытие
	req := validRequest()
	req.StartTime = req.Date.Add(18*time.Hour + 30*time.Minute)
	req.MenuIDs = []int64{2}

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_EndPastClose(t *testing.T) {
	f := newFixture()

	// Gel Nail 60 минут: 18:30 - 19:30, выходит за закрытие
	req := validRequest()
	req.StartTime = req.Date.Add(18*time.Hour + 30*time.Minute)
	req.MenuIDs = []int64{1}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)
}

func TestExecute_TimeSlotConflict(t *testing.T) {
	f := newFixture()
	f.appointments.overlap = true

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTimeSlotConflict)
	assert.Equal(t, 0, f.appointments.createdCalls)
	assert.Equal(t, 0, f.calendar.calls)
}

func TestExecute_ExclusionConstraintRace(t *testing.T) {
	// Проверка пересечений прошла, но вставка уперлась
	// в exclusion constraint из-за конкурентной записи
	f := newFixture()
	f.appointments.createErr = apptRepo.ErrTimeSlotTaken

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTimeSlotConflict)
	assert.Equal(t, 0, f.calendar.calls)
}

func TestExecute_CalendarFailureDegrades(t *testing.T) {
	f := newFixture()
	f.calendar.err = errors.New("calendar api is down")

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, SyncFailed, resp.CalendarSync)
	require.NotNil(t, resp.CalendarError)
	assert.Contains(t, *resp.CalendarError, "calendar api is down")
	assert.Nil(t, resp.CalendarEventID)
	assert.Equal(t, 0, f.appointments.eventIDCalls)
}

func TestExecute_CalendarDisabledSkips(t *testing.T) {
	f := newFixture()
	f.calendar.err = gcalendar.ErrDisabled

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, SyncSkipped, resp.CalendarSync)
	assert.Nil(t, resp.CalendarError)
	assert.Nil(t, resp.CalendarEventID)
}

func TestExecute_EventIDStoreFailureNotFatal(t *testing.T) {
	f := newFixture()
	f.appointments.setEventErr = errors.New("connection reset")

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, SyncSynced, resp.CalendarSync)
}

// lockingAppointmentRepo потокобезопасный фейк, воспроизводящий
// exclusion constraint хранилища: вставка пересекающегося интервала
// одного мастера завершается ErrTimeSlotTaken
type lockingAppointmentRepo struct {
	mu     sync.Mutex
	nextID int64
	slots  []bookedSlot
}

type bookedSlot struct {
	staffID    int64
	start, end time.Time
}

func (f *lockingAppointmentRepo) overlapsLocked(staffID int64, start, end time.Time) bool {
	for _, s := range f.slots {
		if s.staffID == staffID && domain.Overlaps(s.start, s.end, start, end) {
			return true
		}
	}
	return false
}

func (f *lockingAppointmentRepo) HasOverlap(_ context.Context, staffID int64, start, end time.Time, _ *int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.overlapsLocked(staffID, start, end), nil
}

func (f *lockingAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.overlapsLocked(appt.StaffID, appt.StartTime, appt.EndTime) {
		return nil, apptRepo.ErrTimeSlotTaken
	}
	f.slots = append(f.slots, bookedSlot{staffID: appt.StaffID, start: appt.StartTime, end: appt.EndTime})
	f.nextID++
	created := *appt
	created.ID = f.nextID
	return &created, nil
}

func (f *lockingAppointmentRepo) SetCalendarEventID(_ context.Context, _ int64, _ *string) error {
	return nil
}

// disabledCalendar заглушка без состояния, безопасная для конкурентных вызовов
type disabledCalendar struct{}

func (disabledCalendar) CreateEvent(_ context.Context, _ *gcalendar.Event) (string, error) {
	return "", gcalendar.ErrDisabled
}

func TestExecute_ConcurrentCreatesSingleWinner(t *testing.T) {
	// Два одновременных запроса на один слот одного мастера:
	// ровно один создает запись, второй получает конфликт
	repo := &lockingAppointmentRepo{}
	uc := NewUseCase(
		repo,
		&fakeCustomerRepo{customer: &domain.Customer{ID: 1, FirstName: "Ханако", LastName: "Ямада"}},
		&fakeStaffRepo{member: &domain.Staff{ID: 2, Name: "Сато"}},
		catalog.Default(),
		disabledCalendar{},
		fakeTxManager{},
		domain.DefaultBusinessHours,
		nopLogger{},
	)

	start := make(chan struct{})
	results := make(chan error, 2)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := uc.Execute(context.Background(), validRequest())
			results <- err
		}()
	}

	close(start)
	wg.Wait()
	close(results)

	var succeeded, conflicted int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrTimeSlotConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
	require.Len(t, repo.slots, 1)
}

func TestBuildEvent(t *testing.T) {
	selection, err := catalog.Default().Resolve([]int64{1, 2})
	require.NoError(t, err)

	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	appt := &domain.Appointment{
		StartTime: start,
		EndTime:   start.Add(90 * time.Minute),
	}

	event := BuildEvent(appt, "Ямада Ханако", "Сато", selection)
	assert.Equal(t, "Ямада Ханако - запись в салон", event.Summary)
	assert.Equal(t, "Мастер: Сато\nУслуги: Gel Nail, Nail Care", event.Description)
	assert.Equal(t, start, event.Start.DateTime)
	assert.Equal(t, "Asia/Tokyo", event.Start.TimeZone)
}
