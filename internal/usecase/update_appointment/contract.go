package update_appointment

import (
	"context"
	"time"

	"github.com/avelsk/NSD-SchedulingService/internal/catalog"
	"github.com/avelsk/NSD-SchedulingService/internal/domain"
	"github.com/avelsk/NSD-SchedulingService/internal/integrations/gcalendar"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	HasOverlap(ctx context.Context, staffID int64, start, end time.Time, excludeID *int64) (bool, error)
	UpdateSchedule(ctx context.Context, id int64, date, start, end time.Time, services domain.ServiceSelection, notes *string) (time.Time, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
}

// MenuCatalog интерфейс справочника меню услуг
type MenuCatalog interface {
	Resolve(menuIDs []int64) (catalog.Selection, error)
}

// CalendarClient интерфейс клиента внешнего календаря
type CalendarClient interface {
	UpdateEvent(ctx context.Context, eventID string, event *gcalendar.Event) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
