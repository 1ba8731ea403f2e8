package create_appointment

import (
	"context"
	"time"

	"github.com/avelsk/NSD-SchedulingService/internal/catalog"
	"github.com/avelsk/NSD-SchedulingService/internal/domain"
	"github.com/avelsk/NSD-SchedulingService/internal/integrations/gcalendar"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	HasOverlap(ctx context.Context, staffID int64, start, end time.Time, excludeID *int64) (bool, error)
	SetCalendarEventID(ctx context.Context, id int64, eventID *string) error
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
	CreateEvent(ctx context.Context, event *gcalendar.Event) (string, error)
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
