package complete_treatment

import (
	"context"

	"github.com/avelsk/NSD-SchedulingService/internal/catalog"
	"github.com/avelsk/NSD-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// TreatmentRepository интерфейс репозитория записей об обслуживании
type TreatmentRepository interface {
	Create(ctx context.Context, record *domain.TreatmentRecord) (*domain.TreatmentRecord, error)
}

// MenuCatalog интерфейс справочника меню услуг
type MenuCatalog interface {
	Resolve(menuIDs []int64) (catalog.Selection, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
