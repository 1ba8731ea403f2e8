package customers

import (
	"context"

	"github.com/avelsk/NSD-SchedulingService/internal/domain"
)

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string, excludeID *int64) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, q string, limit uint64) ([]*domain.Customer, error)
}

// TreatmentRepository интерфейс репозитория записей об обслуживании
type TreatmentRepository interface {
	GetByCustomerID(ctx context.Context, customerID int64) ([]*domain.TreatmentRecord, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
