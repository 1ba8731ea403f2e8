package staff

import (
	"context"

	"github.com/avelsk/NSD-SchedulingService/internal/domain"
)

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	Create(ctx context.Context, member *domain.Staff) (*domain.Staff, error)
	List(ctx context.Context) ([]*domain.Staff, error)
	HasAdmin(ctx context.Context) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
