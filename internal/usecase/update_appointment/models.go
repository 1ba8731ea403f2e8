package update_appointment

import (
	"time"

	"github.com/avelsk/NSD-SchedulingService/internal/domain"
	createAppointment "github.com/avelsk/NSD-SchedulingService/internal/usecase/create_appointment"
)

// Request модель запроса на перенос записи или изменение услуг
type Request struct {
	AppointmentID int64
	Date          time.Time
	StartTime     time.Time
	MenuIDs       []int64
	Notes         *string
}

// Response модель ответа с обновленной записью
// Статус записи этой операцией не меняется
type Response struct {
	ID         int64
	CustomerID int64
	StaffID    int64

	Date      time.Time
	StartTime time.Time
	EndTime   time.Time
	Status    string

	Services domain.ServiceSelection
	Notes    *string

	CalendarSync  createAppointment.CalendarSyncStatus
	CalendarError *string

	UpdatedAt time.Time
}
