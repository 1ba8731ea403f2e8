package domain

import "time"

// AppointmentStatus статус записи на прием
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "SCHEDULED"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusCompleted AppointmentStatus = "COMPLETED"
)

// ParseAppointmentStatus парсит строку в AppointmentStatus
// Возвращает false, если значение не входит в список допустимых статусов
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case StatusScheduled, StatusConfirmed, StatusCancelled, StatusCompleted:
		return AppointmentStatus(s), true
	default:
		return "", false
	}
}

// Appointment запись клиента на прием к мастеру
type Appointment struct {
	ID         int64
	CustomerID int64
	StaffID    int64

	Date      time.Time // календарный день приема
	StartTime time.Time
	EndTime   time.Time // вычисляется: StartTime + суммарная длительность услуг

	Status   AppointmentStatus
	Services ServiceSelection // выбранные пункты меню + суммарные длительность и цена
	Notes    *string

	// ID события во внешнем календаре (слабая ссылка, nil если синхронизация не удалась)
	CalendarEventID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если запись участвует в проверке пересечений
// Отмененные записи не занимают время мастера
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsTerminal возвращает true для конечных статусов (переходы из них запрещены)
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled || a.Status == StatusCompleted
}

// CanTransitionTo проверяет допустимость перехода статуса
// Граф переходов:
//
//	SCHEDULED -> CONFIRMED | CANCELLED | COMPLETED
//	CONFIRMED -> CANCELLED | COMPLETED
//	CANCELLED, COMPLETED   -> терминальные
func (a *Appointment) CanTransitionTo(target AppointmentStatus) bool {
	if a.IsTerminal() {
		return false
	}
	switch target {
	case StatusConfirmed:
		return a.Status == StatusScheduled
	case StatusCancelled, StatusCompleted:
		return a.Status == StatusScheduled || a.Status == StatusConfirmed
	default:
		return false
	}
}

// CanBeCompleted возвращает true, если по записи можно зафиксировать выполненное обслуживание
func (a *Appointment) CanBeCompleted() bool {
	return a.CanTransitionTo(StatusCompleted)
}

// ScheduleFilter фильтр для выборки записей расписания
type ScheduleFilter struct {
	StaffID          *int64     // nil - записи всех мастеров
	StartDate        *time.Time // начало периода (опционально)
	EndDate          *time.Time // конец периода (опционально)
	IncludeCancelled bool       // включать ли отмененные записи
}
