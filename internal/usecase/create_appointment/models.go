package create_appointment

import (
	"time"

	"github.com/avelsk/NSD-SchedulingService/internal/domain"
)

// CalendarSyncStatus результат синхронизации с внешним календарем
type CalendarSyncStatus string

const (
	// SyncSynced событие создано во внешнем календаре
	SyncSynced CalendarSyncStatus = "synced"
	// SyncFailed синхронизация не удалась, локальная запись создана
	SyncFailed CalendarSyncStatus = "failed"
	// SyncSkipped синхронизация выключена конфигурацией
	SyncSkipped CalendarSyncStatus = "skipped"
)

// Request модель запроса на создание записи
type Request struct {
	CustomerID int64     // ID клиента
	StaffID    int64     // ID мастера
	Date       time.Time // Дата приема (без времени)
	StartTime  time.Time // Время начала приема
	MenuIDs    []int64   // Выбранные пункты меню услуг
	Notes      *string   // Заметки (опционально)
}

// Response модель ответа с созданной записью
// CalendarSync отличает "создана и синхронизирована" от "создана, календарь недоступен"
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

	// Денормализованные данные для отображения
	CustomerName string
	StaffName    string

	CalendarSync    CalendarSyncStatus
	CalendarError   *string // причина сбоя синхронизации (при CalendarSync = failed)
	CalendarEventID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
