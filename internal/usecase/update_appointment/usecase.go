package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avelsk/NSD-SchedulingService/internal/catalog"
	"github.com/avelsk/NSD-SchedulingService/internal/domain"
	apptRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/appointment"
	customerRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/customer"
	staffRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/staff"
	"github.com/avelsk/NSD-SchedulingService/internal/integrations/gcalendar"
	createAppointment "github.com/avelsk/NSD-SchedulingService/internal/usecase/create_appointment"
)

// UseCase use case переноса записи (новое время и/или состав услуг)
type UseCase struct {
	appointments AppointmentRepository
	customers    CustomerRepository
	staff        StaffRepository
	menu         MenuCatalog
	calendar     CalendarClient
	txManager    TransactionManager
	hours        domain.BusinessHours
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointments AppointmentRepository,
	customers CustomerRepository,
	staff StaffRepository,
	menu MenuCatalog,
	calendar CalendarClient,
	txManager TransactionManager,
	hours domain.BusinessHours,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointments: appointments,
		customers:    customers,
		staff:        staff,
		menu:         menu,
		calendar:     calendar,
		txManager:    txManager,
		hours:        hours,
		logger:       logger,
	}
}

// Execute выполняет перенос записи
// Прогоняет тот же конвейер валидации, что и создание, но запись
// исключается из проверки пересечений (не конфликтует сама с собой).
// При любом отказе валидации сохраненная запись остается неизменной
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: id=%d, date=%s, start=%s, menu=%v",
		req.AppointmentID, req.Date.Format(domain.DateFormat),
		req.StartTime.Format(domain.TimeFormat), req.MenuIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем существующую запись
	existing, err := uc.appointments.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("UpdateAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("UpdateAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 3. Резолвим новый состав услуг
	selection, err := uc.menu.Resolve(req.MenuIDs)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownMenuItem) || errors.Is(err, catalog.ErrEmptySelection) {
			uc.logger.Warn("UpdateAppointment: menu resolution failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrUnknownMenuItem, err)
		}
		return nil, fmt.Errorf("%w: failed to resolve menu: %v", ErrInternal, err)
	}

	// 4. Новый интервал
	start := req.StartTime
	end := start.Add(time.Duration(selection.TotalDurationMinutes) * time.Minute)

	// 5. Проверяем рабочие часы
	if !uc.hours.Contains(start, end) {
		uc.logger.Warn("UpdateAppointment: interval %s-%s outside business hours",
			start.Format(domain.TimeFormat), end.Format(domain.TimeFormat))
		return nil, ErrOutsideBusinessHours
	}

	// 6-7. Проверка пересечений (исключая саму запись) и обновление в транзакции
	services := selection.ToServiceSelection()
	var updatedAt time.Time
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		hasConflict, err := uc.appointments.HasOverlap(txCtx, existing.StaffID, start, end, &existing.ID)
		if err != nil {
			uc.logger.Error("UpdateAppointment: overlap check failed: %v", err)
			return fmt.Errorf("%w: overlap check failed: %v", ErrInternal, err)
		}
		if hasConflict {
			uc.logger.Warn("UpdateAppointment: slot %s-%s conflicts for staff=%d",
				start.Format(domain.TimeFormat), end.Format(domain.TimeFormat), existing.StaffID)
			return ErrTimeSlotConflict
		}

		updatedAt, err = uc.appointments.UpdateSchedule(txCtx, existing.ID, req.Date, start, end, services, req.Notes)
		if err != nil {
			if errors.Is(err, apptRepo.ErrTimeSlotTaken) {
				return ErrTimeSlotConflict
			}
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to update appointment id=%d: %v", existing.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: appointment id=%d rescheduled to %s %s",
		existing.ID, req.Date.Format(domain.DateFormat), start.Format(domain.TimeFormat))

	updated := *existing
	updated.Date = req.Date
	updated.StartTime = start
	updated.EndTime = end
	updated.Services = services
	updated.Notes = req.Notes
	updated.UpdatedAt = updatedAt

	// 8. Best-effort обновление события внешнего календаря (после коммита)
	syncStatus, syncErr := uc.syncCalendarEvent(ctx, &updated, selection)

	return &Response{
		ID:            updated.ID,
		CustomerID:    updated.CustomerID,
		StaffID:       updated.StaffID,
		Date:          updated.Date,
		StartTime:     updated.StartTime,
		EndTime:       updated.EndTime,
		Status:        string(updated.Status),
		Services:      updated.Services,
		Notes:         updated.Notes,
		CalendarSync:  syncStatus,
		CalendarError: syncErr,
		UpdatedAt:     updated.UpdatedAt,
	}, nil
}

// syncCalendarEvent обновляет событие внешнего календаря
// Запись без сохраненного события пропускается (создание события при переносе
// не выполняется - ссылка могла не появиться из-за деградации при создании)
func (uc *UseCase) syncCalendarEvent(ctx context.Context, appt *domain.Appointment, selection catalog.Selection) (createAppointment.CalendarSyncStatus, *string) {
	if appt.CalendarEventID == nil {
		return createAppointment.SyncSkipped, nil
	}

	customer, err := uc.customers.GetByID(ctx, appt.CustomerID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			uc.logger.Warn("UpdateAppointment: customer id=%d missing for calendar sync", appt.CustomerID)
		} else {
			uc.logger.Error("UpdateAppointment: failed to get customer id=%d for calendar sync: %v", appt.CustomerID, err)
		}
		reason := err.Error()
		return createAppointment.SyncFailed, &reason
	}

	member, err := uc.staff.GetByID(ctx, appt.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("UpdateAppointment: staff id=%d missing for calendar sync", appt.StaffID)
		} else {
			uc.logger.Error("UpdateAppointment: failed to get staff id=%d for calendar sync: %v", appt.StaffID, err)
		}
		reason := err.Error()
		return createAppointment.SyncFailed, &reason
	}

	event := createAppointment.BuildEvent(appt, customer.FullName(), member.Name, selection)
	if err := uc.calendar.UpdateEvent(ctx, *appt.CalendarEventID, event); err != nil {
		if errors.Is(err, gcalendar.ErrDisabled) {
			return createAppointment.SyncSkipped, nil
		}
		uc.logger.Error("UpdateAppointment: calendar sync failed for appointment id=%d: %v", appt.ID, err)
		reason := err.Error()
		return createAppointment.SyncFailed, &reason
	}

	uc.logger.Info("UpdateAppointment: calendar event %s updated for appointment id=%d", *appt.CalendarEventID, appt.ID)
	return createAppointment.SyncSynced, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if len(req.MenuIDs) == 0 {
		return fmt.Errorf("%w: menuIds must not be empty", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long (max %d)", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
