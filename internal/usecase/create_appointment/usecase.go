package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avelsk/NSD-SchedulingService/internal/catalog"
	"github.com/avelsk/NSD-SchedulingService/internal/domain"
	apptRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/appointment"
	customerRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/customer"
	staffRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/staff"
	"github.com/avelsk/NSD-SchedulingService/internal/integrations/gcalendar"
)

// calendarTimeZone таймзона событий внешнего календаря
const calendarTimeZone = "Asia/Tokyo"

// UseCase use case создания записи на прием
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

// Execute выполняет use case создания записи
// Проверка пересечений и вставка выполняются в сериализуемой транзакции,
// чтобы два конкурентных запроса на один слот не прошли проверку одновременно.
// Синхронизация с внешним календарем выполняется строго после коммита
// и никогда не откатывает локальную запись
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: customer=%d, staff=%d, date=%s, start=%s, menu=%v",
		req.CustomerID, req.StaffID, req.Date.Format(domain.DateFormat),
		req.StartTime.Format(domain.TimeFormat), req.MenuIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование клиента
	customer, err := uc.customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			uc.logger.Warn("CreateAppointment: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	// 3. Проверяем существование мастера
	member, err := uc.staff.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateAppointment: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	// 4. Резолвим выбранные услуги через каталог
	selection, err := uc.menu.Resolve(req.MenuIDs)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownMenuItem) || errors.Is(err, catalog.ErrEmptySelection) {
			uc.logger.Warn("CreateAppointment: menu resolution failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrUnknownMenuItem, err)
		}
		return nil, fmt.Errorf("%w: failed to resolve menu: %v", ErrInternal, err)
	}

	// 5. Вычисляем интервал: endTime = startTime + суммарная длительность услуг
	start := req.StartTime
	end := start.Add(time.Duration(selection.TotalDurationMinutes) * time.Minute)

	// 6. Проверяем рабочие часы
	if !uc.hours.Contains(start, end) {
		uc.logger.Warn("CreateAppointment: interval %s-%s outside business hours",
			start.Format(domain.TimeFormat), end.Format(domain.TimeFormat))
		return nil, ErrOutsideBusinessHours
	}

	// 7-8. Проверка пересечений и вставка в одной сериализуемой транзакции
	var created *domain.Appointment
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		hasConflict, err := uc.appointments.HasOverlap(txCtx, req.StaffID, start, end, nil)
		if err != nil {
			uc.logger.Error("CreateAppointment: overlap check failed: %v", err)
			return fmt.Errorf("%w: overlap check failed: %v", ErrInternal, err)
		}
		if hasConflict {
			uc.logger.Warn("CreateAppointment: slot %s-%s conflicts for staff=%d",
				start.Format(domain.TimeFormat), end.Format(domain.TimeFormat), req.StaffID)
			return ErrTimeSlotConflict
		}

		appt := &domain.Appointment{
			CustomerID: req.CustomerID,
			StaffID:    req.StaffID,
			Date:       req.Date,
			StartTime:  start,
			EndTime:    end,
			Status:     domain.StatusScheduled,
			Services:   selection.ToServiceSelection(),
			Notes:      req.Notes,
		}

		created, err = uc.appointments.Create(txCtx, appt)
		if err != nil {
			// Exclusion constraint - страховка от гонки на уровне хранилища
			if errors.Is(err, apptRepo.ErrTimeSlotTaken) {
				uc.logger.Warn("CreateAppointment: exclusion constraint hit for staff=%d", req.StaffID)
				return ErrTimeSlotConflict
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d", created.ID)

	// 9. Best-effort синхронизация с внешним календарем (после коммита)
	syncStatus, syncErr, eventID := uc.syncCalendarEvent(ctx, created, customer, member, selection)

	return &Response{
		ID:              created.ID,
		CustomerID:      created.CustomerID,
		StaffID:         created.StaffID,
		Date:            created.Date,
		StartTime:       created.StartTime,
		EndTime:         created.EndTime,
		Status:          string(created.Status),
		Services:        created.Services,
		Notes:           created.Notes,
		CustomerName:    customer.FullName(),
		StaffName:       member.Name,
		CalendarSync:    syncStatus,
		CalendarError:   syncErr,
		CalendarEventID: eventID,
		CreatedAt:       created.CreatedAt,
		UpdatedAt:       created.UpdatedAt,
	}, nil
}

// syncCalendarEvent создает событие во внешнем календаре
// Любой сбой логируется и возвращается как деградация, но не как ошибка операции
func (uc *UseCase) syncCalendarEvent(
	ctx context.Context,
	appt *domain.Appointment,
	customer *domain.Customer,
	member *domain.Staff,
	selection catalog.Selection,
) (CalendarSyncStatus, *string, *string) {
	event := BuildEvent(appt, customer.FullName(), member.Name, selection)

	eventID, err := uc.calendar.CreateEvent(ctx, event)
	if err != nil {
		if errors.Is(err, gcalendar.ErrDisabled) {
			return SyncSkipped, nil, nil
		}
		uc.logger.Error("CreateAppointment: calendar sync failed for appointment id=%d: %v", appt.ID, err)
		reason := err.Error()
		return SyncFailed, &reason, nil
	}

	// Сохраняем слабую ссылку на событие; сбой здесь тоже не фатален
	if err := uc.appointments.SetCalendarEventID(ctx, appt.ID, &eventID); err != nil {
		uc.logger.Error("CreateAppointment: failed to store calendar event id for appointment id=%d: %v", appt.ID, err)
	}

	uc.logger.Info("CreateAppointment: calendar event %s created for appointment id=%d", eventID, appt.ID)
	return SyncSynced, nil, &eventID
}

// BuildEvent собирает событие внешнего календаря из данных записи
// Используется также при переносе записи (update)
func BuildEvent(appt *domain.Appointment, customerName, staffName string, selection catalog.Selection) *gcalendar.Event {
	names := make([]string, len(selection.Items))
	for i, item := range selection.Items {
		names[i] = item.Name
	}

	return &gcalendar.Event{
		Summary:     fmt.Sprintf("%s - запись в салон", customerName),
		Description: fmt.Sprintf("Мастер: %s\nУслуги: %s", staffName, strings.Join(names, ", ")),
		Start: gcalendar.EventDateTime{
			DateTime: appt.StartTime,
			TimeZone: calendarTimeZone,
		},
		End: gcalendar.EventDateTime{
			DateTime: appt.EndTime,
			TimeZone: calendarTimeZone,
		},
	}
}
