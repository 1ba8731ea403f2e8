package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelsk/NSD-SchedulingService/internal/domain"
	apptRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/appointment"
	customerRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/customer"
	staffRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/staff"
	"github.com/avelsk/NSD-SchedulingService/internal/integrations/gcalendar"
	"github.com/avelsk/NSD-SchedulingService/internal/service/appointments/models"
)

// Service сервис для чтения расписания и операций над записями вне конвейера создания
type Service struct {
	appointments AppointmentRepository
	customers    CustomerRepository
	staff        StaffRepository
	calendar     CalendarClient
	hours        domain.BusinessHours
	slotDuration int // минут
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointments AppointmentRepository,
	customers CustomerRepository,
	staff StaffRepository,
	calendar CalendarClient,
	hours domain.BusinessHours,
	slotDurationMinutes int,
	logger Logger,
) *Service {
	if slotDurationMinutes <= 0 {
		slotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	return &Service{
		appointments: appointments,
		customers:    customers,
		staff:        staff,
		calendar:     calendar,
		hours:        hours,
		slotDuration: slotDurationMinutes,
		logger:       logger,
	}
}

// GetByID получает запись по ID с отображаемыми данными клиента и мастера
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	customerName, staffName := s.displayNames(ctx, appt)
	return models.FromDomainAppointment(appt, customerName, staffName), nil
}

// GetSchedule получает записи за период вместе с сеткой слотов рабочего дня
// Отмененные записи в выдачу не попадают
func (s *Service) GetSchedule(ctx context.Context, rng *ScheduleRange) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: from=%s, to=%s, staff=%v",
		rng.From.Format(domain.DateFormat), rng.To.Format(domain.DateFormat), rng.StaffID)

	if rng.From.IsZero() || rng.To.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if rng.To.Before(rng.From) {
		return nil, fmt.Errorf("%w: to must not precede from", ErrInvalidInput)
	}

	filter := domain.ScheduleFilter{
		StaffID:   rng.StaffID,
		StartDate: &rng.From,
		EndDate:   &rng.To,
	}

	list, err := s.appointments.GetSchedule(ctx, filter)
	if err != nil {
		s.logger.Error("GetSchedule: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSchedule: fetched %d appointments", len(list))
	return &models.ScheduleResponse{
		From:         rng.From.Format(domain.DateFormat),
		To:           rng.To.Format(domain.DateFormat),
		SlotGrid:     s.buildSlotGrid(),
		Appointments: models.FromDomainAppointmentList(list),
	}, nil
}

// UpdateStatus выполняет переход статуса записи по правилам жизненного цикла
// Отмена не трогает событие внешнего календаря
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%d, target=%s", id, status)

	target, ok := domain.ParseAppointmentStatus(status)
	if !ok {
		s.logger.Warn("UpdateStatus: unknown status value %q", status)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if !appt.CanTransitionTo(target) {
		s.logger.Warn("UpdateStatus: transition %s -> %s denied for appointment id=%d", appt.Status, target, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, target)
	}

	if err := s.appointments.UpdateStatus(ctx, id, target); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: failed to update appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: appointment id=%d moved %s -> %s", id, appt.Status, target)

	appt.Status = target
	customerName, staffName := s.displayNames(ctx, appt)
	return models.FromDomainAppointment(appt, customerName, staffName), nil
}

// Delete жестко удаляет запись
// Перед удалением пытается убрать событие внешнего календаря; отказ календаря
// не мешает удалению локальной записи
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting appointment id=%d", id)

	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if appt.CalendarEventID != nil {
		if err := s.calendar.DeleteEvent(ctx, *appt.CalendarEventID); err != nil && !errors.Is(err, gcalendar.ErrDisabled) {
			s.logger.Warn("Delete: calendar event %s removal failed for appointment id=%d: %v",
				*appt.CalendarEventID, id, err)
		}
	}

	if err := s.appointments.Delete(ctx, id); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: failed to delete appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: appointment id=%d deleted", id)
	return nil
}

// buildSlotGrid строит начала слотов рабочего дня
// Последний слот целиком помещается до закрытия
func (s *Service) buildSlotGrid() []string {
	open := s.hours.OpenHour*60 + s.hours.OpenMinute
	close := s.hours.CloseHour*60 + s.hours.CloseMinute

	var grid []string
	for start := open; start+s.slotDuration <= close; start += s.slotDuration {
		grid = append(grid, fmt.Sprintf("%02d:%02d", start/60, start%60))
	}
	return grid
}

// displayNames получает отображаемые имена клиента и мастера
// Отсутствие связанной сущности не считается ошибкой выдачи записи
func (s *Service) displayNames(ctx context.Context, appt *domain.Appointment) (string, string) {
	var customerName, staffName string

	customer, err := s.customers.GetByID(ctx, appt.CustomerID)
	switch {
	case err == nil:
		customerName = customer.FullName()
	case errors.Is(err, customerRepo.ErrCustomerNotFound):
		s.logger.Warn("displayNames: customer id=%d not found for appointment id=%d", appt.CustomerID, appt.ID)
	default:
		s.logger.Error("displayNames: customer lookup failed for appointment id=%d: %v", appt.ID, err)
	}

	member, err := s.staff.GetByID(ctx, appt.StaffID)
	switch {
	case err == nil:
		staffName = member.Name
	case errors.Is(err, staffRepo.ErrStaffNotFound):
		s.logger.Warn("displayNames: staff id=%d not found for appointment id=%d", appt.StaffID, appt.ID)
	default:
		s.logger.Error("displayNames: staff lookup failed for appointment id=%d: %v", appt.ID, err)
	}

	return customerName, staffName
}
