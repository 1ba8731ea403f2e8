package create_appointment

import (
	"errors"
	"net/http"

	"github.com/avelsk/NSD-SchedulingService/internal/api/handlers"
	createAppointment "github.com/avelsk/NSD-SchedulingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput         = "некорректные данные записи"
	msgCustomerNotFound     = "клиент не найден"
	msgStaffNotFound        = "мастер не найден"
	msgUnknownMenuItem      = "выбранная услуга отсутствует в меню"
	msgOutsideBusinessHours = "время приема выходит за рабочие часы салона"
	msgTimeSlotConflict     = "выбранное время пересекается с другой записью мастера"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrCustomerNotFound):
			h.logger.Warn("POST /appointments - Customer not found: customer_id=%d", req.CustomerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createAppointment.ErrStaffNotFound):
			h.logger.Warn("POST /appointments - Staff not found: staff_id=%d", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createAppointment.ErrUnknownMenuItem):
			h.logger.Warn("POST /appointments - Unknown menu item: menu_ids=%v", req.MenuIDs)
			handlers.RespondBadRequest(w, msgUnknownMenuItem)

		case errors.Is(err, createAppointment.ErrOutsideBusinessHours):
			h.logger.Warn("POST /appointments - Outside business hours: start=%s", req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideBusinessHours)

		case errors.Is(err, createAppointment.ErrTimeSlotConflict):
			h.logger.Warn("POST /appointments - Time slot conflict: staff_id=%d, start=%s", req.StaffID, req.StartTime)
			handlers.RespondConflict(w, msgTimeSlotConflict)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: customer_id=%d, staff_id=%d, error=%v",
				req.CustomerID, req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, calendar_sync=%s",
		result.ID, result.CalendarSync)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
