package complete_treatment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avelsk/NSD-SchedulingService/internal/api/handlers"
	completeTreatment "github.com/avelsk/NSD-SchedulingService/internal/usecase/complete_treatment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidInput         = "некорректные данные обслуживания"
	msgNotFound             = "запись не найдена"
	msgUnknownMenuItem      = "выбранная услуга отсутствует в меню"
	msgNotASubset           = "выполненные услуги не входят в состав записи"
	msgInvalidStatus        = "запись нельзя завершить в текущем статусе"
	msgAlreadyCompleted     = "обслуживание по записи уже зафиксировано"
)

type Handler struct {
	useCase CompleteTreatmentUseCase
	logger  Logger
}

func NewHandler(useCase CompleteTreatmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/complete - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req CompleteTreatmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/complete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID))
	if err != nil {
		switch {
		case errors.Is(err, completeTreatment.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/complete - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, completeTreatment.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/complete - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, completeTreatment.ErrUnknownMenuItem):
			h.logger.Warn("POST /appointments/{id}/complete - Unknown menu item: menu_ids=%v", req.CompletedMenuIDs)
			handlers.RespondBadRequest(w, msgUnknownMenuItem)

		case errors.Is(err, completeTreatment.ErrNotASubset):
			h.logger.Warn("POST /appointments/{id}/complete - Services not a subset: appointment_id=%d, menu_ids=%v",
				appointmentID, req.CompletedMenuIDs)
			handlers.RespondBadRequest(w, msgNotASubset)

		case errors.Is(err, completeTreatment.ErrInvalidStatus):
			h.logger.Warn("POST /appointments/{id}/complete - Invalid status: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, completeTreatment.ErrAlreadyCompleted):
			h.logger.Warn("POST /appointments/{id}/complete - Already recorded: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgAlreadyCompleted)

		default:
			h.logger.Error("POST /appointments/{id}/complete - Failed to complete treatment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/complete - Treatment recorded: treatment_id=%d, appointment_id=%d",
		result.TreatmentID, appointmentID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
