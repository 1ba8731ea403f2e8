package bootstrap_admin

import (
	"errors"
	"net/http"

	"github.com/avelsk/NSD-SchedulingService/internal/api/handlers"
	"github.com/avelsk/NSD-SchedulingService/internal/service/staff"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные администратора"
	msgAdminExists        = "администратор уже создан"
	msgForbidden          = "операция недоступна в production"
	msgEmailTaken         = "сотрудник с таким email уже существует"
)

type Handler struct {
	service StaffService
	logger  Logger
}

func NewHandler(service StaffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/bootstrap
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req staff.BootstrapAdminRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bootstrap - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.BootstrapAdmin(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrInvalidInput):
			h.logger.Warn("POST /admin/bootstrap - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, staff.ErrForbiddenInProduction):
			h.logger.Warn("POST /admin/bootstrap - Rejected in production")
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, staff.ErrAdminExists):
			h.logger.Warn("POST /admin/bootstrap - Admin already exists")
			handlers.RespondConflict(w, msgAdminExists)

		case errors.Is(err, staff.ErrEmailTaken):
			h.logger.Warn("POST /admin/bootstrap - Email taken: email=%s", req.Email)
			handlers.RespondConflict(w, msgEmailTaken)

		default:
			h.logger.Error("POST /admin/bootstrap - Failed to bootstrap admin: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bootstrap - Admin created: staff_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
