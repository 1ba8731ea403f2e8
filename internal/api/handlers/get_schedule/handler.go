package get_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/avelsk/NSD-SchedulingService/internal/api/handlers"
	"github.com/avelsk/NSD-SchedulingService/internal/domain"
	"github.com/avelsk/NSD-SchedulingService/internal/service/appointments"
	"github.com/avelsk/NSD-SchedulingService/pkg/ptr"
)

const (
	msgInvalidPeriod  = "некорректный период, ожидаются параметры from и to в формате YYYY-MM-DD"
	msgInvalidStaffID = "некорректный ID мастера"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule?from=YYYY-MM-DD&to=YYYY-MM-DD&staffId=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from, err := time.Parse(domain.DateFormat, query.Get("from"))
	if err != nil {
		h.logger.Warn("GET /schedule - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	to, err := time.Parse(domain.DateFormat, query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /schedule - Invalid to date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	rng := &appointments.ScheduleRange{From: from, To: to}
	if raw := query.Get("staffId"); raw != "" {
		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /schedule - Invalid staff ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		rng.StaffID = ptr.Ptr(staffID)
	}

	result, err := h.service.GetSchedule(r.Context(), rng)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /schedule - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /schedule - Failed to fetch schedule: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
