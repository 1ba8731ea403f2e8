package create_customer

import (
	"errors"
	"net/http"

	"github.com/avelsk/NSD-SchedulingService/internal/api/handlers"
	"github.com/avelsk/NSD-SchedulingService/internal/service/customers"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOfBirth = "некорректная дата рождения, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные клиента"
	msgEmailTaken         = "клиент с таким email уже существует"
)

type Handler struct {
	service CustomerService
	logger  Logger
}

func NewHandler(service CustomerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/customers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /customers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /customers - Invalid date of birth: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOfBirth)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, customers.ErrInvalidInput):
			h.logger.Warn("POST /customers - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, customers.ErrEmailTaken):
			h.logger.Warn("POST /customers - Email taken: email=%s", req.Email)
			handlers.RespondConflict(w, msgEmailTaken)

		default:
			h.logger.Error("POST /customers - Failed to create customer: email=%s, error=%v", req.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /customers - Customer created: customer_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
