package delete_customer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avelsk/NSD-SchedulingService/internal/api/handlers"
	"github.com/avelsk/NSD-SchedulingService/internal/service/customers"
)

const (
	msgInvalidCustomerID = "некорректный ID клиента"
	msgNotFound          = "клиент не найден"
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

// Handle DELETE /api/v1/customers/{customerId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerID, err := strconv.ParseInt(vars["customerId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /customers/{id} - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	if err := h.service.Delete(r.Context(), customerID); err != nil {
		switch {
		case errors.Is(err, customers.ErrCustomerNotFound):
			h.logger.Warn("DELETE /customers/{id} - Customer not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /customers/{id} - Failed to delete customer: customer_id=%d, error=%v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /customers/{id} - Customer deleted: customer_id=%d", customerID)
	handlers.RespondNoContent(w)
}
