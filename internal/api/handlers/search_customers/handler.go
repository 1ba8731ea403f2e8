package search_customers

import (
	"errors"
	"net/http"

	"github.com/avelsk/NSD-SchedulingService/internal/api/handlers"
	"github.com/avelsk/NSD-SchedulingService/internal/service/customers"
)

const (
	msgMissingQuery = "параметр поиска q обязателен"
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

// Handle GET /api/v1/customers/search?q=substring
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	result, err := h.service.Search(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, customers.ErrInvalidInput):
			h.logger.Warn("GET /customers/search - Missing query")
			handlers.RespondBadRequest(w, msgMissingQuery)

		default:
			h.logger.Error("GET /customers/search - Failed to search customers: q=%q, error=%v", query, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
