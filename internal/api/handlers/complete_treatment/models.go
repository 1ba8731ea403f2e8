package complete_treatment

import (
	"time"

	"github.com/avelsk/NSD-SchedulingService/internal/domain"
	completeTreatment "github.com/avelsk/NSD-SchedulingService/internal/usecase/complete_treatment"
)

// CompleteTreatmentRequest HTTP request model
type CompleteTreatmentRequest struct {
	CompletedMenuIDs   []int64  `json:"completedMenuIds"`
	Products           []string `json:"products,omitempty"`
	NextRecommendation *string  `json:"nextRecommendation,omitempty"`
	Notes              *string  `json:"notes,omitempty"`
}

// CompletedServiceResponse выполненная услуга
type CompletedServiceResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// TreatmentResponse HTTP response model
type TreatmentResponse struct {
	TreatmentID   int64 `json:"treatmentId"`
	AppointmentID int64 `json:"appointmentId"`
	CustomerID    int64 `json:"customerId"`

	Date              string                     `json:"date"`
	CompletedServices []CompletedServiceResponse `json:"completedServices"`
	Products          []string                   `json:"products,omitempty"`

	NextRecommendation *string `json:"nextRecommendation,omitempty"`
	Notes              *string `json:"notes,omitempty"`

	AppointmentStatus string `json:"appointmentStatus"`
	CreatedAt         string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CompleteTreatmentRequest) ToUseCaseRequest(appointmentID int64) *completeTreatment.Request {
	return &completeTreatment.Request{
		AppointmentID:      appointmentID,
		CompletedMenuIDs:   r.CompletedMenuIDs,
		Products:           r.Products,
		NextRecommendation: r.NextRecommendation,
		Notes:              r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *completeTreatment.Response) *TreatmentResponse {
	out := &TreatmentResponse{
		TreatmentID:        resp.TreatmentID,
		AppointmentID:      resp.AppointmentID,
		CustomerID:         resp.CustomerID,
		Date:               resp.Date.Format(domain.DateFormat),
		NextRecommendation: resp.NextRecommendation,
		Notes:              resp.Notes,
		AppointmentStatus:  resp.AppointmentStatus,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
	}

	out.CompletedServices = make([]CompletedServiceResponse, len(resp.Services.CompletedServices))
	for i, cs := range resp.Services.CompletedServices {
		out.CompletedServices[i] = CompletedServiceResponse{ID: cs.ID, Name: cs.Name, Price: cs.Price}
	}
	if resp.Products != nil {
		out.Products = resp.Products.Items
	}
	return out
}
