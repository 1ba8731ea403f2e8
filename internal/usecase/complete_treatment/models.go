package complete_treatment

import (
	"time"

	"github.com/avelsk/NSD-SchedulingService/internal/domain"
)

// Request модель запроса на фиксацию выполненного обслуживания
type Request struct {
	AppointmentID      int64
	CompletedMenuIDs   []int64
	Products           []string
	NextRecommendation *string
	Notes              *string
}

// Response модель ответа с созданной записью об обслуживании
type Response struct {
	TreatmentID   int64
	AppointmentID int64
	CustomerID    int64

	Date     time.Time
	Services domain.TreatmentServices
	Products *domain.ProductList

	NextRecommendation *string
	Notes              *string

	AppointmentStatus string
	CreatedAt         time.Time
}
