package update_customer

import (
	"time"

	"github.com/avelsk/NSD-SchedulingService/internal/domain"
	"github.com/avelsk/NSD-SchedulingService/internal/service/customers/models"
)

// UpdateCustomerRequest HTTP request model
type UpdateCustomerRequest struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"` // "1990-04-02"
	Notes       *string `json:"notes,omitempty"`
	HealthInfo  *string `json:"healthInfo,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateCustomerRequest) ToServiceRequest(customerID int64) (*models.UpdateCustomerRequest, error) {
	var dob *time.Time
	if r.DateOfBirth != nil && *r.DateOfBirth != "" {
		parsed, err := time.Parse(domain.DateFormat, *r.DateOfBirth)
		if err != nil {
			return nil, err
		}
		dob = &parsed
	}
	return &models.UpdateCustomerRequest{
		CustomerID:  customerID,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		DateOfBirth: dob,
		Notes:       r.Notes,
		HealthInfo:  r.HealthInfo,
	}, nil
}
