package create_customer

import (
	"time"

	"github.com/avelsk/NSD-SchedulingService/internal/domain"
	"github.com/avelsk/NSD-SchedulingService/internal/service/customers/models"
)

// CreateCustomerRequest HTTP request model
type CreateCustomerRequest struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"` // "1990-04-02"
	Notes       *string `json:"notes,omitempty"`
	HealthInfo  *string `json:"healthInfo,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateCustomerRequest) ToServiceRequest() (*models.CreateCustomerRequest, error) {
	dob, err := parseDateOfBirth(r.DateOfBirth)
	if err != nil {
		return nil, err
	}
	return &models.CreateCustomerRequest{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		DateOfBirth: dob,
		Notes:       r.Notes,
		HealthInfo:  r.HealthInfo,
	}, nil
}

func parseDateOfBirth(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	dob, err := time.Parse(domain.DateFormat, *raw)
	if err != nil {
		return nil, err
	}
	return &dob, nil
}
