package models

import (
	"time"

	"github.com/avelsk/NSD-SchedulingService/internal/domain"
)

// CreateCustomerRequest запрос на создание клиента
type CreateCustomerRequest struct {
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	HealthInfo  *string    `json:"healthInfo,omitempty"`
}

// UpdateCustomerRequest запрос на обновление клиента
type UpdateCustomerRequest struct {
	CustomerID  int64      `json:"-"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	HealthInfo  *string    `json:"healthInfo,omitempty"`
}

// ToDomain конвертирует запрос на создание в domain модель
func (r *CreateCustomerRequest) ToDomain() *domain.Customer {
	return &domain.Customer{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		DateOfBirth: r.DateOfBirth,
		Notes:       r.Notes,
		HealthInfo:  toHealthInfo(r.HealthInfo),
	}
}

// ToDomain конвертирует запрос на обновление в domain модель
func (r *UpdateCustomerRequest) ToDomain() *domain.Customer {
	return &domain.Customer{
		ID:          r.CustomerID,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		DateOfBirth: r.DateOfBirth,
		Notes:       r.Notes,
		HealthInfo:  toHealthInfo(r.HealthInfo),
	}
}

func toHealthInfo(text *string) *domain.HealthInfo {
	if text == nil || *text == "" {
		return nil
	}
	return &domain.HealthInfo{Text: *text}
}

// CustomerResponse ответ с данными клиента
type CustomerResponse struct {
	ID          int64   `json:"id"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"` // "1990-04-02"
	Notes       *string `json:"notes,omitempty"`
	HealthInfo  *string `json:"healthInfo,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CustomerListResponse список клиентов (результат поиска)
type CustomerListResponse struct {
	Customers []*CustomerResponse `json:"customers"`
}

// TreatmentResponse запись об обслуживании в истории клиента
type TreatmentResponse struct {
	ID                 int64    `json:"id"`
	AppointmentID      int64    `json:"appointmentId"`
	Date               string   `json:"date"` // "2025-10-15"
	MenuIDs            []int64  `json:"menuIds"`
	CompletedServices  []CompletedServiceResponse `json:"completedServices"`
	Products           []string `json:"products,omitempty"`
	NextRecommendation *string  `json:"nextRecommendation,omitempty"`
	Notes              *string  `json:"notes,omitempty"`
}

// CompletedServiceResponse выполненная услуга в истории
type CompletedServiceResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// CustomerDetailResponse клиент вместе с историей обслуживания
type CustomerDetailResponse struct {
	Customer   *CustomerResponse    `json:"customer"`
	Treatments []*TreatmentResponse `json:"treatments"`
}

// FromDomainCustomer конвертирует domain модель в response
func FromDomainCustomer(c *domain.Customer) *CustomerResponse {
	resp := &CustomerResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.DateOfBirth != nil {
		dob := c.DateOfBirth.Format(domain.DateFormat)
		resp.DateOfBirth = &dob
	}
	if c.HealthInfo != nil {
		text := c.HealthInfo.Text
		resp.HealthInfo = &text
	}
	return resp
}

// FromDomainCustomerList конвертирует список domain моделей в response
func FromDomainCustomerList(list []*domain.Customer) *CustomerListResponse {
	result := make([]*CustomerResponse, len(list))
	for i, c := range list {
		result[i] = FromDomainCustomer(c)
	}
	return &CustomerListResponse{Customers: result}
}

// FromDomainTreatmentList конвертирует историю обслуживания в response
func FromDomainTreatmentList(list []*domain.TreatmentRecord) []*TreatmentResponse {
	result := make([]*TreatmentResponse, len(list))
	for i, t := range list {
		resp := &TreatmentResponse{
			ID:                 t.ID,
			AppointmentID:      t.AppointmentID,
			Date:               t.Date.Format(domain.DateFormat),
			MenuIDs:            t.Services.MenuIDs,
			NextRecommendation: t.NextRecommendation,
			Notes:              t.Notes,
		}
		resp.CompletedServices = make([]CompletedServiceResponse, len(t.Services.CompletedServices))
		for j, cs := range t.Services.CompletedServices {
			resp.CompletedServices[j] = CompletedServiceResponse{ID: cs.ID, Name: cs.Name, Price: cs.Price}
		}
		if t.Products != nil {
			resp.Products = t.Products.Items
		}
		result[i] = resp
	}
	return result
}
