package models

import (
	"time"

	"github.com/avelsk/NSD-SchedulingService/internal/domain"
)

// AppointmentResponse ответ с данными записи на прием
type AppointmentResponse struct {
	ID           int64  `json:"id"`
	CustomerID   int64  `json:"customerId"`
	CustomerName string `json:"customerName,omitempty"`
	StaffID      int64  `json:"staffId"`
	StaffName    string `json:"staffName,omitempty"`

	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:30"
	Status    string `json:"status"`

	Services ServicesResponse `json:"services"`
	Notes    *string          `json:"notes,omitempty"`

	CalendarEventID *string `json:"calendarEventId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ServicesResponse состав услуг записи
type ServicesResponse struct {
	MenuIDs              []int64 `json:"menuIds"`
	TotalDurationMinutes int     `json:"totalDurationMinutes"`
	TotalPrice           int     `json:"totalPrice"`
}

// ScheduleResponse расписание за период с сеткой слотов
type ScheduleResponse struct {
	From         string                 `json:"from"` // "2025-10-13"
	To           string                 `json:"to"`   // "2025-10-19"
	SlotGrid     []string               `json:"slotGrid"` // начала слотов рабочего дня: ["09:00", "10:00", ...]
	Appointments []*AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует domain модель в response
func FromDomainAppointment(a *domain.Appointment, customerName, staffName string) *AppointmentResponse {
	return &AppointmentResponse{
		ID:           a.ID,
		CustomerID:   a.CustomerID,
		CustomerName: customerName,
		StaffID:      a.StaffID,
		StaffName:    staffName,
		Date:         a.Date.Format(domain.DateFormat),
		StartTime:    a.StartTime.Format(domain.TimeFormat),
		EndTime:      a.EndTime.Format(domain.TimeFormat),
		Status:       string(a.Status),
		Services: ServicesResponse{
			MenuIDs:              a.Services.MenuIDs,
			TotalDurationMinutes: a.Services.TotalDurationMinutes,
			TotalPrice:           a.Services.TotalPrice,
		},
		Notes:           a.Notes,
		CalendarEventID: a.CalendarEventID,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в response
func FromDomainAppointmentList(list []*domain.Appointment) []*AppointmentResponse {
	result := make([]*AppointmentResponse, len(list))
	for i, a := range list {
		result[i] = FromDomainAppointment(a, "", "")
	}
	return result
}
