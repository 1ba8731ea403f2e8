package update_appointment

import (
	"time"

	"github.com/avelsk/NSD-SchedulingService/internal/domain"
	updateAppointment "github.com/avelsk/NSD-SchedulingService/internal/usecase/update_appointment"
	"github.com/avelsk/NSD-SchedulingService/pkg/types"
)

// UpdateAppointmentRequest HTTP request model
type UpdateAppointmentRequest struct {
	Date      string  `json:"date"`      // "2025-10-15"
	StartTime string  `json:"startTime"` // "10:00"
	MenuIDs   []int64 `json:"menuIds"`
	Notes     *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID         int64 `json:"id"`
	CustomerID int64 `json:"customerId"`
	StaffID    int64 `json:"staffId"`

	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`

	MenuIDs              []int64 `json:"menuIds"`
	TotalDurationMinutes int     `json:"totalDurationMinutes"`
	TotalPrice           int     `json:"totalPrice"`
	Notes                *string `json:"notes,omitempty"`

	CalendarSync  string  `json:"calendarSync"`
	CalendarError *string `json:"calendarError,omitempty"`

	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(appointmentID int64) (*updateAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	ts, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	minutes, err := ts.Minutes()
	if err != nil {
		return nil, err
	}

	return &updateAppointment.Request{
		AppointmentID: appointmentID,
		Date:          date,
		StartTime:     date.Add(time.Duration(minutes) * time.Minute),
		MenuIDs:       r.MenuIDs,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                   resp.ID,
		CustomerID:           resp.CustomerID,
		StaffID:              resp.StaffID,
		Date:                 resp.Date.Format(domain.DateFormat),
		StartTime:            resp.StartTime.Format(domain.TimeFormat),
		EndTime:              resp.EndTime.Format(domain.TimeFormat),
		Status:               resp.Status,
		MenuIDs:              resp.Services.MenuIDs,
		TotalDurationMinutes: resp.Services.TotalDurationMinutes,
		TotalPrice:           resp.Services.TotalPrice,
		Notes:                resp.Notes,
		CalendarSync:         string(resp.CalendarSync),
		CalendarError:        resp.CalendarError,
		UpdatedAt:            resp.UpdatedAt.Format(time.RFC3339),
	}
}
