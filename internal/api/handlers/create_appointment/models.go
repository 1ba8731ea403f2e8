package create_appointment

import (
	"time"

	"github.com/avelsk/NSD-SchedulingService/internal/domain"
	createAppointment "github.com/avelsk/NSD-SchedulingService/internal/usecase/create_appointment"
	"github.com/avelsk/NSD-SchedulingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	CustomerID int64   `json:"customerId"`
	StaffID    int64   `json:"staffId"`
	Date       string  `json:"date"`      // "2025-10-15"
	StartTime  string  `json:"startTime"` // "10:00"
	MenuIDs    []int64 `json:"menuIds"`
	Notes      *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID           int64  `json:"id"`
	CustomerID   int64  `json:"customerId"`
	CustomerName string `json:"customerName"`
	StaffID      int64  `json:"staffId"`
	StaffName    string `json:"staffName"`

	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`

	MenuIDs              []int64 `json:"menuIds"`
	TotalDurationMinutes int     `json:"totalDurationMinutes"`
	TotalPrice           int     `json:"totalPrice"`
	Notes                *string `json:"notes,omitempty"`

	CalendarSync    string  `json:"calendarSync"`
	CalendarError   *string `json:"calendarError,omitempty"`
	CalendarEventID *string `json:"calendarEventId,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	start, err := parseStartTime(date, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		CustomerID: r.CustomerID,
		StaffID:    r.StaffID,
		Date:       date,
		StartTime:  start,
		MenuIDs:    r.MenuIDs,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                   resp.ID,
		CustomerID:           resp.CustomerID,
		CustomerName:         resp.CustomerName,
		StaffID:              resp.StaffID,
		StaffName:            resp.StaffName,
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
		CalendarEventID:      resp.CalendarEventID,
		CreatedAt:            resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            resp.UpdatedAt.Format(time.RFC3339),
	}
}

// parseStartTime сочетает день приема и время "HH:MM" в момент начала
func parseStartTime(date time.Time, value string) (time.Time, error) {
	ts, err := types.NewTimeStringFromString(value)
	if err != nil {
		return time.Time{}, err
	}
	minutes, err := ts.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	return date.Add(time.Duration(minutes) * time.Minute), nil
}
