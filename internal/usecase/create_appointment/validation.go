package create_appointment

import (
	"fmt"
	"time"

	"github.com/avelsk/NSD-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Все отказы здесь - ошибки валидации, без обращения к хранилищу
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if len(req.MenuIDs) == 0 {
		return fmt.Errorf("%w: menuIds must not be empty", ErrInvalidInput)
	}

	if !sameDay(req.Date, req.StartTime) {
		return fmt.Errorf("%w: startTime must be on the appointment date", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long (max %d)", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// sameDay проверяет, что две временные точки относятся к одному календарному дню
func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
