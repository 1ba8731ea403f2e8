package update_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment: invalid input data")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("update_appointment: appointment not found")

	// ErrUnknownMenuItem возвращается, когда выбранная услуга отсутствует в меню
	ErrUnknownMenuItem = errors.New("update_appointment: unknown menu item")

	// ErrOutsideBusinessHours возвращается, когда интервал выходит за рабочие часы
	ErrOutsideBusinessHours = errors.New("update_appointment: outside business hours")

	// ErrTimeSlotConflict возвращается при пересечении с другой записью мастера
	ErrTimeSlotConflict = errors.New("update_appointment: time slot conflict")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment: internal error")
)
