package complete_treatment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("complete_treatment: invalid input data")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("complete_treatment: appointment not found")

	// ErrUnknownMenuItem возвращается, когда выбранная услуга отсутствует в меню
	ErrUnknownMenuItem = errors.New("complete_treatment: unknown menu item")

	// ErrNotASubset возвращается, когда выполненные услуги не входят в состав записи
	ErrNotASubset = errors.New("complete_treatment: completed services are not a subset of appointment services")

	// ErrInvalidStatus возвращается, когда запись уже в терминальном статусе
	ErrInvalidStatus = errors.New("complete_treatment: appointment cannot be completed in its current status")

	// ErrAlreadyCompleted возвращается при повторной фиксации обслуживания
	ErrAlreadyCompleted = errors.New("complete_treatment: treatment already recorded for appointment")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_treatment: internal error")
)
