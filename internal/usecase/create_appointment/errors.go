package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("create_appointment: customer not found")

	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("create_appointment: staff not found")

	// ErrUnknownMenuItem возвращается, когда выбранная услуга отсутствует в меню
	ErrUnknownMenuItem = errors.New("create_appointment: unknown menu item")

	// ErrOutsideBusinessHours возвращается, когда интервал выходит за рабочие часы
	ErrOutsideBusinessHours = errors.New("create_appointment: outside business hours")

	// ErrTimeSlotConflict возвращается при пересечении с другой записью мастера
	ErrTimeSlotConflict = errors.New("create_appointment: time slot conflict")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
