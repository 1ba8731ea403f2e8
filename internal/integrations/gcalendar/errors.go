package gcalendar

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие отсутствует в календаре
	ErrEventNotFound = errors.New("gcalendar client: event not found")

	// ErrDisabled возвращается, когда синхронизация с календарем выключена конфигурацией
	ErrDisabled = errors.New("gcalendar client: calendar sync is disabled")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("gcalendar client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе календарного сервиса
	ErrInvalidResponse = errors.New("gcalendar client: invalid response")
)
