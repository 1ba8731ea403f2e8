package gcalendar

import "time"

// Event событие внешнего календаря
type Event struct {
	Summary     string        `json:"summary"`
	Description string        `json:"description"`
	Start       EventDateTime `json:"start"`
	End         EventDateTime `json:"end"`
}

// EventDateTime момент времени события с таймзоной
type EventDateTime struct {
	DateTime time.Time `json:"dateTime"`
	TimeZone string    `json:"timeZone"`
}

// createEventResponse ответ календарного сервиса на создание события
type createEventResponse struct {
	ID string `json:"id"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
