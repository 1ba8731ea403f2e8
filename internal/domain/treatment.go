package domain

import "time"

// TreatmentRecord запись о выполненном обслуживании
// Создается единственный раз - при переводе записи на прием в статус COMPLETED
type TreatmentRecord struct {
	ID            int64
	CustomerID    int64
	AppointmentID int64

	Date               time.Time
	Services           TreatmentServices // выполненные услуги (подмножество услуг записи)
	Products           *ProductList      // использованные средства (опционально)
	NextRecommendation *string
	Notes              *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
