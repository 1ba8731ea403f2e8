package treatment

import "errors"

var (
	// ErrTreatmentNotFound возвращается, когда запись об обслуживании не найдена
	ErrTreatmentNotFound = errors.New("treatment.repository: treatment record not found")

	// ErrAlreadyRecorded возвращается при повторной фиксации обслуживания по одной записи
	// (уникальное ограничение на appointment_id)
	ErrAlreadyRecorded = errors.New("treatment.repository: treatment already recorded for appointment")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("treatment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("treatment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("treatment.repository: failed to scan row")
)
