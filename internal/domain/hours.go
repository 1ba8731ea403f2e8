package domain

import "time"

// BusinessHours рабочие часы салона (единое дневное окно)
// Записи никогда не пересекают полночь
type BusinessHours struct {
	OpenHour    int
	OpenMinute  int
	CloseHour   int
	CloseMinute int
}

// DefaultBusinessHours рабочие часы по умолчанию: 09:00 - 19:00
var DefaultBusinessHours = BusinessHours{OpenHour: 9, OpenMinute: 0, CloseHour: 19, CloseMinute: 0}

// Contains проверяет, что интервал [start, end) целиком лежит внутри рабочих часов
// одного календарного дня. Интервал, заканчивающийся ровно в момент закрытия, допустим.
// Чистая функция от компонентов настенного времени, без побочных эффектов.
func (h BusinessHours) Contains(start, end time.Time) bool {
	// Запись не может пересекать полночь
	y1, m1, d1 := start.Date()
	y2, m2, d2 := end.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return false
	}

	openMinutes := h.OpenHour*60 + h.OpenMinute
	closeMinutes := h.CloseHour*60 + h.CloseMinute

	startMinutes := start.Hour()*60 + start.Minute()
	endMinutes := end.Hour()*60 + end.Minute()

	return startMinutes >= openMinutes && endMinutes <= closeMinutes
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов [s1,e1) и [s2,e2)
// Интервалы пересекаются тогда и только тогда, когда s1 < e2 && s2 < e1
// Граничащие интервалы (конец одного равен началу другого) не пересекаются
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}
