package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 10, 15, hour, minute, 0, 0, time.UTC)
}

func TestBusinessHours_Contains(t *testing.T) {
	hours := DefaultBusinessHours // 09:00 - 19:00

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"внутри рабочего дня", at(10, 0), at(11, 30), true},
		{"ровно от открытия до закрытия", at(9, 0), at(19, 0), true},
		{"конец ровно в закрытие", at(18, 0), at(19, 0), true},
		{"начало до открытия", at(8, 30), at(9, 30), false},
		{"конец минутой позже закрытия", at(18, 1), at(19, 1), false},
		{"целиком после закрытия", at(19, 0), at(20, 0), false},
		{"переход через полночь", at(18, 0), time.Date(2025, 10, 16, 10, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hours.Contains(tt.start, tt.end))
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"частичное пересечение", at(10, 0), at(11, 0), at(10, 30), at(11, 30), true},
		{"вложенный интервал", at(10, 0), at(12, 0), at(10, 30), at(11, 0), true},
		{"одинаковое начало", at(10, 0), at(11, 0), at(10, 0), at(11, 30), true},
		{"встык: конец равен началу", at(10, 0), at(11, 0), at(11, 0), at(12, 0), false},
		{"встык: начало равно концу", at(11, 0), at(12, 0), at(10, 0), at(11, 0), false},
		{"не пересекаются", at(9, 0), at(10, 0), at(11, 0), at(12, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			// Пересечение симметрично
			assert.Equal(t, tt.want, Overlaps(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}
