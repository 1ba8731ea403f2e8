package domain

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxNextRecommendationLength = 500
	CustomerSearchLimit         = 10
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultSlotDurationMinutes размер слота календарной сетки по умолчанию
const DefaultSlotDurationMinutes = 60
