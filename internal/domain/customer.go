package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Customer клиент салона
type Customer struct {
	ID          int64
	FirstName   string
	LastName    string
	Email       string // уникален на уровне БД
	Phone       string
	DateOfBirth *time.Time
	Notes       *string
	HealthInfo  *HealthInfo

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName возвращает отображаемое имя клиента
func (c *Customer) FullName() string {
	return c.LastName + " " + c.FirstName
}

// HealthInfo информация о здоровье клиента (аллергии, противопоказания)
// Хранится как jsonb
type HealthInfo struct {
	Text string `json:"text"`
}

// Value сериализует информацию о здоровье в jsonb
func (h HealthInfo) Value() (driver.Value, error) {
	return json.Marshal(h)
}

// Scan десериализует информацию о здоровье из jsonb
func (h *HealthInfo) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, h)
	case string:
		return json.Unmarshal([]byte(v), h)
	case nil:
		*h = HealthInfo{}
		return nil
	default:
		return fmt.Errorf("domain: cannot scan HealthInfo from %T", src)
	}
}
