package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ServiceSelection структурированный payload выбранных услуг записи
// Хранится в колонке services (jsonb)
type ServiceSelection struct {
	MenuIDs              []int64 `json:"menuIds"`
	TotalDurationMinutes int     `json:"totalDurationMinutes"`
	TotalPrice           int     `json:"totalPrice"`
}

// Value сериализует выбор услуг в jsonb
func (s ServiceSelection) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan десериализует выбор услуг из jsonb
func (s *ServiceSelection) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = ServiceSelection{}
		return nil
	default:
		return fmt.Errorf("domain: cannot scan ServiceSelection from %T", src)
	}
}

// CompletedService выполненная услуга в составе записи об обслуживании
type CompletedService struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// TreatmentServices payload выполненных услуг записи об обслуживании
type TreatmentServices struct {
	MenuIDs           []int64            `json:"menuIds"`
	CompletedServices []CompletedService `json:"completedServices"`
}

// Value сериализует выполненные услуги в jsonb
func (s TreatmentServices) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan десериализует выполненные услуги из jsonb
func (s *TreatmentServices) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = TreatmentServices{}
		return nil
	default:
		return fmt.Errorf("domain: cannot scan TreatmentServices from %T", src)
	}
}

// ProductList список использованных средств
type ProductList struct {
	Items []string `json:"items"`
}

// Value сериализует список средств в jsonb
func (p ProductList) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan десериализует список средств из jsonb
func (p *ProductList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = ProductList{}
		return nil
	default:
		return fmt.Errorf("domain: cannot scan ProductList from %T", src)
	}
}
