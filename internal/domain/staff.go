package domain

import "time"

// StaffRole роль сотрудника
type StaffRole string

const (
	RoleAdmin StaffRole = "ADMIN"
	RoleStaff StaffRole = "STAFF"
)

// Staff сотрудник салона (мастер или администратор)
type Staff struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         StaffRole

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin возвращает true для администратора
func (s *Staff) IsAdmin() bool {
	return s.Role == RoleAdmin
}
