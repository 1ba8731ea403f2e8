package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/avelsk/NSD-SchedulingService/internal/domain"
	staffRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/staff"
)

// Service сервис для работы с сотрудниками
type Service struct {
	staff      StaffRepository
	production bool
	logger     Logger
}

// NewService создает новый экземпляр сервиса сотрудников
func NewService(staff StaffRepository, production bool, logger Logger) *Service {
	return &Service{
		staff:      staff,
		production: production,
		logger:     logger,
	}
}

// BootstrapAdminRequest запрос на создание первоначального администратора
type BootstrapAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StaffResponse ответ с данными сотрудника (без хеша пароля)
type StaffResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// BootstrapAdmin создает первоначального администратора
// Разовая операция для развертывания: отклоняется в production и когда
// администратор уже существует
func (s *Service) BootstrapAdmin(ctx context.Context, req *BootstrapAdminRequest) (*StaffResponse, error) {
	s.logger.Info("BootstrapAdmin: requested for email=%s", req.Email)

	if s.production {
		s.logger.Warn("BootstrapAdmin: rejected in production mode")
		return nil, ErrForbiddenInProduction
	}

	if err := validateBootstrapRequest(req); err != nil {
		s.logger.Warn("BootstrapAdmin: validation failed: %v", err)
		return nil, err
	}

	exists, err := s.staff.HasAdmin(ctx)
	if err != nil {
		s.logger.Error("BootstrapAdmin: admin existence check failed: %v", err)
		return nil, fmt.Errorf("%w: BootstrapAdmin - repository error: %v", ErrInternal, err)
	}
	if exists {
		s.logger.Warn("BootstrapAdmin: admin already exists")
		return nil, ErrAdminExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("BootstrapAdmin: password hashing failed: %v", err)
		return nil, fmt.Errorf("%w: BootstrapAdmin - hashing error: %v", ErrInternal, err)
	}

	created, err := s.staff.Create(ctx, &domain.Staff{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, staffRepo.ErrEmailTaken) {
			s.logger.Warn("BootstrapAdmin: email %s already taken", req.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("BootstrapAdmin: repository error: %v", err)
		return nil, fmt.Errorf("%w: BootstrapAdmin - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("BootstrapAdmin: admin id=%d created", created.ID)
	return &StaffResponse{
		ID:    created.ID,
		Name:  created.Name,
		Email: created.Email,
		Role:  string(created.Role),
	}, nil
}

// List возвращает всех сотрудников
func (s *Service) List(ctx context.Context) ([]*StaffResponse, error) {
	list, err := s.staff.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	result := make([]*StaffResponse, len(list))
	for i, m := range list {
		result[i] = &StaffResponse{ID: m.ID, Name: m.Name, Email: m.Email, Role: string(m.Role)}
	}
	return result, nil
}

// validateBootstrapRequest валидирует запрос на bootstrap
func validateBootstrapRequest(req *BootstrapAdminRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		return fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	if len(req.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}
	return nil
}
