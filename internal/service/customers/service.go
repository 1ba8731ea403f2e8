package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avelsk/NSD-SchedulingService/internal/domain"
	customerRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/customer"
	"github.com/avelsk/NSD-SchedulingService/internal/service/customers/models"
)

// Service сервис для работы с клиентами
type Service struct {
	customers  CustomerRepository
	treatments TreatmentRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(customers CustomerRepository, treatments TreatmentRepository, logger Logger) *Service {
	return &Service{
		customers:  customers,
		treatments: treatments,
		logger:     logger,
	}
}

// Create создает клиента
// Уникальность email дублируется ограничением БД, проверка здесь дает
// читаемую ошибку без прохода через нарушение constraint
func (s *Service) Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.CustomerResponse, error) {
	s.logger.Info("Create: creating customer email=%s", req.Email)

	if err := validateContact(req.FirstName, req.LastName, req.Email, req.Phone); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkEmailFree(ctx, req.Email, nil); err != nil {
		return nil, err
	}

	created, err := s.customers.Create(ctx, req.ToDomain())
	if err != nil {
		if errors.Is(err, customerRepo.ErrEmailTaken) {
			s.logger.Warn("Create: email %s already taken", req.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: customer id=%d created", created.ID)
	return models.FromDomainCustomer(created), nil
}

// Update обновляет данные клиента
func (s *Service) Update(ctx context.Context, req *models.UpdateCustomerRequest) (*models.CustomerResponse, error) {
	s.logger.Info("Update: updating customer id=%d", req.CustomerID)

	if req.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}
	if err := validateContact(req.FirstName, req.LastName, req.Email, req.Phone); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	existing, err := s.customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("Update: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("Update: repository error for customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if err := s.checkEmailFree(ctx, req.Email, &existing.ID); err != nil {
		return nil, err
	}

	updated := req.ToDomain()
	if err := s.customers.Update(ctx, updated); err != nil {
		switch {
		case errors.Is(err, customerRepo.ErrCustomerNotFound):
			return nil, ErrCustomerNotFound
		case errors.Is(err, customerRepo.ErrEmailTaken):
			s.logger.Warn("Update: email %s already taken", req.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Update: repository error for customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	result, err := s.customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		s.logger.Error("Update: failed to reload customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: customer id=%d updated", result.ID)
	return models.FromDomainCustomer(result), nil
}

// GetWithHistory получает клиента вместе с историей обслуживания
func (s *Service) GetWithHistory(ctx context.Context, id int64) (*models.CustomerDetailResponse, error) {
	s.logger.Info("GetWithHistory: fetching customer id=%d", id)

	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("GetWithHistory: customer id=%d not found", id)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("GetWithHistory: repository error for customer id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetWithHistory - repository error: %v", ErrInternal, err)
	}

	history, err := s.treatments.GetByCustomerID(ctx, id)
	if err != nil {
		s.logger.Error("GetWithHistory: treatment history error for customer id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetWithHistory - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetWithHistory: customer id=%d fetched, %d treatments", id, len(history))
	return &models.CustomerDetailResponse{
		Customer:   models.FromDomainCustomer(customer),
		Treatments: models.FromDomainTreatmentList(history),
	}, nil
}

// Search ищет клиентов по подстроке имени, фамилии или email
func (s *Service) Search(ctx context.Context, query string) (*models.CustomerListResponse, error) {
	query = strings.TrimSpace(query)
	s.logger.Info("Search: query=%q", query)

	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidInput)
	}

	list, err := s.customers.Search(ctx, query, domain.CustomerSearchLimit)
	if err != nil {
		s.logger.Error("Search: repository error: %v", err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Search: found %d customers", len(list))
	return models.FromDomainCustomerList(list), nil
}

// Delete удаляет клиента
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting customer id=%d", id)

	if err := s.customers.Delete(ctx, id); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("Delete: customer id=%d not found", id)
			return ErrCustomerNotFound
		}
		s.logger.Error("Delete: repository error for customer id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: customer id=%d deleted", id)
	return nil
}

// checkEmailFree проверяет, что email не занят другим клиентом
func (s *Service) checkEmailFree(ctx context.Context, email string, excludeID *int64) error {
	_, err := s.customers.GetByEmail(ctx, email, excludeID)
	switch {
	case err == nil:
		s.logger.Warn("checkEmailFree: email %s already taken", email)
		return ErrEmailTaken
	case errors.Is(err, customerRepo.ErrCustomerNotFound):
		return nil
	default:
		s.logger.Error("checkEmailFree: repository error: %v", err)
		return fmt.Errorf("%w: checkEmailFree - repository error: %v", ErrInternal, err)
	}
}

// validateContact валидирует обязательные контактные поля
func validateContact(firstName, lastName, email, phone string) error {
	if strings.TrimSpace(firstName) == "" {
		return fmt.Errorf("%w: firstName is required", ErrInvalidInput)
	}
	if strings.TrimSpace(lastName) == "" {
		return fmt.Errorf("%w: lastName is required", ErrInvalidInput)
	}
	if strings.TrimSpace(email) == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	if strings.TrimSpace(phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	return nil
}
