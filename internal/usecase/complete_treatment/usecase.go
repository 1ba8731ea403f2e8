package complete_treatment

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelsk/NSD-SchedulingService/internal/catalog"
	"github.com/avelsk/NSD-SchedulingService/internal/domain"
	apptRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/appointment"
	treatmentRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/treatment"
)

// UseCase use case фиксации выполненного обслуживания
// Создание записи об обслуживании и перевод записи на прием в COMPLETED
// выполняются в одной транзакции: либо оба изменения, либо ни одного
type UseCase struct {
	appointments AppointmentRepository
	treatments   TreatmentRepository
	menu         MenuCatalog
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointments AppointmentRepository,
	treatments TreatmentRepository,
	menu MenuCatalog,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointments: appointments,
		treatments:   treatments,
		menu:         menu,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет фиксацию обслуживания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompleteTreatment: appointmentID=%d, completed=%v", req.AppointmentID, req.CompletedMenuIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CompleteTreatment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем запись на прием
	appt, err := uc.appointments.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("CompleteTreatment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("CompleteTreatment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 3. Проверяем статус: из терминального завершить нельзя
	if !appt.CanBeCompleted() {
		uc.logger.Warn("CompleteTreatment: appointment id=%d in status %s cannot be completed", appt.ID, appt.Status)
		return nil, fmt.Errorf("%w: current status %s", ErrInvalidStatus, appt.Status)
	}

	// 4. Выполненные услуги - подмножество услуг записи
	if err := validateSubset(req.CompletedMenuIDs, appt.Services.MenuIDs); err != nil {
		uc.logger.Warn("CompleteTreatment: subset check failed for appointment id=%d: %v", appt.ID, err)
		return nil, err
	}

	// 5. Резолвим выполненные услуги в справочнике
	selection, err := uc.menu.Resolve(req.CompletedMenuIDs)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownMenuItem) || errors.Is(err, catalog.ErrEmptySelection) {
			uc.logger.Warn("CompleteTreatment: menu resolution failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrUnknownMenuItem, err)
		}
		return nil, fmt.Errorf("%w: failed to resolve menu: %v", ErrInternal, err)
	}

	record := &domain.TreatmentRecord{
		CustomerID:         appt.CustomerID,
		AppointmentID:      appt.ID,
		Date:               appt.Date,
		Services:           selection.ToTreatmentServices(),
		Products:           buildProducts(req.Products),
		NextRecommendation: req.NextRecommendation,
		Notes:              req.Notes,
	}

	// 6. Атомарно: создание записи об обслуживании + статус COMPLETED
	var created *domain.TreatmentRecord
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err = uc.treatments.Create(txCtx, record)
		if err != nil {
			if errors.Is(err, treatmentRepo.ErrAlreadyRecorded) {
				return ErrAlreadyCompleted
			}
			uc.logger.Error("CompleteTreatment: failed to create treatment record: %v", err)
			return fmt.Errorf("%w: failed to create treatment record: %v", ErrInternal, err)
		}

		if err := uc.appointments.UpdateStatus(txCtx, appt.ID, domain.StatusCompleted); err != nil {
			uc.logger.Error("CompleteTreatment: failed to update appointment status: %v", err)
			return fmt.Errorf("%w: failed to update appointment status: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CompleteTreatment: treatment id=%d recorded, appointment id=%d completed", created.ID, appt.ID)

	return &Response{
		TreatmentID:        created.ID,
		AppointmentID:      appt.ID,
		CustomerID:         created.CustomerID,
		Date:               created.Date,
		Services:           created.Services,
		Products:           created.Products,
		NextRecommendation: created.NextRecommendation,
		Notes:              created.Notes,
		AppointmentStatus:  string(domain.StatusCompleted),
		CreatedAt:          created.CreatedAt,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if len(req.CompletedMenuIDs) == 0 {
		return fmt.Errorf("%w: completedMenuIds must not be empty", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long (max %d)", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateSubset проверяет, что каждая выполненная услуга входила в состав записи
func validateSubset(completed, original []int64) error {
	allowed := make(map[int64]struct{}, len(original))
	for _, id := range original {
		allowed[id] = struct{}{}
	}
	for _, id := range completed {
		if _, ok := allowed[id]; !ok {
			return fmt.Errorf("%w: menu item %d was not part of the appointment", ErrNotASubset, id)
		}
	}
	return nil
}

func buildProducts(items []string) *domain.ProductList {
	if len(items) == 0 {
		return nil
	}
	return &domain.ProductList{Items: items}
}
