package treatment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/avelsk/NSD-SchedulingService/internal/domain"
	"github.com/avelsk/NSD-SchedulingService/pkg/dbmetrics"
	"github.com/avelsk/NSD-SchedulingService/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

// treatmentColumns полный набор колонок таблицы treatment_records
var treatmentColumns = []string{
	"id",
	"customer_id",
	"appointment_id",
	"treatment_date",
	"services",
	"products",
	"next_recommendation",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями об обслуживании
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей об обслуживании
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись об обслуживании
// Вызывается только внутри транзакции завершения приема -
// executor берется из контекста
func (r *Repository) Create(ctx context.Context, record *domain.TreatmentRecord) (*domain.TreatmentRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("treatment_records").
		Columns(
			"customer_id",
			"appointment_id",
			"treatment_date",
			"services",
			"products",
			"next_recommendation",
			"notes",
		).
		Values(
			record.CustomerID,
			record.AppointmentID,
			record.Date,
			record.Services,
			record.Products,
			record.NextRecommendation,
			record.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyRecorded
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time

	return record, nil
}

// GetByCustomerID получает историю обслуживания клиента, новые записи первыми
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64) ([]*domain.TreatmentRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(treatmentColumns...).
		From("treatment_records").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("treatment_date DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.TreatmentRecord, 0)
	for rows.Next() {
		record, err := scanTreatment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByCustomerID - scan row: %v", ErrScanRow, err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

// GetByAppointmentID получает запись об обслуживании по ID записи на прием
func (r *Repository) GetByAppointmentID(ctx context.Context, appointmentID int64) (*domain.TreatmentRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(treatmentColumns...).
		From("treatment_records").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointmentID - build select query: %v", ErrBuildQuery, err)
	}

	record, err := scanTreatment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTreatmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointmentID - scan treatment: %v", ErrScanRow, err)
	}

	return record, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTreatment(row rowScanner) (*domain.TreatmentRecord, error) {
	var record domain.TreatmentRecord
	var createdAt, updatedAt sql.NullTime
	var productsRaw []byte

	err := row.Scan(
		&record.ID,
		&record.CustomerID,
		&record.AppointmentID,
		&record.Date,
		&record.Services,
		&productsRaw,
		&record.NextRecommendation,
		&record.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(productsRaw) > 0 {
		var products domain.ProductList
		if err := json.Unmarshal(productsRaw, &products); err != nil {
			return nil, err
		}
		record.Products = &products
	}

	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time

	return &record, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	return false
}
