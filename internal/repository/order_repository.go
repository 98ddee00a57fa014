package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rukaiya14/data-weaver-dashboard/internal/models"
	"github.com/rukaiya14/data-weaver-dashboard/pkg/database"
	"github.com/rukaiya14/data-weaver-dashboard/pkg/logging"
	"github.com/rukaiya14/data-weaver-dashboard/pkg/metrics"
)

// OrderRepository provides data access for order history
type OrderRepository interface {
	// ReplaceOrders supersedes the stored history wholesale with the
	// given batch, in one transaction.
	ReplaceOrders(ctx context.Context, records []models.OrderRecord) error

	// InsertOrdersBatch inserts records, upserting on date conflicts.
	InsertOrdersBatch(ctx context.Context, records []models.OrderRecord) error

	// GetOrders retrieves records with filtering and pagination.
	GetOrders(ctx context.Context, filter OrderFilter) ([]models.OrderRecord, int, error)

	// GetAllOrders retrieves the full history in ascending date order.
	GetAllOrders(ctx context.Context) ([]models.OrderRecord, error)

	// GetOrderByDate retrieves a single day's record.
	GetOrderByDate(ctx context.Context, date time.Time) (*models.OrderRecord, error)

	// HealthCheck verifies database connectivity.
	HealthCheck(ctx context.Context) error
}

// OrderFilter defines filters for querying order records
type OrderFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// NotFoundError indicates a requested resource does not exist
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// IsTransient returns false as not-found errors are permanent
func (e *NotFoundError) IsTransient() bool {
	return false
}

// orderRepository implements OrderRepository
type orderRepository struct {
	db      *database.PostgresDB
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *database.PostgresDB, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) OrderRepository {
	return &orderRepository{
		db:      db,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// ReplaceOrders supersedes the stored order history wholesale
func (r *orderRepository) ReplaceOrders(ctx context.Context, records []models.OrderRecord) error {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_history`); err != nil {
		return fmt.Errorf("failed to clear order history: %w", err)
	}

	if err := insertBatch(ctx, tx, records); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.metrics.IngestionRowsTotal.Add(float64(len(records)))
	r.logger.Info(ctx, "[REPO_REPLACE_ORDERS] Order history replaced", logging.Fields{
		"record_count": len(records),
	})

	return nil
}

// InsertOrdersBatch inserts multiple order records in a single transaction
func (r *orderRepository) InsertOrdersBatch(ctx context.Context, records []models.OrderRecord) error {
	if len(records) == 0 {
		return nil
	}

	timer := time.Now()
	defer func() {
		duration := time.Since(timer)
		r.metrics.IngestionBatchSize.Observe(float64(len(records)))
		r.logger.Debug(ctx, "[REPO_BATCH_INSERT] Batch insert completed", logging.Fields{
			"count":       len(records),
			"duration_ms": duration.Milliseconds(),
		})
	}()

	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertBatch(ctx, tx, records); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.metrics.IngestionRowsTotal.Add(float64(len(records)))

	return nil
}

func insertBatch(ctx context.Context, tx *sqlx.Tx, records []models.OrderRecord) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO order_history (order_date, orders, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (order_date) DO UPDATE SET
			orders = EXCLUDED.orders
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, record := range records {
		if _, err := stmt.ExecContext(ctx, record.Date, record.Orders, now); err != nil {
			return fmt.Errorf("failed to insert order record: %w", err)
		}
	}

	return nil
}

// GetOrders retrieves order records with filtering and pagination
func (r *orderRepository) GetOrders(ctx context.Context, filter OrderFilter) ([]models.OrderRecord, int, error) {
	query := `
		SELECT order_date, orders
		FROM order_history
		WHERE 1=1
	`
	args := []interface{}{}
	argNum := 1

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND order_date >= $%d", argNum)
		args = append(args, *filter.StartDate)
		argNum++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND order_date <= $%d", argNum)
		args = append(args, *filter.EndDate)
		argNum++
	}

	countQuery := "SELECT COUNT(*) FROM (" + query + ") AS count_query"
	var totalCount int
	if err := r.db.GetContext(ctx, "count_orders", &totalCount, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query += " ORDER BY order_date"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, filter.Limit, filter.Offset)

	var records []models.OrderRecord
	if err := r.db.SelectContext(ctx, "get_orders", &records, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to get orders: %w", err)
	}

	return records, totalCount, nil
}

// GetAllOrders retrieves the complete order history in date order
func (r *orderRepository) GetAllOrders(ctx context.Context) ([]models.OrderRecord, error) {
	query := `
		SELECT order_date, orders
		FROM order_history
		ORDER BY order_date
	`

	var records []models.OrderRecord
	if err := r.db.SelectContext(ctx, "get_all_orders", &records, query); err != nil {
		return nil, fmt.Errorf("failed to get order history: %w", err)
	}

	return records, nil
}

// GetOrderByDate retrieves a single day's order record
func (r *orderRepository) GetOrderByDate(ctx context.Context, date time.Time) (*models.OrderRecord, error) {
	query := `
		SELECT order_date, orders
		FROM order_history
		WHERE order_date = $1
	`

	var record models.OrderRecord
	err := r.db.GetContext(ctx, "get_order_by_date", &record, query, date)

	if err == sql.ErrNoRows {
		return nil, &NotFoundError{
			Resource: "order_record",
			ID:       date.Format("2006-01-02"),
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get order record: %w", err)
	}

	return &record, nil
}

// HealthCheck verifies database connectivity
func (r *orderRepository) HealthCheck(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}
