package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/linemk/storefront/internal/domain/models"
)

// ReportStorage описывает выборки для отчётов администратора.
type ReportStorage interface {
	// GetSalesRows возвращает все позиции всех заказов в порядке оформления
	GetSalesRows(ctx context.Context) ([]models.SalesRow, error)
}

type reportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) ReportStorage {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetSalesRows(ctx context.Context) ([]models.SalesRow, error) {
	query := `
		SELECT o.id, o.created_at, o.user_id, oi.product_id, oi.quantity, oi.price
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		ORDER BY o.created_at, o.id, oi.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	sales := []models.SalesRow{}
	for rows.Next() {
		var (
			row    models.SalesRow
			userID sql.NullInt64
		)
		if err := rows.Scan(&row.OrderID, &row.OrderDate, &userID, &row.ProductID, &row.Quantity, &row.Price); err != nil {
			return nil, fmt.Errorf("failed to scan sales row: %w", err)
		}
		row.UserID = userID.Int64
		sales = append(sales, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sales, nil
}
