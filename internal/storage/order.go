package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/linemk/storefront/internal/domain/models"
)

var ErrOrderNotFound = fmt.Errorf("order %w", models.ErrNotFound)

// OrderStorage описывает методы для работы с заказами.
type OrderStorage interface {
	// CreateOrderTx вставляет заказ и его позиции, заполняет ID у order и у каждой позиции
	CreateOrderTx(ctx context.Context, tx *sql.Tx, order *models.Order) error
	// GetOrdersByUserID возвращает заказы пользователя с позициями, новые первыми
	GetOrdersByUserID(ctx context.Context, userID int64) ([]*models.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
}

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderStorage {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrderTx(ctx context.Context, tx *sql.Tx, order *models.Order) error {
	err := tx.QueryRowContext(ctx,
		"INSERT INTO orders (user_id, created_at) VALUES ($1, $2) RETURNING id",
		order.UserID, order.CreatedAt,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err := tx.QueryRowContext(ctx,
			"INSERT INTO order_items (order_id, product_id, quantity, price) VALUES ($1, $2, $3, $4) RETURNING id",
			order.ID, item.ProductID, item.Quantity, item.Price,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}
	return nil
}

// orderItemsQuery читает заказы вместе с позициями одним запросом, строки одного заказа идут подряд
const orderItemsQuery = `
		SELECT o.id, o.user_id, o.created_at, oi.id, oi.product_id, p.name, oi.quantity, oi.price
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON oi.product_id = p.id`

func (r *orderRepository) GetOrdersByUserID(ctx context.Context, userID int64) ([]*models.Order, error) {
	query := orderItemsQuery + `
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.id DESC, oi.id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	query := orderItemsQuery + `
		WHERE o.id = $1
		ORDER BY oi.id`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrOrderNotFound
	}
	return orders[0], nil
}

func scanOrders(rows *sql.Rows) ([]*models.Order, error) {
	orders := []*models.Order{}
	var current *models.Order
	for rows.Next() {
		var (
			orderID int64
			userID  sql.NullInt64
			item    models.OrderItem
			order   models.Order
		)
		if err := rows.Scan(&orderID, &userID, &order.CreatedAt, &item.ID, &item.ProductID, &item.ProductName, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if current == nil || current.ID != orderID {
			// user_id обнуляется при удалении пользователя, история продаж остаётся
			order.ID = orderID
			order.UserID = userID.Int64
			current = &order
			orders = append(orders, current)
		}
		item.OrderID = orderID
		current.Items = append(current.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
