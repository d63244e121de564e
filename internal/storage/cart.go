package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/linemk/storefront/internal/domain/models"
)

// ErrCartNotFound - у пользователя ещё нет корзины
var ErrCartNotFound = fmt.Errorf("cart %w", models.ErrNotFound)

// CartStorage описывает методы для работы с корзинами и их позициями.
// Все изменения выполняются только внутри транзакции, которой управляет сервис.
type CartStorage interface {
	// GetCartByUserID читает корзину без блокировки
	GetCartByUserID(ctx context.Context, userID int64) (*models.Cart, error)
	// LockCartByUserIDTx читает и блокирует строку корзины (FOR UPDATE NOWAIT)
	LockCartByUserIDTx(ctx context.Context, tx *sql.Tx, userID int64) (*models.Cart, error)
	// GetOrCreateCartTx создаёт корзину, если её нет, и блокирует её строку
	GetOrCreateCartTx(ctx context.Context, tx *sql.Tx, userID int64) (*models.Cart, error)
	GetCartItems(ctx context.Context, cartID int64) ([]models.CartItem, error)
	GetCartItemsTx(ctx context.Context, tx *sql.Tx, cartID int64) ([]models.CartItem, error)
	// SaveCartItemTx вставляет позицию или перезаписывает количество существующей
	SaveCartItemTx(ctx context.Context, tx *sql.Tx, item models.CartItem) error
	DeleteCartItemTx(ctx context.Context, tx *sql.Tx, itemID int64) error
	ClearCartTx(ctx context.Context, tx *sql.Tx, cartID int64) error
}

type cartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) CartStorage {
	return &cartRepository{db: db}
}

func (r *cartRepository) GetCartByUserID(ctx context.Context, userID int64) (*models.Cart, error) {
	cart := &models.Cart{}
	row := r.db.QueryRowContext(ctx, "SELECT id, user_id FROM carts WHERE user_id = $1", userID)
	if err := row.Scan(&cart.ID, &cart.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return cart, nil
}

func (r *cartRepository) LockCartByUserIDTx(ctx context.Context, tx *sql.Tx, userID int64) (*models.Cart, error) {
	cart := &models.Cart{}
	row := tx.QueryRowContext(ctx, "SELECT id, user_id FROM carts WHERE user_id = $1 FOR UPDATE NOWAIT", userID)
	if err := row.Scan(&cart.ID, &cart.UserID); err != nil {
		if isLockNotAvailable(err) {
			return nil, fmt.Errorf("%w: %v", ErrResourceLocked, err)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return cart, nil
}

func (r *cartRepository) GetOrCreateCartTx(ctx context.Context, tx *sql.Tx, userID int64) (*models.Cart, error) {
	// корзина одна на пользователя (UNIQUE user_id), параллельная вставка не падает
	_, err := tx.ExecContext(ctx, "INSERT INTO carts (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING", userID)
	if err != nil {
		if code, _, ok := pqCode(err); ok && code == pqForeignKeyViolation {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return r.LockCartByUserIDTx(ctx, tx, userID)
}

func (r *cartRepository) GetCartItems(ctx context.Context, cartID int64) ([]models.CartItem, error) {
	return getCartItems(ctx, r.db, cartID)
}

func (r *cartRepository) GetCartItemsTx(ctx context.Context, tx *sql.Tx, cartID int64) ([]models.CartItem, error) {
	return getCartItems(ctx, tx, cartID)
}

// getCartItems читает позиции вместе с названием и текущей ценой товара
func getCartItems(ctx context.Context, q querier, cartID int64) ([]models.CartItem, error) {
	query := `
		SELECT ci.id, ci.cart_id, ci.product_id, p.name, p.price, ci.quantity
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.cart_id = $1
		ORDER BY ci.id`
	rows, err := q.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.ProductName, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cartRepository) SaveCartItemTx(ctx context.Context, tx *sql.Tx, item models.CartItem) error {
	if item.Quantity <= 0 {
		return models.ErrInvalidQuantity
	}
	query := `INSERT INTO cart_items (cart_id, product_id, quantity)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity`
	if _, err := tx.ExecContext(ctx, query, item.CartID, item.ProductID, item.Quantity); err != nil {
		if code, _, ok := pqCode(err); ok && code == pqForeignKeyViolation {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to save cart item: %w", err)
	}
	return nil
}

func (r *cartRepository) DeleteCartItemTx(ctx context.Context, tx *sql.Tx, itemID int64) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM cart_items WHERE id = $1", itemID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrCartItemNotFound
	}
	return nil
}

func (r *cartRepository) ClearCartTx(ctx context.Context, tx *sql.Tx, cartID int64) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM cart_items WHERE cart_id = $1", cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
