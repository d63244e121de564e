package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/shopspring/decimal"
)

// ProductStorage описывает методы для работы с каталогом и остатками
type ProductStorage interface {
	// SearchProducts ищет по вхождению в название или описание без учёта регистра, пустой запрос - весь каталог
	SearchProducts(ctx context.Context, query string) ([]*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	// GetProductByIDTx читает товар внутри транзакции
	GetProductByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error)
	// DecrementStockTx списывает остаток условным UPDATE и возвращает текущую цену товара
	DecrementStockTx(ctx context.Context, tx *sql.Tx, productID int64, quantity int) (decimal.Decimal, error)
}

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ProductStorage {
	return &productRepository{db: db}
}

var ErrProductNotFound = fmt.Errorf("product %w", models.ErrNotFound)

const productColumns = "id, name, description, price, stock"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *productRepository) SearchProducts(ctx context.Context, query string) ([]*models.Product, error) {
	query = strings.TrimSpace(query)

	var (
		rows *sql.Rows
		err  error
	)
	if query == "" {
		rows, err = r.db.QueryContext(ctx, "SELECT "+productColumns+" FROM products ORDER BY id")
	} else {
		pattern := "%" + likeEscaper.Replace(query) + "%"
		rows, err = r.db.QueryContext(ctx,
			"SELECT "+productColumns+" FROM products WHERE name ILIKE $1 OR description ILIKE $1 ORDER BY id",
			pattern,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		p := &models.Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	return getProduct(ctx, r.db, id)
}

func (r *productRepository) GetProductByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error) {
	return getProduct(ctx, tx, id)
}

func getProduct(ctx context.Context, q querier, id int64) (*models.Product, error) {
	p := &models.Product{}
	row := q.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// DecrementStockTx списывает quantity единиц одним условным UPDATE, без чтения перед записью.
// Если ни одна строка не обновилась, остатка не хватает (или товара нет): перечитываем товар
// в той же транзакции, чтобы вернуть InsufficientStockError с доступным количеством.
func (r *productRepository) DecrementStockTx(ctx context.Context, tx *sql.Tx, productID int64, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, models.ErrInvalidQuantity
	}

	var price decimal.Decimal
	err := tx.QueryRowContext(ctx,
		"UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1 RETURNING price",
		quantity, productID,
	).Scan(&price)
	if err == nil {
		return price, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		if isLockNotAvailable(err) {
			return decimal.Zero, fmt.Errorf("%w: %v", ErrResourceLocked, err)
		}
		return decimal.Zero, fmt.Errorf("failed to decrement stock: %w", err)
	}

	product, err := getProduct(ctx, tx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := product.DecrementStock(quantity); err != nil {
		return decimal.Zero, err
	}
	return decimal.Zero, fmt.Errorf("stock of product %d changed concurrently: %w", productID, ErrResourceLocked)
}
