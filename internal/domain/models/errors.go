package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound - базовая ошибка для отсутствующих сущностей, конкретные ошибки оборачивают её
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart - оформление заказа из пустой или несуществующей корзины
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidQuantity - количество товара должно быть положительным
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrCartItemNotFound - позиции нет в корзине пользователя
	ErrCartItemNotFound = fmt.Errorf("cart item %w", ErrNotFound)
)

// InsufficientStockError возвращается, когда запрошено больше товара, чем есть на складе
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q (product %d): requested %d, available %d",
		e.ProductName, e.ProductID, e.Requested, e.Available)
}

// DuplicateUserError - нарушение уникальности username или email
type DuplicateUserError struct {
	Field string
}

func (e *DuplicateUserError) Error() string {
	return fmt.Sprintf("user with this %s already exists", e.Field)
}
