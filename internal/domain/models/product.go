package models

import "github.com/shopspring/decimal"

// Product представляет товар каталога вместе с остатком на складе
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// DecrementStock списывает quantity единиц со склада.
// При нехватке остаток не меняется и возвращается InsufficientStockError.
func (p *Product) DecrementStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > p.Stock {
		return &InsufficientStockError{
			ProductID:   p.ID,
			ProductName: p.Name,
			Requested:   quantity,
			Available:   p.Stock,
		}
	}
	p.Stock -= quantity
	return nil
}
