package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesRow - одна строка отчёта о продажах, по строке на каждую позицию заказа
type SalesRow struct {
	OrderID   int64
	OrderDate time.Time
	UserID    int64
	ProductID int64
	Quantity  int
	Price     decimal.Decimal
}

func (r SalesRow) LineTotal() decimal.Decimal {
	return r.Price.Mul(decimal.NewFromInt(int64(r.Quantity)))
}
