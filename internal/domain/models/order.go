package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order - оформленный заказ. После создания не меняется.
type Order struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"user_id"`
	CreatedAt time.Time   `json:"created_at"`
	Items     []OrderItem `json:"items"`
}

// OrderItem хранит количество и цену товара на момент покупки
type OrderItem struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"order_id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"` // заполняется через JOIN с таблицей products
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// LineTotal - стоимость позиции по зафиксированной цене
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// TotalPrice считает сумму заказа только по зафиксированным ценам, каталог не используется
func (o *Order) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// NewOrderFromCart строит заказ из снимка корзины: количество и UnitPrice каждой позиции
// копируются в OrderItem. Корзина при этом не меняется.
func NewOrderFromCart(cart *Cart, createdAt time.Time) (*Order, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	order := &Order{
		UserID:    cart.UserID,
		CreatedAt: createdAt,
		Items:     make([]OrderItem, 0, len(cart.Items)),
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.UnitPrice,
		})
	}
	return order, nil
}
