package models

import "github.com/shopspring/decimal"

// Cart - корзина пользователя. Методы корзины ничего не сохраняют:
// они меняют состояние в памяти и возвращают затронутую позицию,
// а запись в БД делает сервис внутри одной транзакции.
type Cart struct {
	ID     int64      `json:"id"`
	UserID int64      `json:"user_id"`
	Items  []CartItem `json:"items"`
}

// CartItem - позиция корзины, на каждый товар не больше одной
type CartItem struct {
	ID          int64           `json:"id"`
	CartID      int64           `json:"cart_id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"` // заполняется через JOIN с таблицей products
	UnitPrice   decimal.Decimal `json:"unit_price"`   // текущая цена товара, не фиксируется
	Quantity    int             `json:"quantity"`
}

// LineTotal - стоимость позиции по текущей цене
func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// IsEmpty сообщает, есть ли в корзине позиции
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// AddProduct добавляет товар в корзину. Если товар уже есть, количество суммируется.
// Остаток на складе здесь не проверяется: единственная точка проверки - оформление заказа.
// Новая позиция возвращается с нулевым ID.
func (c *Cart) AddProduct(productID int64, quantity int) (CartItem, error) {
	if quantity <= 0 {
		return CartItem{}, ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			return c.Items[i], nil
		}
	}
	item := CartItem{
		CartID:    c.ID,
		ProductID: productID,
		Quantity:  quantity,
	}
	c.Items = append(c.Items, item)
	return item, nil
}

// RemoveProduct убирает позицию с товаром productID. Если товара нет - ничего не делает.
func (c *Cart) RemoveProduct(productID int64) (CartItem, bool) {
	for i, item := range c.Items {
		if item.ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return item, true
		}
	}
	return CartItem{}, false
}

// UpdateItemQuantity перезаписывает количество позиции itemID.
// При quantity <= 0 позиция удаляется, второй результат тогда true.
func (c *Cart) UpdateItemQuantity(itemID int64, quantity int) (CartItem, bool, error) {
	for i, item := range c.Items {
		if item.ID != itemID {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return item, true, nil
		}
		c.Items[i].Quantity = quantity
		return c.Items[i], false, nil
	}
	return CartItem{}, false, ErrCartItemNotFound
}

// TotalPrice считает сумму корзины по текущим ценам товаров
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Clear очищает корзину и возвращает удалённые позиции
func (c *Cart) Clear() []CartItem {
	removed := c.Items
	c.Items = []CartItem{}
	return removed
}
