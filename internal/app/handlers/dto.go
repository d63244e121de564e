package handlers

import (
	"time"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/shopspring/decimal"
)

// Суммы отдаются строками с двумя знаками после запятой

type CartItemResponse struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	LineTotal   string `json:"line_total"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total string             `json:"total"`
}

func newCartResponse(cart *models.Cart) CartResponse {
	resp := CartResponse{
		Items: make([]CartItemResponse, 0, len(cart.Items)),
		Total: money(cart.TotalPrice()),
	}
	for _, item := range cart.Items {
		resp.Items = append(resp.Items, CartItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   money(item.UnitPrice),
			Quantity:    item.Quantity,
			LineTotal:   money(item.LineTotal()),
		})
	}
	return resp
}

type OrderItemResponse struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
	LineTotal   string `json:"line_total"`
}

type OrderResponse struct {
	ID        int64               `json:"id"`
	CreatedAt time.Time           `json:"created_at"`
	Items     []OrderItemResponse `json:"items"`
	Total     string              `json:"total"`
}

func newOrderResponse(order *models.Order) OrderResponse {
	resp := OrderResponse{
		ID:        order.ID,
		CreatedAt: order.CreatedAt,
		Items:     make([]OrderItemResponse, 0, len(order.Items)),
		Total:     money(order.TotalPrice()),
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       money(item.Price),
			LineTotal:   money(item.LineTotal()),
		})
	}
	return resp
}

type ProductResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Stock       int    `json:"stock"`
}

func newProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       money(p.Price),
		Stock:       p.Stock,
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
