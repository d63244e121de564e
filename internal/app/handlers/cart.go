package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/storefront/internal/service"
)

// AddToCartRequest - quantity по умолчанию 1
type AddToCartRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  *int  `json:"quantity" validate:"omitnil,gt=0"`
}

// UpdateCartItemRequest - quantity <= 0 удаляет позицию
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// GetCartHandler обрабатывает GET /api/cart
func GetCartHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetCartHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := userIDFromRequest(w, r, logger)
		if !ok {
			return
		}

		cart, err := cartService.GetCart(r.Context(), userID)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, newCartResponse(cart))
	}
}

// AddToCartHandler обрабатывает POST /api/cart/items
func AddToCartHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AddToCartHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := userIDFromRequest(w, r, logger)
		if !ok {
			return
		}

		var req AddToCartRequest
		if !decodeAndValidate(w, r, logger, &req) {
			return
		}
		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}

		cart, err := cartService.AddProduct(r.Context(), userID, req.ProductID, quantity)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, newCartResponse(cart))
	}
}

// UpdateCartItemHandler обрабатывает PUT /api/cart/items/{itemID}
func UpdateCartItemHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateCartItemHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := userIDFromRequest(w, r, logger)
		if !ok {
			return
		}
		itemID, ok := idParam(w, r, logger, "itemID")
		if !ok {
			return
		}

		var req UpdateCartItemRequest
		if !decodeAndValidate(w, r, logger, &req) {
			return
		}

		cart, err := cartService.UpdateItemQuantity(r.Context(), userID, itemID, *req.Quantity)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, newCartResponse(cart))
	}
}

// RemoveFromCartHandler обрабатывает DELETE /api/cart/products/{productID}
func RemoveFromCartHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RemoveFromCartHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := userIDFromRequest(w, r, logger)
		if !ok {
			return
		}
		productID, ok := idParam(w, r, logger, "productID")
		if !ok {
			return
		}

		cart, err := cartService.RemoveProduct(r.Context(), userID, productID)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, newCartResponse(cart))
	}
}
