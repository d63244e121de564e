package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/storefront/internal/service"
)

// CheckoutRequest - данные оплаты. Платёж не проводится, данные карты только проверяются и нигде не сохраняются.
type CheckoutRequest struct {
	Name       string `json:"name" validate:"required"`
	Address    string `json:"address" validate:"required"`
	CardType   string `json:"card_type" validate:"required,oneof=visa mc amex disc"`
	CardNumber string `json:"card_number" validate:"required,len=16,numeric"`
	ExpMonth   int    `json:"exp_month" validate:"required,min=1,max=12"`
	ExpYear    int    `json:"exp_year" validate:"required,min=2000,max=2100"`
	CVV        string `json:"cvv" validate:"required,len=3,numeric"`
}

// CheckoutHandler обрабатывает POST /api/checkout
func CheckoutHandler(log *slog.Logger, checkoutService service.CheckoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CheckoutHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := userIDFromRequest(w, r, logger)
		if !ok {
			return
		}

		var req CheckoutRequest
		if !decodeAndValidate(w, r, logger, &req) {
			return
		}

		order, err := checkoutService.CreateOrderFromCart(r.Context(), userID)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusCreated, newOrderResponse(order))
	}
}
