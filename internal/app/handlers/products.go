package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/storefront/internal/service"
)

// SearchProductsHandler обрабатывает GET /api/products?query=.
// Пустой запрос возвращает весь каталог.
func SearchProductsHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SearchProductsHandler"
		logger := log.With(slog.String("op", op))

		products, err := catalog.Search(r.Context(), r.URL.Query().Get("query"))
		if err != nil {
			writeError(w, logger, err)
			return
		}

		resp := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			resp = append(resp, newProductResponse(p))
		}
		writeJSON(w, logger, http.StatusOK, resp)
	}
}

// GetProductHandler обрабатывает GET /api/products/{id}
func GetProductHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetProductHandler"
		logger := log.With(slog.String("op", op))

		id, ok := idParam(w, r, logger, "id")
		if !ok {
			return
		}

		product, err := catalog.GetProduct(r.Context(), id)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, newProductResponse(product))
	}
}
