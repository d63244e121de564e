package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/storage"
)

// CatalogService - поиск и просмотр товаров
type CatalogService interface {
	Search(ctx context.Context, query string) ([]*models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
}

type catalogService struct {
	log         *slog.Logger
	productRepo storage.ProductStorage
}

func NewCatalogService(log *slog.Logger, productRepo storage.ProductStorage) CatalogService {
	return &catalogService{
		log:         log,
		productRepo: productRepo,
	}
}

func (s *catalogService) Search(ctx context.Context, query string) ([]*models.Product, error) {
	const op = "service.CatalogService.Search"
	logger := s.log.With(slog.String("op", op), slog.String("query", query))

	products, err := s.productRepo.SearchProducts(ctx, query)
	if err != nil {
		logger.Error("failed to search products", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to search products: %w", op, err)
	}

	logger.Debug("products found", slog.Int("count", len(products)))
	return products, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	const op = "service.CatalogService.GetProduct"

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get product: %w", op, err)
	}
	return product, nil
}
