package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/storage"
)

// CheckoutService оформляет заказ из корзины
type CheckoutService interface {
	CreateOrderFromCart(ctx context.Context, userID int64) (*models.Order, error)
}

type checkoutService struct {
	log         *slog.Logger
	db          *sql.DB
	cartRepo    storage.CartStorage
	productRepo storage.ProductStorage
	orderRepo   storage.OrderStorage
	now         func() time.Time
}

func NewCheckoutService(log *slog.Logger, db *sql.DB, cartRepo storage.CartStorage, productRepo storage.ProductStorage, orderRepo storage.OrderStorage) CheckoutService {
	return &checkoutService{
		log:         log,
		db:          db,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateOrderFromCart списывает остатки, создаёт заказ с зафиксированными ценами и очищает корзину.
// Всё выполняется в одной транзакции: при любой ошибке откатываются и остатки, и заказ, корзина не меняется.
func (s *checkoutService) CreateOrderFromCart(ctx context.Context, userID int64) (*models.Order, error) {
	const op = "service.CheckoutService.CreateOrderFromCart"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))
	logger.Info("starting checkout transaction")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	cart, err := s.cartRepo.LockCartByUserIDTx(ctx, tx, userID)
	if err != nil {
		rollback(logger, tx)
		if errors.Is(err, storage.ErrCartNotFound) {
			logger.Warn("cart does not exist")
			return nil, fmt.Errorf("%s: %w", op, models.ErrEmptyCart)
		}
		logger.Error("failed to lock cart", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to lock cart: %w", op, err)
	}

	cart.Items, err = s.cartRepo.GetCartItemsTx(ctx, tx, cart.ID)
	if err != nil {
		rollback(logger, tx)
		logger.Error("failed to get cart items", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get cart items: %w", op, err)
	}
	if cart.IsEmpty() {
		rollback(logger, tx)
		logger.Warn("cart is empty")
		return nil, fmt.Errorf("%s: %w", op, models.ErrEmptyCart)
	}

	// строки products блокируются в порядке id, чтобы параллельные заказы не взаимоблокировались
	sort.Slice(cart.Items, func(i, j int) bool {
		return cart.Items[i].ProductID < cart.Items[j].ProductID
	})

	for i := range cart.Items {
		item := &cart.Items[i]
		price, err := s.productRepo.DecrementStockTx(ctx, tx, item.ProductID, item.Quantity)
		if err != nil {
			rollback(logger, tx)
			var stockErr *models.InsufficientStockError
			if errors.As(err, &stockErr) {
				logger.Warn("insufficient stock",
					slog.Int64("productID", stockErr.ProductID),
					slog.Int("requested", stockErr.Requested),
					slog.Int("available", stockErr.Available),
				)
			} else {
				logger.Error("failed to decrement stock", slog.Any("error", err))
			}
			return nil, fmt.Errorf("%s: failed to decrement stock: %w", op, err)
		}
		// цена, прочитанная под блокировкой строки, фиксируется в заказе
		item.UnitPrice = price
	}

	order, err := models.NewOrderFromCart(cart, s.now())
	if err != nil {
		rollback(logger, tx)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.orderRepo.CreateOrderTx(ctx, tx, order); err != nil {
		rollback(logger, tx)
		logger.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create order: %w", op, err)
	}

	cart.Clear()
	if err := s.cartRepo.ClearCartTx(ctx, tx, cart.ID); err != nil {
		rollback(logger, tx)
		logger.Error("failed to clear cart", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to clear cart: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Info("order created",
		slog.Int64("orderID", order.ID),
		slog.String("total", order.TotalPrice().StringFixed(2)),
	)
	return order, nil
}
