package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/storage"
)

// CartService управляет корзиной пользователя.
// Каждая операция - одна транзакция: блокировка корзины, изменение в памяти, запись, коммит.
type CartService interface {
	GetCart(ctx context.Context, userID int64) (*models.Cart, error)
	AddProduct(ctx context.Context, userID, productID int64, quantity int) (*models.Cart, error)
	RemoveProduct(ctx context.Context, userID, productID int64) (*models.Cart, error)
	UpdateItemQuantity(ctx context.Context, userID, itemID int64, quantity int) (*models.Cart, error)
}

type cartService struct {
	log         *slog.Logger
	db          *sql.DB
	cartRepo    storage.CartStorage
	productRepo storage.ProductStorage
}

func NewCartService(log *slog.Logger, db *sql.DB, cartRepo storage.CartStorage, productRepo storage.ProductStorage) CartService {
	return &cartService{
		log:         log,
		db:          db,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart возвращает корзину с позициями. Если корзины ещё нет - пустую, без создания строки в БД.
func (s *cartService) GetCart(ctx context.Context, userID int64) (*models.Cart, error) {
	const op = "service.CartService.GetCart"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))

	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrCartNotFound) {
			return emptyCart(userID), nil
		}
		logger.Error("failed to get cart", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get cart: %w", op, err)
	}

	cart.Items, err = s.cartRepo.GetCartItems(ctx, cart.ID)
	if err != nil {
		logger.Error("failed to get cart items", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get cart items: %w", op, err)
	}
	return cart, nil
}

// AddProduct добавляет товар, корзина создаётся при первом добавлении.
// Остаток на складе не проверяется.
func (s *cartService) AddProduct(ctx context.Context, userID, productID int64, quantity int) (*models.Cart, error) {
	const op = "service.CartService.AddProduct"
	logger := s.log.With(
		slog.String("op", op),
		slog.Int64("userID", userID),
		slog.Int64("productID", productID),
		slog.Int("quantity", quantity),
	)
	logger.Info("adding product to cart")

	if quantity <= 0 {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidQuantity)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	if _, err := s.productRepo.GetProductByIDTx(ctx, tx, productID); err != nil {
		rollback(logger, tx)
		logger.Warn("failed to get product", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get product: %w", op, err)
	}

	cart, err := s.lockCart(ctx, tx, userID, true)
	if err != nil {
		rollback(logger, tx)
		logger.Error("failed to get cart", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get cart: %w", op, err)
	}

	item, err := cart.AddProduct(productID, quantity)
	if err != nil {
		rollback(logger, tx)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cartRepo.SaveCartItemTx(ctx, tx, item); err != nil {
		rollback(logger, tx)
		logger.Error("failed to save cart item", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to save cart item: %w", op, err)
	}

	// перечитываем позиции, чтобы у новой позиции были id, название и цена
	cart.Items, err = s.cartRepo.GetCartItemsTx(ctx, tx, cart.ID)
	if err != nil {
		rollback(logger, tx)
		logger.Error("failed to reload cart items", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to reload cart items: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Info("product added to cart")
	return cart, nil
}

// RemoveProduct убирает товар из корзины. Отсутствие товара или самой корзины - не ошибка.
func (s *cartService) RemoveProduct(ctx context.Context, userID, productID int64) (*models.Cart, error) {
	const op = "service.CartService.RemoveProduct"
	logger := s.log.With(
		slog.String("op", op),
		slog.Int64("userID", userID),
		slog.Int64("productID", productID),
	)
	logger.Info("removing product from cart")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	cart, err := s.lockCart(ctx, tx, userID, false)
	if err != nil {
		rollback(logger, tx)
		if errors.Is(err, storage.ErrCartNotFound) {
			return emptyCart(userID), nil
		}
		logger.Error("failed to get cart", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get cart: %w", op, err)
	}

	if item, ok := cart.RemoveProduct(productID); ok {
		if err := s.cartRepo.DeleteCartItemTx(ctx, tx, item.ID); err != nil {
			rollback(logger, tx)
			logger.Error("failed to delete cart item", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to delete cart item: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}
	return cart, nil
}

// UpdateItemQuantity перезаписывает количество позиции, при quantity <= 0 позиция удаляется
func (s *cartService) UpdateItemQuantity(ctx context.Context, userID, itemID int64, quantity int) (*models.Cart, error) {
	const op = "service.CartService.UpdateItemQuantity"
	logger := s.log.With(
		slog.String("op", op),
		slog.Int64("userID", userID),
		slog.Int64("itemID", itemID),
		slog.Int("quantity", quantity),
	)
	logger.Info("updating cart item quantity")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	cart, err := s.lockCart(ctx, tx, userID, false)
	if err != nil {
		rollback(logger, tx)
		if errors.Is(err, storage.ErrCartNotFound) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrCartItemNotFound)
		}
		logger.Error("failed to get cart", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get cart: %w", op, err)
	}

	item, removed, err := cart.UpdateItemQuantity(itemID, quantity)
	if err != nil {
		rollback(logger, tx)
		logger.Warn("cart item not found")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if removed {
		err = s.cartRepo.DeleteCartItemTx(ctx, tx, item.ID)
	} else {
		err = s.cartRepo.SaveCartItemTx(ctx, tx, item)
	}
	if err != nil {
		rollback(logger, tx)
		logger.Error("failed to persist cart item", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to persist cart item: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}
	return cart, nil
}

// lockCart блокирует корзину пользователя и загружает её позиции.
// С create=true отсутствующая корзина создаётся.
func (s *cartService) lockCart(ctx context.Context, tx *sql.Tx, userID int64, create bool) (*models.Cart, error) {
	var (
		cart *models.Cart
		err  error
	)
	if create {
		cart, err = s.cartRepo.GetOrCreateCartTx(ctx, tx, userID)
	} else {
		cart, err = s.cartRepo.LockCartByUserIDTx(ctx, tx, userID)
	}
	if err != nil {
		return nil, err
	}

	cart.Items, err = s.cartRepo.GetCartItemsTx(ctx, tx, cart.ID)
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func emptyCart(userID int64) *models.Cart {
	return &models.Cart{UserID: userID, Items: []models.CartItem{}}
}
