package service_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sort"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/storage"
	"github.com/shopspring/decimal"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

var _ storage.UserStorage = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User)}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == user.Username {
			return nil, &models.DuplicateUserError{Field: "username"}
		}
		if u.Email != nil && user.Email != nil && *u.Email == *user.Email {
			return nil, &models.DuplicateUserError{Field: "email"}
		}
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) UpdateUserProfile(ctx context.Context, id int64, name string, email *string, address string) error {
	u, ok := f.users[id]
	if !ok {
		return storage.ErrUserNotFound
	}
	u.Name, u.Email, u.Address = name, email, address
	return nil
}

func (f *fakeUserRepo) ListUsers(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return storage.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

// fakeShop хранит товары, корзины и заказы в памяти.
// Транзакция игнорируется: begin/commit/rollback проверяются через sqlmock.
type fakeShop struct {
	products   map[int64]*models.Product
	carts      map[int64]*models.Cart // ключ: userID
	items      map[int64]*models.CartItem
	orders     []*models.Order
	nextCartID int64
	nextItemID int64
	nextOrder  int64
}

var (
	_ storage.ProductStorage = (*fakeShop)(nil)
	_ storage.CartStorage    = (*fakeShop)(nil)
	_ storage.OrderStorage   = (*fakeShop)(nil)
)

func newFakeShop() *fakeShop {
	return &fakeShop{
		products: make(map[int64]*models.Product),
		carts:    make(map[int64]*models.Cart),
		items:    make(map[int64]*models.CartItem),
	}
}

func (f *fakeShop) addProduct(id int64, name, price string, stock int) {
	f.products[id] = &models.Product{ID: id, Name: name, Price: decimal.RequireFromString(price), Stock: stock}
}

func (f *fakeShop) SearchProducts(ctx context.Context, query string) ([]*models.Product, error) {
	products := []*models.Product{}
	for _, p := range f.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (f *fakeShop) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, storage.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeShop) GetProductByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error) {
	return f.GetProductByID(ctx, id)
}

func (f *fakeShop) DecrementStockTx(ctx context.Context, tx *sql.Tx, productID int64, quantity int) (decimal.Decimal, error) {
	p, ok := f.products[productID]
	if !ok {
		return decimal.Zero, storage.ErrProductNotFound
	}
	if err := p.DecrementStock(quantity); err != nil {
		return decimal.Zero, err
	}
	return p.Price, nil
}

func (f *fakeShop) GetCartByUserID(ctx context.Context, userID int64) (*models.Cart, error) {
	c, ok := f.carts[userID]
	if !ok {
		return nil, storage.ErrCartNotFound
	}
	return &models.Cart{ID: c.ID, UserID: c.UserID}, nil
}

func (f *fakeShop) LockCartByUserIDTx(ctx context.Context, tx *sql.Tx, userID int64) (*models.Cart, error) {
	return f.GetCartByUserID(ctx, userID)
}

func (f *fakeShop) GetOrCreateCartTx(ctx context.Context, tx *sql.Tx, userID int64) (*models.Cart, error) {
	if _, ok := f.carts[userID]; !ok {
		f.nextCartID++
		f.carts[userID] = &models.Cart{ID: f.nextCartID, UserID: userID}
	}
	return f.GetCartByUserID(ctx, userID)
}

func (f *fakeShop) GetCartItems(ctx context.Context, cartID int64) ([]models.CartItem, error) {
	items := []models.CartItem{}
	for _, item := range f.items {
		if item.CartID != cartID {
			continue
		}
		cp := *item
		p := f.products[cp.ProductID]
		cp.ProductName, cp.UnitPrice = p.Name, p.Price
		items = append(items, cp)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (f *fakeShop) GetCartItemsTx(ctx context.Context, tx *sql.Tx, cartID int64) ([]models.CartItem, error) {
	return f.GetCartItems(ctx, cartID)
}

func (f *fakeShop) SaveCartItemTx(ctx context.Context, tx *sql.Tx, item models.CartItem) error {
	if item.Quantity <= 0 {
		return models.ErrInvalidQuantity
	}
	for _, existing := range f.items {
		if existing.CartID == item.CartID && existing.ProductID == item.ProductID {
			existing.Quantity = item.Quantity
			return nil
		}
	}
	f.nextItemID++
	item.ID = f.nextItemID
	f.items[item.ID] = &item
	return nil
}

func (f *fakeShop) DeleteCartItemTx(ctx context.Context, tx *sql.Tx, itemID int64) error {
	if _, ok := f.items[itemID]; !ok {
		return models.ErrCartItemNotFound
	}
	delete(f.items, itemID)
	return nil
}

func (f *fakeShop) ClearCartTx(ctx context.Context, tx *sql.Tx, cartID int64) error {
	for id, item := range f.items {
		if item.CartID == cartID {
			delete(f.items, id)
		}
	}
	return nil
}

func (f *fakeShop) CreateOrderTx(ctx context.Context, tx *sql.Tx, order *models.Order) error {
	f.nextOrder++
	order.ID = f.nextOrder
	for i := range order.Items {
		order.Items[i].ID = int64(i + 1)
		order.Items[i].OrderID = order.ID
	}
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeShop) GetOrdersByUserID(ctx context.Context, userID int64) ([]*models.Order, error) {
	orders := []*models.Order{}
	for i := len(f.orders) - 1; i >= 0; i-- {
		if f.orders[i].UserID == userID {
			orders = append(orders, f.orders[i])
		}
	}
	return orders, nil
}

func (f *fakeShop) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, storage.ErrOrderNotFound
}

type fakeReportRepo struct {
	rows []models.SalesRow
	err  error
}

var _ storage.ReportStorage = (*fakeReportRepo)(nil)

func (f *fakeReportRepo) GetSalesRows(ctx context.Context) ([]models.SalesRow, error) {
	return f.rows, f.err
}
