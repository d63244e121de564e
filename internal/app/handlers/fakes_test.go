package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/storefront/internal/service"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newRequest собирает запрос с телом, параметрами пути chi и userID в контексте (0 - без пользователя)
func newRequest(method, target, body string, userID int64, params map[string]string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}
	if userID != 0 {
		req = req.WithContext(context.WithValue(req.Context(), jwtmiddleware.UserIDKey, userID))
	}
	return req
}

type fakeAuthService struct {
	token string
	user  *models.User
	err   error
	in    service.RegisterInput
}

func (f *fakeAuthService) Register(ctx context.Context, in service.RegisterInput) (*models.User, error) {
	f.in = in
	return f.user, f.err
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (string, error) {
	return f.token, f.err
}

type fakeCatalogService struct {
	products []*models.Product
	err      error
	query    string
}

func (f *fakeCatalogService) Search(ctx context.Context, query string) ([]*models.Product, error) {
	f.query = query
	return f.products, f.err
}

func (f *fakeCatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, models.ErrNotFound
}

type fakeCartService struct {
	cart      *models.Cart
	err       error
	userID    int64
	productID int64
	itemID    int64
	quantity  int
}

func (f *fakeCartService) GetCart(ctx context.Context, userID int64) (*models.Cart, error) {
	f.userID = userID
	return f.cart, f.err
}

func (f *fakeCartService) AddProduct(ctx context.Context, userID, productID int64, quantity int) (*models.Cart, error) {
	f.userID, f.productID, f.quantity = userID, productID, quantity
	return f.cart, f.err
}

func (f *fakeCartService) RemoveProduct(ctx context.Context, userID, productID int64) (*models.Cart, error) {
	f.userID, f.productID = userID, productID
	return f.cart, f.err
}

func (f *fakeCartService) UpdateItemQuantity(ctx context.Context, userID, itemID int64, quantity int) (*models.Cart, error) {
	f.userID, f.itemID, f.quantity = userID, itemID, quantity
	return f.cart, f.err
}

type fakeCheckoutService struct {
	order  *models.Order
	err    error
	called bool
}

func (f *fakeCheckoutService) CreateOrderFromCart(ctx context.Context, userID int64) (*models.Order, error) {
	f.called = true
	return f.order, f.err
}

type fakeOrderService struct {
	orders []*models.Order
	err    error
}

func (f *fakeOrderService) ListOrders(ctx context.Context, userID int64) ([]*models.Order, error) {
	return f.orders, f.err
}

func (f *fakeOrderService) GetOrder(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, o := range f.orders {
		if o.ID == orderID && o.UserID == userID {
			return o, nil
		}
	}
	return nil, models.ErrNotFound
}

type fakeProfileService struct {
	user  *models.User
	err   error
	email string
}

func (f *fakeProfileService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return f.user, f.err
}

func (f *fakeProfileService) UpdateProfile(ctx context.Context, userID int64, name, email, address string) (*models.User, error) {
	f.email = email
	if f.err != nil {
		return nil, f.err
	}
	f.user.Name, f.user.Address = name, address
	return f.user, nil
}

type fakeAdminService struct {
	users []*models.User
	rows  []models.SalesRow
	err   error
}

func (f *fakeAdminService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return f.users, f.err
}

func (f *fakeAdminService) DeleteUser(ctx context.Context, userID int64) error {
	return f.err
}

func (f *fakeAdminService) SalesReport(ctx context.Context) ([]models.SalesRow, error) {
	return f.rows, f.err
}
