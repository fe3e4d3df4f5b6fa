package mocks

import (
	"context"
	"sync"

	"github.com/example/storefront-core/internal/infrastructure/backend"
	"github.com/example/storefront-core/internal/model"
)

// Call records one API invocation
type Call struct {
	Method       string
	Token        string
	GuestCartID  string
	ProductID    int64
	VariationID  int64
	Quantity     int
	Code         string
	CouponAction string
	Items        []backend.BulkItem
	Order        model.OrderRequest
	OrderID      int64
	OrderKey     string
}

// MockAPI is a mock implementation of backend.API for testing
type MockAPI struct {
	mu    sync.Mutex
	Calls []Call

	// Cart-bearing responses. CartCallback, when set, intercepts every
	// cart-bearing method so tests can control resolution order.
	CartResp     *backend.CartResponse
	CartErr      error
	CartCallback func(call Call) (*backend.CartResponse, error)

	ClearErr error

	Coupons   []backend.WireCoupon
	CouponErr error

	OrderResp *backend.OrderCreated
	OrderErr  error

	GetOrderResp *model.Order
	GetOrderErr  error
}

func NewMockAPI() *MockAPI {
	return &MockAPI{Calls: make([]Call, 0)}
}

// CallsFor returns the recorded calls for one method.
func (m *MockAPI) CallsFor(method string) []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Call
	for _, c := range m.Calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (m *MockAPI) record(c Call) Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, c)
	return c
}

func (m *MockAPI) cartResult(c Call) (*backend.CartResponse, error) {
	m.mu.Lock()
	cb, resp, err := m.CartCallback, m.CartResp, m.CartErr
	m.mu.Unlock()
	if cb != nil {
		return cb(c)
	}
	if err != nil {
		return nil, err
	}
	if resp != nil {
		return resp, nil
	}
	return &backend.CartResponse{}, nil
}

func (m *MockAPI) AddToCart(ctx context.Context, token, guestCartID string, p model.SelectedProduct) (*backend.CartResponse, error) {
	c := m.record(Call{Method: "AddToCart", Token: token, GuestCartID: guestCartID,
		ProductID: p.ProductID, VariationID: p.VariationID, Quantity: p.Quantity})
	return m.cartResult(c)
}

func (m *MockAPI) LoadCart(ctx context.Context, token, guestCartID string) (*backend.CartResponse, error) {
	c := m.record(Call{Method: "LoadCart", Token: token, GuestCartID: guestCartID})
	return m.cartResult(c)
}

func (m *MockAPI) UpdateQuantity(ctx context.Context, token, guestCartID string, productID, variationID int64, quantity int) (*backend.CartResponse, error) {
	c := m.record(Call{Method: "UpdateQuantity", Token: token, GuestCartID: guestCartID,
		ProductID: productID, VariationID: variationID, Quantity: quantity})
	return m.cartResult(c)
}

func (m *MockAPI) RemoveItem(ctx context.Context, token, guestCartID string, productID, variationID int64) (*backend.CartResponse, error) {
	c := m.record(Call{Method: "RemoveItem", Token: token, GuestCartID: guestCartID,
		ProductID: productID, VariationID: variationID})
	return m.cartResult(c)
}

func (m *MockAPI) ClearCart(ctx context.Context, token string) error {
	m.record(Call{Method: "ClearCart", Token: token})
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ClearErr
}

func (m *MockAPI) BulkAdd(ctx context.Context, token string, items []backend.BulkItem) (*backend.CartResponse, error) {
	c := m.record(Call{Method: "BulkAdd", Token: token, Items: items})
	return m.cartResult(c)
}

func (m *MockAPI) CartCoupon(ctx context.Context, token, guestCartID, code, couponAction string) (*backend.CartResponse, error) {
	c := m.record(Call{Method: "CartCoupon", Token: token, GuestCartID: guestCartID,
		Code: code, CouponAction: couponAction})
	return m.cartResult(c)
}

func (m *MockAPI) ListCoupons(ctx context.Context) ([]backend.WireCoupon, error) {
	m.record(Call{Method: "ListCoupons"})
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CouponErr != nil {
		return nil, m.CouponErr
	}
	return m.Coupons, nil
}

func (m *MockAPI) CreateOrder(ctx context.Context, token string, req model.OrderRequest) (*backend.OrderCreated, error) {
	m.record(Call{Method: "CreateOrder", Token: token, Order: req})
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.OrderErr != nil {
		return nil, m.OrderErr
	}
	if m.OrderResp != nil {
		return m.OrderResp, nil
	}
	return &backend.OrderCreated{ID: 1}, nil
}

func (m *MockAPI) GetOrder(ctx context.Context, token string, id int64, orderKey string) (*model.Order, error) {
	m.record(Call{Method: "GetOrder", Token: token, OrderID: id, OrderKey: orderKey})
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetOrderErr != nil {
		return nil, m.GetOrderErr
	}
	if m.GetOrderResp != nil {
		return m.GetOrderResp, nil
	}
	return &model.Order{ID: id}, nil
}
