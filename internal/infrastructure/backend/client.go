package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/example/storefront-core/internal/model"
	"github.com/google/uuid"
)

// Client is the HTTP implementation of API against a fixed base path.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type addRequest struct {
	CartID      string `json:"cart_id,omitempty"`
	ProductID   int64  `json:"product_id"`
	VariationID int64  `json:"variation_id,omitempty"`
	Quantity    int    `json:"quantity"`
}

func (c *Client) AddToCart(ctx context.Context, token, guestCartID string, p model.SelectedProduct) (*CartResponse, error) {
	body := addRequest{ProductID: p.ProductID, VariationID: p.VariationID, Quantity: p.Quantity}
	var resp CartResponse
	if token != "" {
		if err := c.do(ctx, http.MethodPost, "/cart/add", token, body, &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	}

	// First guest add creates the cart; later adds target the existing one.
	path := "/cart/guest/add"
	if guestCartID == "" {
		path = "/cart/guest"
	}
	body.CartID = guestCartID
	if err := c.do(ctx, http.MethodPost, path, "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) LoadCart(ctx context.Context, token, guestCartID string) (*CartResponse, error) {
	var resp CartResponse
	if token != "" {
		if err := c.do(ctx, http.MethodGet, "/cart", token, nil, &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	}
	body := struct {
		CartID string `json:"cart_id"`
	}{guestCartID}
	if err := c.do(ctx, http.MethodPost, "/cart/guest/load", "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type updateRequest struct {
	CartID      string `json:"cart_id,omitempty"`
	ProductID   int64  `json:"product_id"`
	VariationID int64  `json:"variation_id,omitempty"`
	Quantity    int    `json:"quantity"`
}

func (c *Client) UpdateQuantity(ctx context.Context, token, guestCartID string, productID, variationID int64, quantity int) (*CartResponse, error) {
	body := updateRequest{ProductID: productID, VariationID: variationID, Quantity: quantity}
	var resp CartResponse
	if token != "" {
		if err := c.do(ctx, http.MethodPut, "/cart/update", token, body, &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	}
	body.CartID = guestCartID
	if err := c.do(ctx, http.MethodPost, "/cart/guest/update", "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type removeRequest struct {
	CartID      string `json:"cart_id,omitempty"`
	ProductID   int64  `json:"product_id"`
	VariationID int64  `json:"variation_id,omitempty"`
}

func (c *Client) RemoveItem(ctx context.Context, token, guestCartID string, productID, variationID int64) (*CartResponse, error) {
	body := removeRequest{ProductID: productID, VariationID: variationID}
	var resp CartResponse
	if token != "" {
		if err := c.do(ctx, http.MethodPost, "/cart/remove", token, body, &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	}
	body.CartID = guestCartID
	if err := c.do(ctx, http.MethodPost, "/cart/guest/remove", "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ClearCart(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/cart/clear", token, struct{}{}, nil)
}

func (c *Client) BulkAdd(ctx context.Context, token string, items []BulkItem) (*CartResponse, error) {
	body := struct {
		Items []BulkItem `json:"items"`
	}{items}
	var resp CartResponse
	if err := c.do(ctx, http.MethodPost, "/cart/bulk-add", token, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type couponRequest struct {
	CartID     string `json:"cart_id,omitempty"`
	CouponCode string `json:"coupon_code"`
	Action     string `json:"action"`
}

func (c *Client) CartCoupon(ctx context.Context, token, guestCartID, code, couponAction string) (*CartResponse, error) {
	body := couponRequest{CouponCode: code, Action: couponAction}
	var resp CartResponse
	if token != "" {
		if err := c.do(ctx, http.MethodPost, "/cart/coupon", token, body, &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	}
	body.CartID = guestCartID
	if err := c.do(ctx, http.MethodPost, "/cart/guest/coupon", "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListCoupons(ctx context.Context) ([]WireCoupon, error) {
	q := url.Values{}
	q.Set("status", "publish")
	q.Set("per_page", "100")
	var coupons []WireCoupon
	if err := c.do(ctx, http.MethodGet, "/coupons?"+q.Encode(), "", nil, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

func (c *Client) CreateOrder(ctx context.Context, token string, req model.OrderRequest) (*OrderCreated, error) {
	var resp OrderCreated
	if err := c.do(ctx, http.MethodPost, "/api/orders", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetOrder(ctx context.Context, token string, id int64, orderKey string) (*model.Order, error) {
	path := "/orders/" + strconv.FormatInt(id, 10)
	if orderKey != "" {
		path += "?key=" + url.QueryEscape(orderKey)
	}
	var resp model.Order
	if err := c.do(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do issues one request and decodes the response into out. Non-2xx responses
// are decoded into APIError so callers can extract the nested reason.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			log.Printf("[Backend] %s %s: undecodable error body (status %d, request %s)", method, path, resp.StatusCode, requestID)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
