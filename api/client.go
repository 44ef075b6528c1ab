// Package api 는 주문 입력 화면이 쓰는 REST 엔드포인트 클라이언트입니다.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"lensorder/model"
)

// StatusError 는 2xx 가 아닌 응답입니다. Message 는 {error} 본문이 있으면 그 값입니다.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("api: HTTP %d: %s", e.StatusCode, e.Message)
}

// Client 는 재시도하지 않습니다. 실패는 호출자에게 그대로 돌려줍니다.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL 은 출력 화면 주소를 만들 때 씁니다.
func (c *Client) BaseURL() string { return c.baseURL }

// Catalog 는 GET /api/products 입니다.
func (c *Client) Catalog(ctx context.Context) (model.ProductCatalog, error) {
	var out model.ProductCatalog
	err := c.do(ctx, http.MethodGet, "/api/products", nil, &out)
	return out, err
}

// Stores 는 GET /api/stores?limit=N 입니다.
func (c *Client) Stores(ctx context.Context, limit int) ([]model.Store, error) {
	var out model.StoreList
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := c.do(ctx, http.MethodGet, "/api/stores?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Stores, nil
}

// DiopterGrid 는 GET /api/products/diopter-grid?productId=ID 입니다.
func (c *Client) DiopterGrid(ctx context.Context, productID int) (model.DiopterGridResponse, error) {
	var out model.DiopterGridResponse
	q := url.Values{"productId": {strconv.Itoa(productID)}}
	err := c.do(ctx, http.MethodGet, "/api/products/diopter-grid?"+q.Encode(), nil, &out)
	return out, err
}

// CreateOrder 는 POST /api/orders/create 입니다.
func (c *Client) CreateOrder(ctx context.Context, req model.CreateOrderRequest) (model.CreatedOrder, error) {
	var out model.CreateOrderResponse
	if err := c.do(ctx, http.MethodPost, "/api/orders/create", req, &out); err != nil {
		return model.CreatedOrder{}, err
	}
	return out.Order, nil
}

// PrintURL 은 주문서 출력 화면 주소입니다.
func (c *Client) PrintURL(orderID int) string {
	return fmt.Sprintf("%s/orders/%d/print", c.baseURL, orderID)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode %s: %w", path, err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("api: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return fmt.Errorf("api: read %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{StatusCode: resp.StatusCode}
		var er model.ErrorResponse
		if json.Unmarshal(data, &er) == nil {
			se.Message = er.Error
		}
		return se
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api: decode %s: %w", path, err)
	}
	return nil
}
