// Package client talks to the storefront REST API and converts wire records
// into domain products.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
)

// TransportError is a network failure or an unexpected server response.
// It is safe to retry manually.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type apiError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) ListProducts(ctx context.Context, q domain.ListQuery) ([]domain.Product, error) {
	params := url.Values{}
	if q.Q != "" {
		params.Set("q", q.Q)
	}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Sort != domain.SortDefault {
		params.Set("sort", string(q.Sort))
	}
	path := "/products"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var records []domain.ProductRecord
	if err := c.do(ctx, "list products", http.MethodGet, path, "", nil, &records, nil); err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(records))
	for _, r := range records {
		products = append(products, r.ToProduct())
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	var rec domain.ProductRecord
	if err := c.do(ctx, "get product", http.MethodGet, productPath(id), "", nil, &rec, domain.ErrProductNotFound); err != nil {
		return domain.Product{}, err
	}
	return rec.ToProduct(), nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, req domain.CreateProductRequest) (domain.Product, error) {
	var rec domain.ProductRecord
	if err := c.do(ctx, "create product", http.MethodPost, "/products", token, req, &rec, nil); err != nil {
		return domain.Product{}, err
	}
	return rec.ToProduct(), nil
}

func (c *Client) UpdateProduct(ctx context.Context, token string, id int64, req domain.UpdateProductRequest) (domain.Product, error) {
	var rec domain.ProductRecord
	if err := c.do(ctx, "update product", http.MethodPut, productPath(id), token, req, &rec, domain.ErrProductNotFound); err != nil {
		return domain.Product{}, err
	}
	return rec.ToProduct(), nil
}

func (c *Client) DeleteProduct(ctx context.Context, token string, id int64) error {
	var resp domain.DeleteProductResponse
	return c.do(ctx, "delete product", http.MethodDelete, productPath(id), token, nil, &resp, domain.ErrProductNotFound)
}

func (c *Client) Login(ctx context.Context, username, password string) (*domain.LoginResponse, error) {
	var resp domain.LoginResponse
	body := domain.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", "", body, &resp, nil); err != nil {
		return nil, err
	}
	return &resp, nil
}

func productPath(id int64) string {
	return "/products/" + strconv.FormatInt(id, 10)
}

// do sends one request. notFound is what a 404 means for this call; nil
// reports it as a TransportError.
func (c *Client) do(ctx context.Context, op, method, path, token string, body, out any, notFound error) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: op, Err: err}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode >= 300 {
		return statusError(op, resp.StatusCode, data, notFound)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// statusError maps API statuses back onto the domain error taxonomy.
func statusError(op string, status int, body []byte, notFound error) error {
	var e apiError
	_ = json.Unmarshal(body, &e)

	switch status {
	case http.StatusBadRequest:
		msg := e.Error
		if msg == "" {
			msg = "invalid request"
		}
		return domain.NewValidationError("", e.Code, msg)
	case http.StatusUnauthorized:
		if e.Code == "INVALID_CREDENTIALS" {
			return domain.ErrInvalidCredentials
		}
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		if notFound != nil {
			return notFound
		}
	case http.StatusConflict:
		return domain.ErrDuplicateSlug
	}
	msg := e.Error
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &TransportError{Op: op, StatusCode: status, Err: errors.New(msg)}
}
