package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", srv.Client())
}

func TestListProducts_DecodesRecords(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "tops", r.URL.Query().Get("category"))
		assert.Equal(t, "price_desc", r.URL.Query().Get("sort"))
		_, _ = io.WriteString(w, `[{"id":3,"name":"Tee","slug":"tee","priceCents":2800,"category":"tops","colors":"[\"black\"]","sizes":null,"featured":true}]`)
	})

	products, err := c.ListProducts(context.Background(), domain.ListQuery{Category: "tops", Sort: domain.SortPriceDesc})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, domain.Product{
		ID:       3,
		Name:     "Tee",
		Slug:     "tee",
		Price:    2800,
		Category: domain.CategoryTops,
		Colors:   []string{"black"},
		Featured: true,
	}, products[0])
}

func TestListProducts_DecodeFailure(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"not":"an array"}`)
	})

	_, err := c.ListProducts(context.Background(), domain.ListQuery{})
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "list products", te.Op)
}

func TestCreateProduct_SendsBearerAndBody(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var req domain.CreateProductRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) || !assert.NotNil(t, req.PriceCents) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, "tee", req.Slug)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(domain.ProductRecord{ID: 9, Slug: req.Slug, PriceCents: *req.PriceCents})
	})

	price := int64(2999)
	p, err := c.CreateProduct(context.Background(), "tok", domain.CreateProductRequest{Slug: "tee", PriceCents: &price})
	require.NoError(t, err)
	assert.Equal(t, int64(9), p.ID)
	assert.Equal(t, int64(2999), p.Price)
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{http.StatusBadRequest, `{"error":"Name is required","code":"MISSING_REQUIRED_FIELD"}`, func(t *testing.T, err error) {
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "MISSING_REQUIRED_FIELD", ve.Code)
			assert.Equal(t, "Name is required", ve.Msg)
		}},
		{http.StatusUnauthorized, `{"code":"UNAUTHORIZED"}`, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		}},
		{http.StatusUnauthorized, `{"code":"INVALID_CREDENTIALS"}`, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		}},
		{http.StatusNotFound, ``, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, domain.ErrProductNotFound)
		}},
		{http.StatusConflict, `{"code":"DUPLICATE_SLUG"}`, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, domain.ErrDuplicateSlug)
		}},
		{http.StatusInternalServerError, `{"error":"Internal server error"}`, func(t *testing.T, err error) {
			var te *TransportError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, http.StatusInternalServerError, te.StatusCode)
		}},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			c := serve(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})
			tc.check(t, c.DeleteProduct(context.Background(), "tok", 1))
		})
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := New(srv.URL, nil).GetProduct(context.Background(), 1)
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Zero(t, te.StatusCode)
}

func TestLogin(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"token":"abc","user":{"id":1,"username":"admin","role":"admin"}}`)
	})

	resp, err := c.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Token)
	assert.Equal(t, domain.RoleAdmin, resp.User.Role)
}

func TestNotFound_OnlyProductCallsMeanMissingProduct(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)
	c := New(srv.URL, srv.Client())
	ctx := context.Background()

	_, err := c.Login(ctx, "admin", "admin123")
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusNotFound, te.StatusCode)
	assert.NotErrorIs(t, err, domain.ErrProductNotFound)

	_, err = c.ListProducts(ctx, domain.ListQuery{})
	require.ErrorAs(t, err, &te)

	_, err = c.CreateProduct(ctx, "tok", domain.CreateProductRequest{Name: "x"})
	require.ErrorAs(t, err, &te)

	_, err = c.GetProduct(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	_, err = c.UpdateProduct(ctx, "tok", 1, domain.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
