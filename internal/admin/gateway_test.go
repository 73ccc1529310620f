package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/auth"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/catalog"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRemote struct {
	issuer *auth.TokenIssuer
	users  map[string]domain.User

	products map[int64]domain.Product
	nextID   int64
	calls    int
	tokens   []string
	lastReq  domain.UpdateProductRequest
}

func newFakeRemote(t *testing.T) *fakeRemote {
	t.Helper()
	return &fakeRemote{
		issuer: auth.NewTokenIssuer("test-secret", time.Hour),
		users: map[string]domain.User{
			"admin": {ID: 1, Username: "admin", Role: domain.RoleAdmin},
			"shop":  {ID: 2, Username: "shop", Role: domain.RoleCustomer},
		},
		products: map[int64]domain.Product{
			1: {ID: 1, Name: "Tee", Slug: "tee", Price: 2800, Category: domain.CategoryTops},
		},
		nextID: 2,
	}
}

func (f *fakeRemote) Login(_ context.Context, username, password string) (*domain.LoginResponse, error) {
	u, ok := f.users[username]
	if !ok || password != "pw" {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := f.issuer.Issue(u)
	if err != nil {
		return nil, err
	}
	return &domain.LoginResponse{Token: token, User: domain.UserView{ID: u.ID, Username: u.Username, Role: u.Role}}, nil
}

func (f *fakeRemote) CreateProduct(_ context.Context, token string, req domain.CreateProductRequest) (domain.Product, error) {
	f.calls++
	f.tokens = append(f.tokens, token)
	for _, p := range f.products {
		if p.Slug == req.Slug {
			return domain.Product{}, domain.ErrDuplicateSlug
		}
	}
	rec := domain.ProductRecord{
		ID:          f.nextID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		PriceCents:  *req.PriceCents,
		Image:       req.Image,
		Category:    req.Category,
		Colors:      req.Colors,
		Sizes:       req.Sizes,
		Featured:    req.Featured,
	}
	f.nextID++
	p := rec.ToProduct()
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeRemote) UpdateProduct(_ context.Context, token string, id int64, req domain.UpdateProductRequest) (domain.Product, error) {
	f.calls++
	f.tokens = append(f.tokens, token)
	f.lastReq = req
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	rec := domain.NewProductRecord(p)
	req.ApplyTo(&rec)
	p = rec.ToProduct()
	f.products[id] = p
	return p, nil
}

func (f *fakeRemote) DeleteProduct(_ context.Context, token string, id int64) error {
	f.calls++
	f.tokens = append(f.tokens, token)
	if _, ok := f.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeRemote) ListProducts(_ context.Context, _ domain.ListQuery) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(f.products))
	for id := int64(1); id < f.nextID; id++ {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func jacketForm() domain.ProductForm {
	return domain.ProductForm{
		Name:        "Rain Jacket",
		Description: "Keeps you dry",
		Price:       "98.00",
		Image:       "https://example.com/jacket.jpg",
		Category:    "outerwear",
		Colors:      "black, olive",
		Sizes:       "S,M,L",
	}
}

func loggedIn(t *testing.T, remote *fakeRemote) *Gateway {
	t.Helper()
	g := NewGateway(remote, zap.NewNop())
	_, err := g.Login(context.Background(), "admin", "pw")
	require.NoError(t, err)
	return g
}

func TestLogin(t *testing.T) {
	remote := newFakeRemote(t)
	g := NewGateway(remote, zap.NewNop())

	_, err := g.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, ok := g.Credential()
	assert.False(t, ok)

	cred, err := g.Login(context.Background(), "admin", "pw")
	require.NoError(t, err)
	assert.Equal(t, "admin", cred.User.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), cred.ExpiresAt, 5*time.Second)

	g.Logout()
	_, ok = g.Credential()
	assert.False(t, ok)
}

func TestLogin_RequiresFields(t *testing.T) {
	g := NewGateway(newFakeRemote(t), zap.NewNop())
	_, err := g.Login(context.Background(), " ", "pw")
	assert.True(t, domain.IsValidation(err))
}

func TestMutations_RequireAdminCredential(t *testing.T) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		remote := newFakeRemote(t)
		g := NewGateway(remote, zap.NewNop())

		_, err := g.Create(ctx, jacketForm())
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		_, err = g.Update(ctx, 1, domain.ProductPatch{Name: domain.Opt("x")})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.ErrorIs(t, g.Delete(ctx, 1), domain.ErrUnauthorized)
		assert.Zero(t, remote.calls)
	})

	t.Run("customer", func(t *testing.T) {
		remote := newFakeRemote(t)
		g := NewGateway(remote, zap.NewNop())
		_, err := g.Login(ctx, "shop", "pw")
		require.NoError(t, err)

		assert.ErrorIs(t, g.Delete(ctx, 1), domain.ErrUnauthorized)
		assert.Zero(t, remote.calls)
	})

	t.Run("expired", func(t *testing.T) {
		remote := newFakeRemote(t)
		g := loggedIn(t, remote)
		g.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

		_, err := g.Create(ctx, jacketForm())
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Zero(t, remote.calls)
	})
}

func TestCreate(t *testing.T) {
	remote := newFakeRemote(t)
	g := loggedIn(t, remote)

	p, err := g.Create(context.Background(), jacketForm())
	require.NoError(t, err)

	assert.Equal(t, "rain-jacket", p.Slug)
	assert.Equal(t, int64(9800), p.Price)
	assert.Equal(t, []string{"black", "olive"}, p.Colors)
	assert.Equal(t, []string{"S", "M", "L"}, p.Sizes)
	cred, _ := g.Credential()
	assert.Equal(t, []string{cred.Token}, remote.tokens)
}

func TestCreate_ValidatesBeforeSubmitting(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.ProductForm)
		code   string
	}{
		{"missing name", func(f *domain.ProductForm) { f.Name = "" }, domain.CodeMissingFields},
		{"missing image", func(f *domain.ProductForm) { f.Image = " " }, domain.CodeMissingFields},
		{"bad category", func(f *domain.ProductForm) { f.Category = "hats" }, domain.CodeInvalidCategory},
		{"bad price", func(f *domain.ProductForm) { f.Price = "abc" }, domain.CodeInvalidPrice},
		{"negative price", func(f *domain.ProductForm) { f.Price = "-1" }, domain.CodeInvalidPrice},
		{"empty slug", func(f *domain.ProductForm) { f.Slug = "!!!" }, domain.CodeInvalidField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := newFakeRemote(t)
			g := loggedIn(t, remote)
			form := jacketForm()
			tt.mutate(&form)

			_, err := g.Create(context.Background(), form)

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.code, ve.Code)
			assert.Zero(t, remote.calls)
		})
	}
}

func TestCreate_DuplicateSlugLeavesCatalog(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote(t)
	g := loggedIn(t, remote)
	store := catalog.NewStore(remote, g, zap.NewNop())
	store.Load(ctx)
	require.Equal(t, 1, store.Len())

	form := jacketForm()
	form.Slug = "Tee"
	_, err := store.Add(ctx, form)

	assert.ErrorIs(t, err, domain.ErrDuplicateSlug)
	assert.Equal(t, 1, store.Len())
}

func TestCatalogReconciliation(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote(t)
	g := loggedIn(t, remote)
	store := catalog.NewStore(remote, g, zap.NewNop())
	store.Load(ctx)

	created, err := store.Add(ctx, jacketForm())
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())

	price := int64(8500)
	_, err = store.Update(ctx, created.ID, domain.ProductPatch{Price: &price})
	require.NoError(t, err)
	got, ok := store.GetByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, int64(8500), got.Price)

	require.NoError(t, store.Remove(ctx, 1))
	_, ok = store.GetByID(1)
	assert.False(t, ok)

	err = store.Remove(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, 1, store.Len())
}

func TestUpdate_SendsOnlySetFields(t *testing.T) {
	remote := newFakeRemote(t)
	g := loggedIn(t, remote)

	empty := []string{}
	_, err := g.Update(context.Background(), 1, domain.ProductPatch{
		Slug:   domain.Opt("New Tee & Co"),
		Colors: &empty,
	})
	require.NoError(t, err)

	req := remote.lastReq
	require.NotNil(t, req.Slug)
	assert.Equal(t, "new-tee-and-co", *req.Slug)
	require.NotNil(t, req.Colors)
	assert.Equal(t, "", *req.Colors)
	assert.Nil(t, req.Name)
	assert.Nil(t, req.PriceCents)
	assert.Nil(t, req.Sizes)
}

func TestUpdate_EmptyPatch(t *testing.T) {
	remote := newFakeRemote(t)
	g := loggedIn(t, remote)

	_, err := g.Update(context.Background(), 1, domain.ProductPatch{})
	assert.True(t, domain.IsValidation(err))
	assert.Zero(t, remote.calls)
}

func TestRestoreToken(t *testing.T) {
	remote := newFakeRemote(t)
	token, err := remote.issuer.Issue(remote.users["admin"])
	require.NoError(t, err)

	g := NewGateway(remote, zap.NewNop())
	require.NoError(t, g.RestoreToken(token))
	require.NoError(t, g.Delete(context.Background(), 1))

	assert.ErrorIs(t, g.RestoreToken("garbage"), domain.ErrUnauthorized)
}
