// Package admin submits authorized catalog mutations to the server. It
// holds the bearer credential and refuses to send anything without a
// valid admin one.
package admin

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/auth"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"go.uber.org/zap"
)

// Remote is the server surface the gateway talks to.
type Remote interface {
	Login(ctx context.Context, username, password string) (*domain.LoginResponse, error)
	CreateProduct(ctx context.Context, token string, req domain.CreateProductRequest) (domain.Product, error)
	UpdateProduct(ctx context.Context, token string, id int64, req domain.UpdateProductRequest) (domain.Product, error)
	DeleteProduct(ctx context.Context, token string, id int64) error
}

// Credential is the bearer token plus what the client knows about it.
type Credential struct {
	Token     string
	User      domain.UserView
	ExpiresAt time.Time
}

func (c Credential) valid(now time.Time) bool {
	return c.Token != "" && c.User.Role == domain.RoleAdmin && now.Before(c.ExpiresAt)
}

type Gateway struct {
	remote Remote
	logger *zap.Logger
	now    func() time.Time

	mu   sync.Mutex
	cred *Credential
}

func NewGateway(remote Remote, logger *zap.Logger) *Gateway {
	return &Gateway{
		remote: remote,
		logger: logger,
		now:    time.Now,
	}
}

// Login exchanges credentials for a token and keeps it for later
// mutations. Any previous credential is replaced only on success.
func (g *Gateway) Login(ctx context.Context, username, password string) (Credential, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Credential{}, domain.NewValidationError("username,password", domain.CodeMissingFields,
			"Username and password are required")
	}

	resp, err := g.remote.Login(ctx, username, password)
	if err != nil {
		g.logger.Info("Login failed", zap.String("username", username), zap.Error(err))
		return Credential{}, err
	}

	cred, err := credentialFrom(resp.Token, resp.User)
	if err != nil {
		return Credential{}, err
	}

	g.mu.Lock()
	g.cred = &cred
	g.mu.Unlock()

	g.logger.Info("Logged in",
		zap.String("username", cred.User.Username),
		zap.String("role", string(cred.User.Role)),
		zap.Time("expires_at", cred.ExpiresAt))
	return cred, nil
}

// RestoreToken reinstates a previously saved token.
func (g *Gateway) RestoreToken(token string) error {
	claims, err := auth.ReadUnverified(token)
	if err != nil {
		return domain.ErrUnauthorized
	}
	cred, err := credentialFrom(token, domain.UserView{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	})
	if err != nil {
		return err
	}

	g.mu.Lock()
	g.cred = &cred
	g.mu.Unlock()
	return nil
}

func (g *Gateway) Logout() {
	g.mu.Lock()
	g.cred = nil
	g.mu.Unlock()
}

// Credential returns the current credential, if any.
func (g *Gateway) Credential() (Credential, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cred == nil {
		return Credential{}, false
	}
	return *g.cred, true
}

// Create validates the form and submits it. The catalog is not touched here.
func (g *Gateway) Create(ctx context.Context, form domain.ProductForm) (domain.Product, error) {
	req, err := BuildCreateRequest(form)
	if err != nil {
		return domain.Product{}, err
	}
	token, err := g.authorize()
	if err != nil {
		return domain.Product{}, err
	}

	created, err := g.remote.CreateProduct(ctx, token, req)
	if err != nil {
		g.logger.Warn("Create product failed", zap.String("slug", req.Slug), zap.Error(err))
		return domain.Product{}, err
	}
	g.logger.Info("Product created", zap.Int64("product_id", created.ID), zap.String("slug", created.Slug))
	return created, nil
}

// Update submits only the fields set on patch.
func (g *Gateway) Update(ctx context.Context, id int64, patch domain.ProductPatch) (domain.Product, error) {
	req, err := BuildUpdateRequest(patch)
	if err != nil {
		return domain.Product{}, err
	}
	token, err := g.authorize()
	if err != nil {
		return domain.Product{}, err
	}

	updated, err := g.remote.UpdateProduct(ctx, token, id, req)
	if err != nil {
		g.logger.Warn("Update product failed", zap.Int64("product_id", id), zap.Error(err))
		return domain.Product{}, err
	}
	g.logger.Info("Product updated", zap.Int64("product_id", id))
	return updated, nil
}

func (g *Gateway) Delete(ctx context.Context, id int64) error {
	token, err := g.authorize()
	if err != nil {
		return err
	}

	if err := g.remote.DeleteProduct(ctx, token, id); err != nil {
		g.logger.Warn("Delete product failed", zap.Int64("product_id", id), zap.Error(err))
		return err
	}
	g.logger.Info("Product deleted", zap.Int64("product_id", id))
	return nil
}

// authorize returns the token to send. A missing, expired or non-admin
// credential yields domain.ErrUnauthorized.
func (g *Gateway) authorize() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cred == nil || !g.cred.valid(g.now()) {
		return "", domain.ErrUnauthorized
	}
	return g.cred.Token, nil
}

func credentialFrom(token string, user domain.UserView) (Credential, error) {
	claims, err := auth.ReadUnverified(token)
	if err != nil {
		return Credential{}, domain.ErrUnauthorized
	}
	cred := Credential{Token: token, User: user}
	if claims.ExpiresAt != nil {
		cred.ExpiresAt = claims.ExpiresAt.Time
	}
	return cred, nil
}
