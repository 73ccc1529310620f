package checkout

import (
	"errors"
	"testing"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogMap map[int64]domain.Product

func (m catalogMap) GetByID(id int64) (domain.Product, bool) {
	p, ok := m[id]
	return p, ok
}

type fakeCart struct {
	items   []domain.CartItem
	cleared bool
}

func (c *fakeCart) Items() []domain.CartItem { return c.items }
func (c *fakeCart) Clear()                   { c.items = nil; c.cleared = true }

func products() catalogMap {
	return catalogMap{
		1: {ID: 1, Name: "Tee", Price: 2999},
		2: {ID: 2, Name: "Jacket", Price: 12999},
	}
}

func validForm() ShippingForm {
	return ShippingForm{
		Name:    "Sam Lee",
		Email:   "sam@example.com",
		Address: "1 Main St",
		City:    "Springfield",
		Country: "US",
		Zip:     "12345",
	}
}

func TestEnrichedLines_DropsUnresolvedWithoutMutating(t *testing.T) {
	items := []domain.CartItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 99, Quantity: 1},
		{ProductID: 2, Quantity: 1, Size: domain.Opt("M")},
	}
	before := append([]domain.CartItem(nil), items...)

	lines := EnrichedLines(items, products())

	require.Len(t, lines, 2)
	assert.Equal(t, int64(1), lines[0].ProductID)
	assert.Equal(t, int64(2), lines[1].ProductID)
	assert.Equal(t, "Jacket", lines[1].Product.Name)
	assert.Equal(t, before, items)
}

func TestTotal(t *testing.T) {
	lines := EnrichedLines([]domain.CartItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}, products())

	assert.Equal(t, int64(18997), Total(lines))
	assert.Equal(t, "$189.97", FormatPrice(Total(lines)))
	assert.Zero(t, Total(nil))
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{100, "$1.00"},
		{2800, "$28.00"},
		{123456, "$1,234.56"},
		{123456789, "$1,234,567.89"},
		{-250, "-$2.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.cents))
	}
}

func TestCheckout(t *testing.T) {
	cart := &fakeCart{items: []domain.CartItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
		{ProductID: 42, Quantity: 3},
	}}

	summary, err := Checkout(cart, products(), validForm())
	require.NoError(t, err)

	assert.NotEmpty(t, summary.Reference)
	assert.Len(t, summary.Lines, 2)
	assert.Equal(t, int64(18997), summary.Total)
	assert.Equal(t, "$189.97", summary.FormattedTotal)
	assert.True(t, cart.cleared)
}

func TestCheckout_InvalidFormLeavesCart(t *testing.T) {
	cart := &fakeCart{items: []domain.CartItem{{ProductID: 1, Quantity: 1}}}

	form := validForm()
	form.City = " "
	_, err := Checkout(cart, products(), form)
	assert.True(t, domain.IsValidation(err))

	form = validForm()
	form.Email = "not-an-email"
	_, err = Checkout(cart, products(), form)
	assert.True(t, domain.IsValidation(err))

	assert.False(t, cart.cleared)
}

func TestCheckout_EmptyCart(t *testing.T) {
	cart := &fakeCart{items: []domain.CartItem{{ProductID: 42, Quantity: 1}}}

	_, err := Checkout(cart, products(), validForm())
	assert.True(t, errors.Is(err, ErrEmptyCart))
	assert.False(t, cart.cleared)
	assert.Len(t, cart.items, 1)
}
