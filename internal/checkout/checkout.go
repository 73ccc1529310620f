// Package checkout joins cart lines with catalog products and derives the
// values shown at checkout. Nothing here mutates the cart except Checkout.
package checkout

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrEmptyCart is returned when no cart line resolves to a product.
var ErrEmptyCart = errors.New("cart is empty")

// Resolver looks products up by id.
type Resolver interface {
	GetByID(id int64) (domain.Product, bool)
}

// Cart is the part of the cart store checkout needs.
type Cart interface {
	Items() []domain.CartItem
	Clear()
}

// Line is a cart item joined with its resolved product.
type Line struct {
	domain.CartItem
	Product domain.Product
}

// Subtotal is price times quantity, in cents.
func (l Line) Subtotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// EnrichedLines keeps cart order and drops lines whose product no longer
// resolves. items is not modified.
func EnrichedLines(items []domain.CartItem, resolver Resolver) []Line {
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		p, ok := resolver.GetByID(it.ProductID)
		if !ok {
			continue
		}
		lines = append(lines, Line{CartItem: it, Product: p})
	}
	return lines
}

func Total(lines []Line) int64 {
	var total int64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatPrice renders cents as US dollars, e.g. 123456 -> "$1,234.56".
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + "$" + printer.Sprintf("%d", cents/100) + fmt.Sprintf(".%02d", cents%100)
}

type ShippingForm struct {
	Name    string
	Email   string
	Address string
	City    string
	Country string
	Zip     string
}

func (f ShippingForm) validate() error {
	required := []struct {
		field string
		value string
	}{
		{"name", f.Name},
		{"email", f.Email},
		{"address", f.Address},
		{"city", f.City},
		{"country", f.Country},
		{"zip", f.Zip},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.field)
		}
	}
	if len(missing) > 0 {
		return domain.NewValidationError(strings.Join(missing, ","), domain.CodeMissingFields,
			"Missing required fields: "+strings.Join(missing, ", "))
	}

	addr, err := mail.ParseAddress(strings.TrimSpace(f.Email))
	if err != nil || addr.Name != "" {
		return domain.NewValidationError("email", domain.CodeInvalidField, "Email address is not valid")
	}
	return nil
}

// Summary describes a placed order.
type Summary struct {
	Reference      string
	Lines          []Line
	Total          int64
	FormattedTotal string
	ShipTo         ShippingForm
	PlacedAt       time.Time
}

// Checkout places an order for the resolvable cart lines and clears the
// cart. No payment is taken.
func Checkout(cart Cart, resolver Resolver, form ShippingForm) (Summary, error) {
	if err := form.validate(); err != nil {
		return Summary{}, err
	}

	lines := EnrichedLines(cart.Items(), resolver)
	if len(lines) == 0 {
		return Summary{}, ErrEmptyCart
	}

	total := Total(lines)
	summary := Summary{
		Reference:      uuid.New().String(),
		Lines:          lines,
		Total:          total,
		FormattedTotal: FormatPrice(total),
		ShipTo:         form,
		PlacedAt:       time.Now().UTC(),
	}
	cart.Clear()
	return summary, nil
}
