package domain

// Variant selects a size and color. A nil field means "not chosen", which
// is distinct from every concrete value.
type Variant struct {
	Size  *string `json:"size,omitempty"`
	Color *string `json:"color,omitempty"`
}

// CartItem is one desired purchase line. Its identity is
// (ProductID, Size, Color).
type CartItem struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Size      *string `json:"size,omitempty"`
	Color     *string `json:"color,omitempty"`
}

func (i CartItem) Variant() Variant {
	return Variant{Size: i.Size, Color: i.Color}
}

// SameLine reports whether two items share the line identity.
func (i CartItem) SameLine(o CartItem) bool {
	return i.ProductID == o.ProductID && i.Variant().Matches(o.Variant())
}

// Matches compares both variant fields; unset matches only unset.
func (v Variant) Matches(o Variant) bool {
	return optionalEqual(v.Size, o.Size) && optionalEqual(v.Color, o.Color)
}

func optionalEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Opt returns a pointer to s, or nil when s is empty.
func Opt(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
