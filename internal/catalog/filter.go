package catalog

import (
	"sort"
	"strings"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filter narrows products by name and category and orders them. The default
// sort keeps the input order.
func Filter(products []domain.Product, q domain.ListQuery) []domain.Product {
	needle := strings.ToLower(strings.TrimSpace(q.Q))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if q.Category != "" && string(p.Category) != q.Category {
			continue
		}
		out = append(out, p)
	}

	col := collate.New(language.English, collate.IgnoreCase)
	switch q.Sort {
	case domain.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case domain.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case domain.SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool { return col.CompareString(out[i].Name, out[j].Name) < 0 })
	case domain.SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool { return col.CompareString(out[i].Name, out[j].Name) > 0 })
	}
	return out
}

func Featured(products []domain.Product) []domain.Product {
	var out []domain.Product
	for _, p := range products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// Categories lists the distinct categories present, in first-seen order.
func Categories(products []domain.Product) []domain.Category {
	seen := make(map[domain.Category]bool)
	var out []domain.Category
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}
