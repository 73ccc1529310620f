package domain

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortOrder string

const (
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortNameAsc   SortOrder = "name_asc"
	SortNameDesc  SortOrder = "name_desc"
	// SortDefault is newest first on the server and server order on clients.
	SortDefault SortOrder = ""
)

// ParseSortOrder maps unknown values to SortDefault.
func ParseSortOrder(s string) SortOrder {
	switch o := SortOrder(s); o {
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
		return o
	}
	return SortDefault
}

// ListQuery mirrors the GET /products query string.
type ListQuery struct {
	Q        string    `form:"q"`
	Category string    `form:"category"`
	Sort     SortOrder `form:"sort"`
}

// Matches applies the text search (name or description) and category filter.
func (q ListQuery) Matches(name, description, category string) bool {
	if q.Category != "" && category != q.Category {
		return false
	}
	if q.Q == "" {
		return true
	}
	needle := strings.ToLower(q.Q)
	return strings.Contains(strings.ToLower(name), needle) ||
		strings.Contains(strings.ToLower(description), needle)
}

// Apply filters and sorts records for backends without a query engine.
func (q ListQuery) Apply(records []ProductRecord) []ProductRecord {
	out := make([]ProductRecord, 0, len(records))
	for _, r := range records {
		if q.Matches(r.Name, r.Description, r.Category) {
			out = append(out, r)
		}
	}

	col := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch q.Sort {
		case SortPriceAsc:
			return a.PriceCents < b.PriceCents
		case SortPriceDesc:
			return a.PriceCents > b.PriceCents
		case SortNameAsc:
			return col.CompareString(a.Name, b.Name) < 0
		case SortNameDesc:
			return col.CompareString(a.Name, b.Name) > 0
		default:
			if a.CreatedAt != b.CreatedAt {
				return a.CreatedAt > b.CreatedAt
			}
			return a.ID > b.ID
		}
	})
	return out
}
