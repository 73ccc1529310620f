package domain

import (
	"encoding/json"
	"strings"
)

type Category string

const (
	CategoryTops        Category = "tops"
	CategoryBottoms     Category = "bottoms"
	CategoryOuterwear   Category = "outerwear"
	CategoryAccessories Category = "accessories"
	CategoryFootwear    Category = "footwear"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryTops,
	CategoryBottoms,
	CategoryOuterwear,
	CategoryAccessories,
	CategoryFootwear,
}

func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Product is the catalog entity as the storefront sees it. Price is in cents.
type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Image       string   `json:"image"`
	Category    Category `json:"category"`
	Colors      []string `json:"colors,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Featured    bool     `json:"featured"`
}

// ProductRecord is the stored and transmitted form of a product. Colors and
// sizes travel as JSON-encoded string blobs and are decoded only when a
// record is turned into a Product.
type ProductRecord struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement" dynamodbav:"id"`
	Name        string  `json:"name" gorm:"not null" dynamodbav:"name"`
	Slug        string  `json:"slug" gorm:"not null;uniqueIndex" dynamodbav:"slug"`
	Description string  `json:"description" gorm:"not null" dynamodbav:"description"`
	PriceCents  int64   `json:"priceCents" gorm:"column:price_cents;not null" dynamodbav:"priceCents"`
	Image       string  `json:"image" gorm:"not null" dynamodbav:"image"`
	Category    string  `json:"category" gorm:"not null;index" dynamodbav:"category"`
	Colors      *string `json:"colors" dynamodbav:"colors,omitempty"`
	Sizes       *string `json:"sizes" dynamodbav:"sizes,omitempty"`
	Featured    bool    `json:"featured" gorm:"default:false" dynamodbav:"featured"`
	CreatedAt   int64   `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime:milli" dynamodbav:"createdAt"`
	UpdatedAt   int64   `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime:milli" dynamodbav:"updatedAt"`
}

func (ProductRecord) TableName() string {
	return "products"
}

// ToProduct decodes the record. A malformed colors or sizes blob is treated
// as absent.
func (r ProductRecord) ToProduct() Product {
	return Product{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Price:       r.PriceCents,
		Image:       r.Image,
		Category:    Category(r.Category),
		Colors:      decodeListOrNil(r.Colors),
		Sizes:       decodeListOrNil(r.Sizes),
		Featured:    r.Featured,
	}
}

func NewProductRecord(p Product) ProductRecord {
	return ProductRecord{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		PriceCents:  p.Price,
		Image:       p.Image,
		Category:    string(p.Category),
		Colors:      EncodeList(p.Colors),
		Sizes:       EncodeList(p.Sizes),
		Featured:    p.Featured,
	}
}

// EncodeList renders a string sequence as the blob stored in a record.
// A nil or empty sequence encodes to nil.
func EncodeList(values []string) *string {
	if len(values) == 0 {
		return nil
	}
	b, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

// DecodeList parses a colors/sizes blob.
func DecodeList(blob string) ([]string, error) {
	var values []string
	if err := json.Unmarshal([]byte(blob), &values); err != nil {
		return nil, err
	}
	return values, nil
}

func decodeListOrNil(blob *string) []string {
	if blob == nil || strings.TrimSpace(*blob) == "" {
		return nil
	}
	values, err := DecodeList(*blob)
	if err != nil || len(values) == 0 {
		return nil
	}
	return values
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	PriceCents  *int64  `json:"price_cents"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Colors      *string `json:"colors,omitempty"`
	Sizes       *string `json:"sizes,omitempty"`
	Featured    bool    `json:"featured"`
}

// UpdateProductRequest is a partial patch; nil fields are left untouched.
type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	PriceCents  *int64  `json:"price_cents,omitempty"`
	Image       *string `json:"image,omitempty"`
	Category    *string `json:"category,omitempty"`
	Colors      *string `json:"colors,omitempty"`
	Sizes       *string `json:"sizes,omitempty"`
	Featured    *bool   `json:"featured,omitempty"`
}

func (r UpdateProductRequest) Empty() bool {
	return r.Name == nil && r.Slug == nil && r.Description == nil && r.PriceCents == nil &&
		r.Image == nil && r.Category == nil && r.Colors == nil && r.Sizes == nil && r.Featured == nil
}

// ApplyTo copies every set field onto rec.
func (r UpdateProductRequest) ApplyTo(rec *ProductRecord) {
	if r.Name != nil {
		rec.Name = *r.Name
	}
	if r.Slug != nil {
		rec.Slug = *r.Slug
	}
	if r.Description != nil {
		rec.Description = *r.Description
	}
	if r.PriceCents != nil {
		rec.PriceCents = *r.PriceCents
	}
	if r.Image != nil {
		rec.Image = *r.Image
	}
	if r.Category != nil {
		rec.Category = *r.Category
	}
	if r.Colors != nil {
		rec.Colors = blankToNil(*r.Colors)
	}
	if r.Sizes != nil {
		rec.Sizes = blankToNil(*r.Sizes)
	}
	if r.Featured != nil {
		rec.Featured = *r.Featured
	}
}

func blankToNil(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

type DeleteProductResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}
