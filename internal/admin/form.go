package admin

import (
	"math"
	"regexp"
	"strings"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRun     = regexp.MustCompile(`-{2,}`)
)

// Slugify derives a URL slug, e.g. "Rock & Roll" -> "rock-and-roll".
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = strings.ReplaceAll(s, "&", "-and-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

var maxCents = decimal.NewFromInt(math.MaxInt64)

// ParsePrice converts a dollar amount such as "29.99" to cents, rounding
// half up.
func ParsePrice(dollars string) (int64, error) {
	s := strings.TrimPrefix(strings.TrimSpace(dollars), "$")
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0, domain.NewValidationError("price", domain.CodeInvalidPrice, "Price must be a number")
	}
	if d.IsNegative() {
		return 0, domain.NewValidationError("price", domain.CodeInvalidPrice, "Price must be a non-negative amount")
	}
	cents := d.Shift(2).Round(0)
	if cents.GreaterThan(maxCents) {
		return 0, domain.NewValidationError("price", domain.CodeInvalidPrice, "Price is too large")
	}
	return cents.IntPart(), nil
}

// SplitList turns "S, M ,L" into [S M L]. Blank entries are dropped.
func SplitList(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// BuildCreateRequest validates a create form and converts it to the wire
// request.
func BuildCreateRequest(form domain.ProductForm) (domain.CreateProductRequest, error) {
	name := strings.TrimSpace(form.Name)
	description := strings.TrimSpace(form.Description)
	image := strings.TrimSpace(form.Image)

	var missing []string
	for _, f := range []struct{ field, value string }{
		{"name", name},
		{"description", description},
		{"price", strings.TrimSpace(form.Price)},
		{"image", image},
		{"category", strings.TrimSpace(form.Category)},
	} {
		if f.value == "" {
			missing = append(missing, f.field)
		}
	}
	if len(missing) > 0 {
		return domain.CreateProductRequest{}, domain.NewValidationError(strings.Join(missing, ","),
			domain.CodeMissingFields, "Missing required fields: "+strings.Join(missing, ", "))
	}

	category, ok := domain.ParseCategory(form.Category)
	if !ok {
		return domain.CreateProductRequest{}, invalidCategory()
	}
	price, err := ParsePrice(form.Price)
	if err != nil {
		return domain.CreateProductRequest{}, err
	}

	slugSource := form.Slug
	if strings.TrimSpace(slugSource) == "" {
		slugSource = name
	}
	slug := Slugify(slugSource)
	if slug == "" {
		return domain.CreateProductRequest{}, invalidSlug()
	}

	return domain.CreateProductRequest{
		Name:        name,
		Slug:        slug,
		Description: description,
		PriceCents:  &price,
		Image:       image,
		Category:    string(category),
		Colors:      domain.EncodeList(SplitList(form.Colors)),
		Sizes:       domain.EncodeList(SplitList(form.Sizes)),
		Featured:    form.Featured,
	}, nil
}

// BuildUpdateRequest validates the set fields of patch. Empty colors or
// sizes clear the field on the server.
func BuildUpdateRequest(patch domain.ProductPatch) (domain.UpdateProductRequest, error) {
	if patch.Empty() {
		return domain.UpdateProductRequest{}, domain.NewValidationError("", domain.CodeMissingFields, "No fields to update")
	}

	var req domain.UpdateProductRequest
	var err error
	if req.Name, err = nonBlank("name", patch.Name); err != nil {
		return req, err
	}
	if req.Description, err = nonBlank("description", patch.Description); err != nil {
		return req, err
	}
	if req.Image, err = nonBlank("image", patch.Image); err != nil {
		return req, err
	}
	if patch.Slug != nil {
		slug := Slugify(*patch.Slug)
		if slug == "" {
			return req, invalidSlug()
		}
		req.Slug = &slug
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return req, domain.NewValidationError("price", domain.CodeInvalidPrice, "Price must be a non-negative amount")
		}
		price := *patch.Price
		req.PriceCents = &price
	}
	if patch.Category != nil {
		category, ok := domain.ParseCategory(string(*patch.Category))
		if !ok {
			return req, invalidCategory()
		}
		c := string(category)
		req.Category = &c
	}
	req.Colors = listBlob(patch.Colors)
	req.Sizes = listBlob(patch.Sizes)
	if patch.Featured != nil {
		featured := *patch.Featured
		req.Featured = &featured
	}
	return req, nil
}

func nonBlank(field string, v *string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil, domain.NewValidationError(field, domain.CodeMissingField, field+" must not be empty")
	}
	return &s, nil
}

func listBlob(values *[]string) *string {
	if values == nil {
		return nil
	}
	if blob := domain.EncodeList(*values); blob != nil {
		return blob
	}
	empty := ""
	return &empty
}

func invalidCategory() error {
	return domain.NewValidationError("category", domain.CodeInvalidCategory,
		"Category must be one of: tops, bottoms, outerwear, accessories, footwear")
}

func invalidSlug() error {
	return domain.NewValidationError("slug", domain.CodeInvalidField, "Slug must contain at least one letter or digit")
}
