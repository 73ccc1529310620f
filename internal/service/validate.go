package service

import (
	"strings"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
)

func missing(field, label string) error {
	return domain.NewValidationError(field, domain.CodeMissingField, label+" is required")
}

func validateCreate(req domain.CreateProductRequest) (*domain.ProductRecord, error) {
	required := []struct {
		field, label string
		value        *string
	}{
		{"name", "Name", &req.Name},
		{"slug", "Slug", &req.Slug},
		{"description", "Description", &req.Description},
		{"image", "Image", &req.Image},
		{"category", "Category", &req.Category},
	}
	for _, r := range required {
		*r.value = strings.TrimSpace(*r.value)
		if *r.value == "" {
			return nil, missing(r.field, r.label)
		}
	}
	if req.PriceCents == nil {
		return nil, missing("price_cents", "Price cents")
	}
	if *req.PriceCents < 0 {
		return nil, domain.NewValidationError("price_cents", domain.CodeInvalidPrice, "Price cents must be a non-negative integer")
	}
	category, ok := domain.ParseCategory(req.Category)
	if !ok {
		return nil, invalidCategory()
	}
	colors, err := normalizeList("colors", req.Colors)
	if err != nil {
		return nil, err
	}
	sizes, err := normalizeList("sizes", req.Sizes)
	if err != nil {
		return nil, err
	}

	return &domain.ProductRecord{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		PriceCents:  *req.PriceCents,
		Image:       req.Image,
		Category:    string(category),
		Colors:      colors,
		Sizes:       sizes,
		Featured:    req.Featured,
	}, nil
}

// validateUpdate checks only the fields present in the patch and returns a
// normalized copy.
func validateUpdate(req domain.UpdateProductRequest) (domain.UpdateProductRequest, error) {
	text := []struct {
		field, label string
		value        **string
	}{
		{"name", "Name", &req.Name},
		{"slug", "Slug", &req.Slug},
		{"description", "Description", &req.Description},
		{"image", "Image", &req.Image},
	}
	for _, r := range text {
		if *r.value == nil {
			continue
		}
		trimmed := strings.TrimSpace(**r.value)
		if trimmed == "" {
			return req, domain.NewValidationError(r.field, domain.CodeInvalidField, r.label+" must not be empty")
		}
		*r.value = &trimmed
	}
	if req.PriceCents != nil && *req.PriceCents < 0 {
		return req, domain.NewValidationError("price_cents", domain.CodeInvalidPrice, "Price cents must be a non-negative integer")
	}
	if req.Category != nil {
		category, ok := domain.ParseCategory(*req.Category)
		if !ok {
			return req, invalidCategory()
		}
		c := string(category)
		req.Category = &c
	}
	for _, blob := range []struct {
		field string
		value **string
	}{{"colors", &req.Colors}, {"sizes", &req.Sizes}} {
		if *blob.value == nil {
			continue
		}
		normalized, err := normalizeList(blob.field, *blob.value)
		if err != nil {
			return req, err
		}
		empty := ""
		if normalized == nil {
			normalized = &empty
		}
		*blob.value = normalized
	}
	return req, nil
}

func invalidCategory() error {
	names := make([]string, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		names = append(names, string(c))
	}
	return domain.NewValidationError("category", domain.CodeInvalidCategory,
		"Category must be one of: "+strings.Join(names, ", "))
}

// normalizeList checks that a colors/sizes blob decodes to a string array.
// Blank blobs become nil.
func normalizeList(field string, blob *string) (*string, error) {
	if blob == nil || strings.TrimSpace(*blob) == "" {
		return nil, nil
	}
	values, err := domain.DecodeList(strings.TrimSpace(*blob))
	if err != nil {
		return nil, domain.NewValidationError(field, domain.CodeInvalidField, field+" must be a JSON array of strings")
	}
	return domain.EncodeList(values), nil
}
