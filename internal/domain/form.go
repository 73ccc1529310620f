package domain

// ProductForm is an admin create form as typed by a person: the price is a
// decimal dollar string and colors/sizes are comma separated.
type ProductForm struct {
	Name        string
	Slug        string
	Description string
	Price       string
	Image       string
	Category    string
	Colors      string
	Sizes       string
	Featured    bool
}

// ProductPatch is a partial product update. Nil fields are not sent.
type ProductPatch struct {
	Name        *string
	Slug        *string
	Description *string
	Price       *int64
	Image       *string
	Category    *Category
	Colors      *[]string
	Sizes       *[]string
	Featured    *bool
}

func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Slug == nil && p.Description == nil && p.Price == nil &&
		p.Image == nil && p.Category == nil && p.Colors == nil && p.Sizes == nil && p.Featured == nil
}
