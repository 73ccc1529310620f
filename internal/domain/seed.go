package domain

// DefaultProducts is the starter catalog loaded into empty stores.
func DefaultProducts() []Product {
	return []Product{
		{
			Name:        "Essential Oversized Tee",
			Slug:        "essential-oversized-tee",
			Description: "A breathable, heavyweight cotton tee with dropped shoulders and a relaxed fit.",
			Price:       2800,
			Image:       "https://images.unsplash.com/photo-1520975916090-3105956dac38?q=80&w=1600&auto=format&fit=crop",
			Category:    CategoryTops,
			Colors:      []string{"black", "white", "sand"},
			Sizes:       []string{"XS", "S", "M", "L", "XL"},
			Featured:    true,
		},
		{
			Name:        "Tapered Tech Cargo",
			Slug:        "tapered-tech-cargo",
			Description: "Water-repellent nylon cargos with articulated knees and adjustable hem.",
			Price:       6200,
			Image:       "https://images.unsplash.com/photo-1520975639498-4fdbbdae4cfd?q=80&w=1600&auto=format&fit=crop",
			Category:    CategoryBottoms,
			Colors:      []string{"charcoal", "olive"},
			Sizes:       []string{"S", "M", "L", "XL"},
			Featured:    true,
		},
		{
			Name:        "Minimal Coach Jacket",
			Slug:        "minimal-coach-jacket",
			Description: "A clean, wind-resistant coach jacket with matte snaps and mesh lining.",
			Price:       9800,
			Image:       "https://images.unsplash.com/photo-1479064555552-3ef4979f8908?q=80&w=1600&auto=format&fit=crop",
			Category:    CategoryOuterwear,
			Colors:      []string{"navy", "black"},
			Sizes:       []string{"S", "M", "L", "XL"},
		},
		{
			Name:        "Everyday Beanie",
			Slug:        "everyday-beanie",
			Description: "Rib-knit beanie in soft acrylic-wool blend. Cozy and minimal branding.",
			Price:       1900,
			Image:       "https://images.unsplash.com/photo-1516802273409-68526ee1bdd6?q=80&w=1600&auto=format&fit=crop",
			Category:    CategoryAccessories,
			Colors:      []string{"heather-grey", "black", "brown"},
		},
		{
			Name:        "Court Low Sneaker",
			Slug:        "court-low-sneaker",
			Description: "Premium leather low-tops with cushioned insole and durable rubber outsole.",
			Price:       12800,
			Image:       "https://images.unsplash.com/photo-1460353581641-37baddab0fa2?q=80&w=1600&auto=format&fit=crop",
			Category:    CategoryFootwear,
			Colors:      []string{"white", "black"},
			Sizes:       []string{"7", "8", "9", "10", "11", "12"},
			Featured:    true,
		},
		{
			Name:        "Relaxed Pleat Trouser",
			Slug:        "relaxed-pleat-trouser",
			Description: "Soft drape twill with single pleat and relaxed straight leg.",
			Price:       7400,
			Image:       "https://images.unsplash.com/photo-1544441893-675973e31985?q=80&w=1600&auto=format&fit=crop",
			Category:    CategoryBottoms,
			Colors:      []string{"stone", "black"},
			Sizes:       []string{"S", "M", "L", "XL"},
		},
	}
}
