package domain

import "time"

// Product categories offered by the shop.
const (
	CategoryBirthday = "Birthday"
	CategoryWedding  = "Wedding"
	CategoryCustom   = "Custom"
	CategoryCupcakes = "Cupcakes"
)

// Size labels a product can be ordered in.
const (
	SizeSmall      = "Small"
	SizeMedium     = "Medium"
	SizeLarge      = "Large"
	SizeExtraLarge = "Extra Large"
	SizeSixPack    = "6 Pack"
	SizeTwelvePack = "12 Pack"
)

var (
	categories = []string{CategoryBirthday, CategoryWedding, CategoryCustom, CategoryCupcakes}
	sizes      = []string{SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge, SizeSixPack, SizeTwelvePack}
)

// Product describes a catalog item.
// Inactive products stay in storage but are excluded from every catalog read.
type Product struct {
	ID             string
	Name           string
	Category       string
	Description    string
	BasePriceCents int64 // price is stored in cents
	Sizes          []string
	Flavors        []string
	Images         []string
	Customizable   bool
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

func NewProduct(id, name, category, description string, basePriceCents int64) *Product {
	return &Product{
		ID:             id,
		Name:           name,
		Category:       category,
		Description:    description,
		BasePriceCents: basePriceCents,
		Customizable:   true,
		Active:         true,
	}
}

// Categories returns the closed set of allowed product categories.
func Categories() []string {
	return categories
}

// Sizes returns the closed set of allowed size labels.
func Sizes() []string {
	return sizes
}

// ValidCategory reports whether category belongs to the allowed set.
func ValidCategory(category string) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}

// ValidSize reports whether size belongs to the allowed set.
func ValidSize(size string) bool {
	for _, s := range sizes {
		if s == size {
			return true
		}
	}
	return false
}
