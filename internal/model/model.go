package model

import "time"

// Closed attribute sets. The size domain of a variant depends on its
// product's category: shoes carry numeric sizes, everything else letters.
var (
	ProductCategories = []string{"t-shirts", "hoodies", "shoes", "accessories", "jackets"}
	Colors            = []string{"Red", "Blue", "Black", "White", "Green"}
	SizesApparel      = []string{"S", "M", "L", "XL"}
	SizesShoes        = []string{"36", "38", "40", "42", "44"}

	OrderStatuses      = []string{"pending", "paid", "cancelled", "shipped"}
	OrderStatusWeights = []float64{0.2, 0.5, 0.1, 0.2}
)

const CategoryShoes = "shoes"

// MergePolicy controls what an upsert does when the natural key already
// exists in the target.
type MergePolicy string

const (
	MergeNone    MergePolicy = "none"    // leave the existing row untouched
	MergeRefresh MergePolicy = "refresh" // overwrite mutable fields and updated_at
	MergeNewest  MergePolicy = "newest"  // overwrite only when the candidate is newer
)

func (p MergePolicy) Valid() bool {
	switch p {
	case MergeNone, MergeRefresh, MergeNewest:
		return true
	}
	return false
}

type Customer struct {
	FullName  string
	Email     string
	Country   string
	City      string
	Age       int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Product struct {
	Name      string
	Category  string
	SKU       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Variant struct {
	ProductID          int64
	SKU                string
	Color              string
	Size               string
	ManufacturingPrice float64
	SellingPrice       float64
	StockQuantity      int
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Order struct {
	CustomerID  int64
	OrderDate   time.Time
	Status      string
	TotalAmount float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type OrderItem struct {
	OrderID   int64
	VariantID int64
	Quantity  int
	UnitPrice float64
	CreatedAt time.Time
}

// ProductRef is the slice of a persisted product the variant generator needs.
type ProductRef struct {
	ID       int64
	SKU      string
	Category string
}

// VariantRef is the order-item pool entry: a persisted variant id with the
// selling price snapshotted onto items at generation time.
type VariantRef struct {
	ID           int64
	SellingPrice float64
}

// SizeDomain returns the valid size set for a category.
func SizeDomain(category string) []string {
	if category == CategoryShoes {
		return SizesShoes
	}
	return SizesApparel
}

// WrongSizeDomain returns the deliberately invalid size set for a category,
// used by chaos injection.
func WrongSizeDomain(category string) []string {
	if category == CategoryShoes {
		return SizesApparel
	}
	return SizesShoes
}

// SizeValid reports whether a size value belongs to the category's domain.
func SizeValid(category, size string) bool {
	for _, s := range SizeDomain(category) {
		if s == size {
			return true
		}
	}
	return false
}
