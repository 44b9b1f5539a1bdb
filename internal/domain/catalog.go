package domain

// FilterAll is the sentinel category/size value meaning "no constraint".
// The storefront UI renders it as the first chip in every filter row.
const FilterAll = "Все"

// Categories lists the catalog categories in display order, starting with
// the unconstrained sentinel.
var Categories = []string{FilterAll, "Платья", "Блузы", "Брюки", "Туники", "Костюмы", "Кардиганы"}

// Product is the storefront projection of a catalog product.
type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description,omitempty"`
	Price       int64    `json:"price"`
	OldPrice    int64    `json:"old_price,omitempty"`
	ImageRef    string   `json:"image_ref,omitempty"`
	Badge       string   `json:"badge,omitempty"`
	Sizes       []string `json:"sizes"`
	Category    string   `json:"category"`
}

// Filter selects a slice of the catalog. A zero value or FilterAll on
// either axis means that axis is unconstrained.
type Filter struct {
	Category string
	Size     string
}

// ConstrainsCategory reports whether the category axis narrows the result.
func (f Filter) ConstrainsCategory() bool {
	return f.Category != "" && f.Category != FilterAll
}

// ConstrainsSize reports whether the size axis narrows the result.
func (f Filter) ConstrainsSize() bool {
	return f.Size != "" && f.Size != FilterAll
}
