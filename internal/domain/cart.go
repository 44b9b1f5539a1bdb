package domain

import "time"

// Cart represents a per-session shopping cart.
type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
	Currency  string     `json:"currency"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartLine represents a single line in the cart. Lines are identified by
// the (ProductID, Size) pair: the same product in two sizes is two lines.
type CartLine struct {
	ProductID int64  `json:"product_id"`
	Size      string `json:"size,omitempty"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	ImageRef  string `json:"image_ref,omitempty"`
}

// Total calculates the total price of all lines in the cart (in kopecks).
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.UnitPrice * int64(line.Quantity)
	}
	return total
}

// ItemCount returns the total number of units across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// FindLineIndex returns the index of the cart line matching the given
// product ID and size. Returns -1 if not found.
func (c *Cart) FindLineIndex(productID int64, size string) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID && c.Lines[i].Size == size {
			return i
		}
	}
	return -1
}
