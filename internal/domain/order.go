package domain

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidStatuses is the set of statuses the order service understands.
// Transition legality is owned by the order service; the storefront only
// rejects values outside the set.
var ValidStatuses = map[OrderStatus]struct{}{
	OrderStatusNew:        {},
	OrderStatusProcessing: {},
	OrderStatusShipped:    {},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// IsValidStatus reports whether s is a known order status.
func IsValidStatus(s OrderStatus) bool {
	_, ok := ValidStatuses[s]
	return ok
}

// Order is the storefront projection of an order as returned by the
// order service.
type Order struct {
	ID              int64       `json:"id"`
	CustomerName    string      `json:"customer_name"`
	CustomerPhone   string      `json:"customer_phone"`
	CustomerEmail   string      `json:"customer_email,omitempty"`
	DeliveryAddress string      `json:"delivery_address"`
	PaymentMethod   string      `json:"payment_method"`
	DeliveryMethod  string      `json:"delivery_method"`
	Comment         string      `json:"comment,omitempty"`
	TotalAmount     int64       `json:"total_amount"`
	Status          OrderStatus `json:"status"`
	CreatedAt       string      `json:"created_at"`
}
