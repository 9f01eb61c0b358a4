package client

import "github.com/iahmedd-k/Canton-Store/internal/cart"

// OrderItem is one cart line in the wire shape the orders endpoint expects.
type OrderItem struct {
	Name    string  `json:"name"`
	Qty     int     `json:"qty"`
	Image   string  `json:"image"`
	Price   float64 `json:"price"`
	Product string  `json:"product"`
}

// ShippingAddress is the delivery information collected at checkout.
type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Email      string `json:"email"`
	FullName   string `json:"fullName"`
}

// OrderRequest is the order submission payload.
type OrderRequest struct {
	OrderItems      []OrderItem     `json:"orderItems"`
	TotalPrice      float64         `json:"totalprice"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	User            string          `json:"user,omitempty"`
}

// NewOrderRequest builds an order submission from the cart's lines and
// recomputed total. userID may be empty for guest checkout.
func NewOrderRequest(lines []cart.Line, total float64, ship ShippingAddress, paymentMethod, userID string) OrderRequest {
	items := make([]OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, OrderItem{
			Name:    l.Name,
			Qty:     l.Quantity,
			Image:   l.Image.URL,
			Price:   l.UnitPrice,
			Product: l.ProductID,
		})
	}

	return OrderRequest{
		OrderItems:      items,
		TotalPrice:      total,
		ShippingAddress: ship,
		PaymentMethod:   paymentMethod,
		User:            userID,
	}
}
