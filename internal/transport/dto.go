package transport

import "github.com/Skotchmaster/shop_orders/internal/models"

type CreateOrderItem struct {
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// CreateOrderRequest deliberately has no paymentStatus or status fields:
// those are forced server-side and anything the caller sends for them is
// dropped at bind time.
type CreateOrderRequest struct {
	ShippingAddress *models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                  `json:"paymentMethod"`
	Items           []CreateOrderItem       `json:"items"`
	TotalAmount     float64                 `json:"totalAmount"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
