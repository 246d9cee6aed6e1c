package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
	PaymentMobileMoney    PaymentMethod = "mobile_money"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCashOnDelivery, PaymentBankTransfer, PaymentMobileMoney:
		return true
	}
	return false
}

// CartItem is a cart row joined with the product as it is right now.
type CartItem struct {
	ProductID string          `json:"product_id"`
	Qty       int             `json:"qty"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	ImageURL  string          `json:"image_url"`
	AddedAt   time.Time       `json:"added_at"`
}

func (c CartItem) Subtotal() decimal.Decimal { return c.Price.Mul(decimal.NewFromInt(int64(c.Qty))) }

type Cart struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          Status          `json:"status"`
	ShippingAddress string          `json:"shipping_address"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Items           []OrderItem     `json:"items,omitempty"`
}

// OrderItem is immutable once written; Price is the product price at checkout.
type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   string          `json:"order_id"`
	ProductID string          `json:"product_id"`
	Title     string          `json:"title,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

func (it OrderItem) Subtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

type HistoryEntry struct {
	ID        int64     `json:"id"`
	OrderID   string    `json:"order_id"`
	From      Status    `json:"from,omitempty"`
	To        Status    `json:"to"`
	ActorID   string    `json:"actor_id"`
	ActorRole string    `json:"actor_role"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewStatus string

const (
	ReviewActive  ReviewStatus = "active"
	ReviewFlagged ReviewStatus = "flagged"
	ReviewRemoved ReviewStatus = "removed"
)

func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewActive, ReviewFlagged, ReviewRemoved:
		return true
	}
	return false
}

type Review struct {
	ID        int64        `json:"id"`
	ProductID string       `json:"product_id"`
	UserID    string       `json:"user_id"`
	OrderID   string       `json:"order_id"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment"`
	Status    ReviewStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}

type Rating struct {
	ProductID string          `json:"product_id"`
	Average   decimal.Decimal `json:"average"`
	Count     int             `json:"count"`
}
