package orders

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	maxAddressLen = 500
	maxNotesLen   = 1000
	maxCommentLen = 2000

	// MaxLineQty caps one cart line; qty is an int4 column.
	MaxLineQty = 10000
)

type CheckoutInput struct {
	ShippingAddress string        `json:"shipping_address"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	Notes           string        `json:"notes"`
}

func (in CheckoutInput) normalize() (CheckoutInput, error) {
	in.ShippingAddress = strings.TrimSpace(in.ShippingAddress)
	in.Notes = strings.TrimSpace(in.Notes)
	in.PaymentMethod = PaymentMethod(strings.TrimSpace(string(in.PaymentMethod)))

	switch {
	case in.ShippingAddress == "":
		return in, invalid("shipping_address", "required")
	case utf8.RuneCountInString(in.ShippingAddress) > maxAddressLen:
		return in, invalid("shipping_address", "too long")
	case in.PaymentMethod == "":
		return in, invalid("payment_method", "required")
	case !in.PaymentMethod.Valid():
		return in, invalid("payment_method", "must be one of cash_on_delivery, bank_transfer, mobile_money")
	case utf8.RuneCountInString(in.Notes) > maxNotesLen:
		return in, invalid("notes", "too long")
	}
	return in, nil
}

type ReviewInput struct {
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (in ReviewInput) normalize() (ReviewInput, error) {
	in.Comment = strings.TrimSpace(in.Comment)
	if err := checkID("order_id", in.OrderID); err != nil {
		return in, err
	}
	if err := checkID("product_id", in.ProductID); err != nil {
		return in, err
	}
	switch {
	case in.Rating < 1 || in.Rating > 5:
		return in, invalid("rating", "must be between 1 and 5")
	case in.Comment == "":
		return in, invalid("comment", "required")
	case utf8.RuneCountInString(in.Comment) > maxCommentLen:
		return in, invalid("comment", "too long")
	}
	return in, nil
}

func checkID(field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return invalid(field, "must be a uuid")
	}
	return nil
}

func checkQty(qty int) error {
	if qty < 1 {
		return invalid("qty", "must be at least 1")
	}
	if qty > MaxLineQty {
		return invalid("qty", fmt.Sprintf("must be at most %d", MaxLineQty))
	}
	return nil
}
