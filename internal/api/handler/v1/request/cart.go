package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func (req *AddCartItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ProductID, validation.Required),
		validation.Field(&req.Size, validation.Required),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
	)
}

type CheckoutRequest struct {
	CustomerType  string `json:"customer_type"`
	MemberID      string `json:"member_id"`
	PaymentMethod string `json:"payment_method"`
}

func (req *CheckoutRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CustomerType, validation.In("Member", "Non-Member", "member", "non-member")),
		validation.Field(&req.MemberID, validation.Length(0, 64)),
	)
}
