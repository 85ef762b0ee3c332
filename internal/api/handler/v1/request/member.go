package request

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var phoneExp = regexp.MustCompile(`^\+?[0-9 ()-]{3,20}$`)

type MemberRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Discount *int   `json:"discount"`
}

func (req *MemberRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.Phone, validation.Required, validation.Match(phoneExp)),
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.Discount, validation.Min(0), validation.Max(100)),
	)
}
