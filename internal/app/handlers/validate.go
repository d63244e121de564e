package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(cardExpiryValidation, CheckoutRequest{})
	return v
}

// cardExpiryValidation отклоняет карту, срок которой истёк до текущего месяца
func cardExpiryValidation(sl validator.StructLevel) {
	var req CheckoutRequest
	switch v := sl.Current().Interface().(type) {
	case CheckoutRequest:
		req = v
	case *CheckoutRequest:
		req = *v
	default:
		return
	}
	now := time.Now()
	year, month := now.Year(), int(now.Month())
	if req.ExpYear < year || (req.ExpYear == year && req.ExpMonth < month) {
		sl.ReportError(req.ExpMonth, "ExpMonth", "exp_month", "cardexpiry", "")
	}
}
