package grocery

import "errors"

// Validation errors surfaced to the shopper as notices.
var (
	ErrAddressRequired        = errors.New("Please enter a delivery address")
	ErrEmptyCart              = errors.New("Your cart is empty")
	ErrPaymentMethodRequired  = errors.New("Please select a payment method")
	ErrUnknownPaymentMethod   = errors.New("Unknown payment method")
	ErrCardDetailsRequired    = errors.New("Please fill in all card details")
	ErrPasswordMismatch       = errors.New("New password and confirm password do not match!")
	ErrPasswordFieldsRequired = errors.New("Please fill all password fields")
	ErrAddressNotFound        = errors.New("Address not found")
	ErrProductNotFound        = errors.New("Product not found")
	ErrNoOrder                = errors.New("Unable to find order details")
)

// IsValidation reports whether err is a shopper-facing validation error
// rather than a storage failure.
func IsValidation(err error) bool {
	for _, v := range []error{
		ErrAddressRequired, ErrEmptyCart, ErrPaymentMethodRequired, ErrUnknownPaymentMethod,
		ErrCardDetailsRequired, ErrPasswordMismatch, ErrPasswordFieldsRequired,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
