package checkout

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrEmptyCart is returned when PlaceOrder is called with no line items.
	ErrEmptyCart = errors.New("checkout: cart is empty")

	// ErrUnknownPaymentMethod is returned for a payment method other than
	// card or cash on delivery.
	ErrUnknownPaymentMethod = errors.New("checkout: unknown payment method")
)

// FieldErrors maps form field names to user-facing validation messages.
// It is returned before any network call is made.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%s: %s", field, e[field])
	}
	return "checkout: invalid form: " + strings.Join(parts, "; ")
}
