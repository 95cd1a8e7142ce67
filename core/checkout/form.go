package checkout

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cbcbeauty/storefront/core/order"
)

// Payment methods accepted by the checkout flow.
const (
	PaymentCard           = order.PaymentCard
	PaymentCashOnDelivery = order.PaymentCashOnDelivery
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)
)

// Form carries the customer and shipping details collected at checkout.
type Form struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Address       string
	City          string
	PostalCode    string
	Country       string
	PaymentMethod string
	Card          Card
}

// CustomerName joins the first and last names the way the backend's order
// record expects them.
func (f Form) CustomerName() string {
	return strings.TrimSpace(f.FirstName) + " " + strings.TrimSpace(f.LastName)
}

// Validate checks the required shipping fields and the email format. The
// card details are checked separately, only when paying by card.
func (f Form) Validate() error {
	errs := FieldErrors{}

	if strings.TrimSpace(f.FirstName) == "" {
		errs["firstName"] = "First name is required"
	}
	if strings.TrimSpace(f.LastName) == "" {
		errs["lastName"] = "Last name is required"
	}
	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(f.Email) {
		errs["email"] = "Please enter a valid email address"
	}
	if strings.TrimSpace(f.Phone) == "" {
		errs["phone"] = "Phone number is required"
	}
	if strings.TrimSpace(f.Address) == "" {
		errs["address"] = "Address is required"
	}
	if strings.TrimSpace(f.City) == "" {
		errs["city"] = "City is required"
	}
	if strings.TrimSpace(f.PostalCode) == "" {
		errs["postalCode"] = "Postal code is required"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Card holds the details of a simulated card payment. The number may contain
// grouping spaces; they are stripped before validation.
type Card struct {
	Number         string
	Expiry         string // MM/YY
	CVV            string
	CardholderName string
}

// digits returns the card number with grouping spaces removed.
func (c Card) digits() string {
	return strings.ReplaceAll(c.Number, " ", "")
}

// Last4 returns the trailing four digits of the card number, used on the
// payment receipt.
func (c Card) Last4() string {
	d := c.digits()
	if len(d) < 4 {
		return d
	}
	return d[len(d)-4:]
}

// Validate checks the card fields: a 16 to 19 digit number, an MM/YY expiry
// that has not passed, a 3 or 4 digit CVV, and a cardholder name.
func (c Card) Validate() error {
	return c.validateAt(time.Now())
}

func (c Card) validateAt(now time.Time) error {
	errs := FieldErrors{}

	switch digits := c.digits(); {
	case digits == "":
		errs["cardNumber"] = "Card number is required"
	case !isNumeric(digits) || len(digits) < 16 || len(digits) > 19:
		errs["cardNumber"] = "Card number must be 16 digits"
	}

	switch {
	case c.Expiry == "":
		errs["expiryDate"] = "Expiry date is required"
	case !expiryPattern.MatchString(c.Expiry):
		errs["expiryDate"] = "Invalid expiry date format"
	case expired(c.Expiry, now):
		errs["expiryDate"] = "Card has expired"
	}

	switch {
	case c.CVV == "":
		errs["cvv"] = "CVV is required"
	case !isNumeric(c.CVV) || len(c.CVV) < 3 || len(c.CVV) > 4:
		errs["cvv"] = "CVV must be at least 3 digits"
	}

	if strings.TrimSpace(c.CardholderName) == "" {
		errs["cardholderName"] = "Cardholder name is required"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// expired reports whether an MM/YY expiry lies before the current month.
// Callers must have checked the format already.
func expired(expiry string, now time.Time) bool {
	month, _ := strconv.Atoi(expiry[:2])
	year, _ := strconv.Atoi(expiry[3:])
	if month < 1 || month > 12 {
		return true
	}

	year += 2000
	if year != now.Year() {
		return year < now.Year()
	}
	return month < int(now.Month())
}
