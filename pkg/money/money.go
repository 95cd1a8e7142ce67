package money

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders decimal amounts in one currency and locale.
// Safe for concurrent use.
type Formatter struct {
	unit    currency.Unit
	scale   int
	symbol  string
	mark    string
	printer *message.Printer
}

// Option configures a Formatter.
type Option func(*formatterOptions)

type formatterOptions struct {
	tag language.Tag
}

// WithLocale sets the locale used for grouping and the currency symbol.
// Default is American English.
func WithLocale(tag language.Tag) Option {
	return func(o *formatterOptions) {
		o.tag = tag
	}
}

// NewFormatter creates a formatter for the ISO 4217 currency code.
func NewFormatter(code string, opts ...Option) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("money: parse currency %q: %w", code, err)
	}

	o := &formatterOptions{tag: language.AmericanEnglish}
	for _, opt := range opts {
		opt(o)
	}

	printer := message.NewPrinter(o.tag)
	scale, _ := currency.Standard.Rounding(unit)

	return &Formatter{
		unit:    unit,
		scale:   scale,
		symbol:  printer.Sprintf("%v", currency.Symbol(unit)),
		mark:    decimalMark(printer),
		printer: printer,
	}, nil
}

// decimalMark probes the locale's decimal separator; the number package does
// not expose it directly.
func decimalMark(p *message.Printer) string {
	mark := strings.Trim(p.Sprintf("%v", number.Decimal(0.5, number.Scale(1))), "0123456789")
	if utf8.RuneCountInString(mark) != 1 {
		return "."
	}
	return mark
}

// Code returns the formatter's ISO 4217 currency code.
func (f *Formatter) Code() string {
	return f.unit.String()
}

// Format renders the amount with the currency symbol, locale grouping, and
// the currency's standard number of fraction digits. Digits are taken from
// the decimal's own representation, so amounts past float64's integer range
// still render exactly.
func (f *Formatter) Format(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(int32(f.scale))
	units, frac, _ := strings.Cut(fixed, ".")

	n, err := strconv.ParseInt(units, 10, 64)
	if err != nil {
		// Past int64 the printer cannot group; the plain digits are still exact.
		return sign + f.symbol + fixed
	}

	num := f.printer.Sprintf("%v", number.Decimal(n))
	if f.scale > 0 {
		num += f.mark + frac
	}
	return sign + f.symbol + num
}

// FormatDiscount renders a percentage discount badge, e.g. "-18%".
// Zero and negative discounts render as an empty string.
func (f *Formatter) FormatDiscount(percent decimal.Decimal) string {
	if !percent.IsPositive() {
		return ""
	}
	return "-" + percent.Round(0).String() + "%"
}
