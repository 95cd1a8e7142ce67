// Package money formats decimal amounts as localized currency strings for
// product cards, cart totals, and order summaries.
//
// Amounts are rounded to the currency's standard scale and grouped per the
// configured locale, so $1234.5 renders as "$1,234.50".
//
// Usage:
//
//	f, err := money.NewFormatter("USD")
//	if err != nil {
//		return err
//	}
//	f.Format(product.LastPrice) // "$24.50"
package money
