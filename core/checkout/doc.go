// Package checkout drives order placement: it validates the shipping form
// and card details, creates the order on the backend, reduces catalog stock
// for the sold items, and empties the cart.
//
// Card payments are simulated locally. A successful charge yields a Payment
// with a transaction reference and the card's last four digits; no card data
// ever leaves the process.
//
// Usage:
//
//	svc := checkout.NewService(cartMgr, orderSvc, catalogSvc,
//		checkout.WithNotifier(dispatcher),
//	)
//
//	form := checkout.Form{
//		FirstName:     "Jane",
//		LastName:      "Doe",
//		Email:         "jane@example.com",
//		Phone:         "555-0101",
//		Address:       "1 Main St",
//		City:          "Colombo",
//		PostalCode:    "00100",
//		PaymentMethod: checkout.PaymentCashOnDelivery,
//	}
//
//	confirmation, err := svc.PlaceOrder(ctx, form)
//	if err != nil {
//		var fields checkout.FieldErrors
//		if errors.As(err, &fields) {
//			// surface per-field messages to the view
//		}
//	}
package checkout
