// Package async provides a small Future implementation over Go generics,
// used where the storefront fans out independent backend calls (e.g. reducing
// stock for every line item of a placed order) and joins the results.
//
// Usage:
//
//	future := async.Async(ctx, productID, svc.FetchProduct)
//	// ... other work ...
//	product, err := future.Await()
//
// WaitAll joins a batch:
//
//	products, err := async.WaitAll(futures...)
package async
