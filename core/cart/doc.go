// Package cart implements the working cart for the current browser session:
// an ordered list of product line items, independent of login state, merged
// with the session only at checkout time.
//
// The manager holds the only in-memory representation; every mutation
// re-serializes the whole cart to the durable store before returning, so the
// store is always a same-tick mirror. Hydration happens once at construction
// and fails open to an empty cart when the stored payload is unparseable.
//
// Unlike the single-threaded environment this design originates from, the
// manager guards its read-modify-write cycle with a mutex so concurrent
// callers cannot interleave mutations.
package cart
