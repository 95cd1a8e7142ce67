// Package notify implements the storefront's transient user-facing message
// queue. Managers report state changes ("item added", "order placed") through
// a Dispatcher; the view layer consumes them via Active snapshots or the
// Events subscription channel.
//
// Each notification schedules its own expiry. Manual dismissal and timer
// expiry race benignly: whichever fires first removes the record, the other
// becomes a no-op.
//
// Example:
//
//	d := notify.NewDispatcher(notify.WithLogger(log))
//	defer d.Close()
//
//	id := d.ShowSuccess("Lip balm added to cart successfully!")
//	// ...
//	d.Dismiss(id)
package notify
