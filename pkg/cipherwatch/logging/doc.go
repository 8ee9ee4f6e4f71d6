// Package logging provides a minimal logging facade for the cipherwatch
// protocol packages.
//
// The Logger interface wraps a subset of log/slog so that transports can
// plug in their own implementation. The protocol never logs sealed handles
// or revealed content; use Sealed to record that a confidential attribute
// was deliberately withheld:
//
//	logger.Info(ctx, "record submitted",
//	    "record_id", id,
//	    logging.Sealed("content"),
//	)
//
// New(nil) binds to slog.Default(); Nop() discards everything.
package logging
