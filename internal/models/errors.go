package models

import "fmt"

// LoadError reports a failed catalog load. A load is all-or-nothing: any
// malformed row or missing column fails the whole load and the previous
// snapshot, if any, keeps serving.
type LoadError struct {
	Source string // path or table the load was reading from
	Column string // offending column, when the failure is column-scoped
	Row    int    // offending row (1-based), 0 when not row-scoped
	Err    error
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("catalog load from %s failed", e.Source)
	if e.Column != "" {
		msg += fmt.Sprintf(" (column %q", e.Column)
		if e.Row > 0 {
			msg += fmt.Sprintf(", row %d", e.Row)
		}
		msg += ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error { return e.Err }

// NotFoundError reports a purchase request for a SKU absent from the
// current catalog snapshot.
type NotFoundError struct {
	SKU string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product with SKU %s not found", e.SKU)
}

// InsufficientStockError reports a requested quantity exceeding the stock
// recorded in the current snapshot. Stock is never decremented, so this is
// a point-in-time check, not a reservation.
type InsufficientStockError struct {
	SKU       string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (requested: %d, available: %d)",
		e.SKU, e.Requested, e.Available)
}

// InvalidSignatureError reports an attestation payload whose signature does
// not verify. It indicates tampering or a key mismatch and must never be
// ignored.
type InvalidSignatureError struct {
	Reason string
}

func (e *InvalidSignatureError) Error() string {
	return fmt.Sprintf("invalid attestation signature: %s", e.Reason)
}

// EncodingError reports a failure rendering a payload as an image artifact.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("failed to encode payload: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }
