// Package stego wires together internal/codec, internal/lsb,
// internal/payload, internal/scrypto, and internal/limits into the public
// Encode/Decode/AnalyzeCapacity operations: one pipeline function per
// direction rather than a staged builder, since each step either succeeds
// outright or the whole operation fails with a single tagged error.
package stego

import "fmt"

// Kind is the closed error-kind taxonomy every stego operation reports.
type Kind string

const (
	KindUnsupportedFormat Kind = "UnsupportedFormat"
	KindCarrierCorrupt    Kind = "CarrierCorrupt"
	KindCapacityExceeded  Kind = "CapacityExceeded"
	KindDepthPolicy       Kind = "DepthPolicy"
	KindNoHiddenData      Kind = "NoHiddenData"
	KindDecryptFailure    Kind = "DecryptFailure"
	KindCancelled         Kind = "Cancelled"
)

// Error is the single public error type every stego operation returns,
// carrying a closed Kind tag and a short human-readable message. No stack
// traces, no partial output on failure.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
