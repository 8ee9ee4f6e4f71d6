package cipherwatch

import "time"

// SealedValue is an opaque handle to a confidentially-held value. The core
// treats the bytes as a black box: it stores them, hands them to the oracle
// client, and nothing else. Only an external capability (the sealing
// provider or the oracle) can interpret them.
type SealedValue struct {
	data []byte
}

// NewSealedValue wraps the given handle bytes. The slice is copied so later
// mutation by the caller cannot reach stored state.
func NewSealedValue(data []byte) SealedValue {
	return SealedValue{data: append([]byte(nil), data...)}
}

// Bytes returns a copy of the handle bytes.
func (v SealedValue) Bytes() []byte {
	return append([]byte(nil), v.data...)
}

// IsZero reports whether the handle is empty.
func (v SealedValue) IsZero() bool { return len(v.data) == 0 }

// RequestID is the opaque correlation token returned when an oracle request
// is issued. Tokens are unique for the lifetime of the process and comparable;
// nothing else about their structure is part of the contract.
type RequestID string

// RequestKind distinguishes the two oracle computations the protocol issues.
type RequestKind uint8

const (
	// KindRiskEvaluation asks the oracle whether a sealed score exceeds the
	// sealed threshold.
	KindRiskEvaluation RequestKind = iota + 1

	// KindContentReveal asks the oracle to decrypt a record's sealed content.
	KindContentReveal
)

// String returns the kind name.
func (k RequestKind) String() string {
	switch k {
	case KindRiskEvaluation:
		return "risk-evaluation"
	case KindContentReveal:
		return "content-reveal"
	default:
		return "unknown"
	}
}

// Identity names an actor. The protocol is configured with exactly one
// privileged identity (the counselor); every other identity may only submit.
type Identity string

// Record is one submitted item: sealed content, its sealed risk score, and
// the risk flag the oracle's evaluation eventually sets. Records are owned by
// the RecordStore and never deleted.
type Record struct {
	ID        int64
	Content   SealedValue
	Score     SealedValue
	CreatedAt time.Time
	HighRisk  bool
}

// Alert is the reveal side of a record. It is created empty alongside the
// record; Content is populated exactly once, when a content-reveal callback
// resolves for a high-risk record.
type Alert struct {
	RecordID int64
	Content  string
	Revealed bool
}
