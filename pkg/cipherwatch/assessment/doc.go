// Package assessment implements the risk-assessment protocol state machine.
//
// A submission stores a sealed record, asks the oracle whether its sealed
// score exceeds the sealed threshold, and returns immediately; the verdict
// arrives later through a signed callback. Only on a high-risk verdict may
// the counselor request the sealed content be revealed, through an identical
// request/callback round trip.
//
// Per-record states:
//
//	Submitted -> Evaluating -> { LowRisk, HighRisk }
//	and, once HighRisk:  NotRevealed -> RevealRequested -> Revealed
//
// Submitted is entered and left inside Submit: submission and evaluation
// request issuance are one atomic step from the caller's view.
//
// # Callback handling order
//
// Both resolve entry points verify the proof and decode the payload before
// consuming the ledger entry, and the consume itself only matches entries of
// the entry point's kind. A callback that fails verification or decoding, or
// that was delivered to the wrong entry point, therefore leaves its request
// pending, so the correct delivery can still resolve it; consuming first
// would let a forged or misrouted callback burn a request identifier. Once
// consumed, an identifier can never resolve again.
//
// # What the protocol does not do
//
// There are no timeouts, retries, or cancellation: a request the oracle
// never answers leaves its record in Evaluating or RevealRequested forever,
// which is accepted. Retry semantics belong to the oracle integration, not
// this state machine.
package assessment
