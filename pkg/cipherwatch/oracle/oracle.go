package oracle

import (
	"context"

	"github.com/cipherwatch/cipherwatch-go/pkg/cipherwatch"
)

// Client issues evaluation and decryption requests against the off-chain
// oracle. The call is fire-and-forget: it returns a correlation token
// immediately and the computation completes later, if ever, via an inbound
// Callback on whatever transport the deployment uses.
//
// Implementations must return tokens that never collide with a previously
// issued, still-pending token for the lifetime of the process.
type Client interface {
	Request(ctx context.Context, kind cipherwatch.RequestKind, values []cipherwatch.SealedValue) (cipherwatch.RequestID, error)
}

// Callback is what the oracle transport eventually delivers for a request:
// the cleartext result and a proof binding it to the request identifier.
// The protocol accepts a callback only after the proof verifies.
type Callback struct {
	RequestID cipherwatch.RequestID
	Payload   []byte
	Proof     []byte
}
