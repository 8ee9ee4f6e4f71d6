package cipherwatch

import "sync"

// pendingRequest correlates an outbound oracle request with the record it
// belongs to and the kind of computation that was asked for.
type pendingRequest struct {
	recordID int64
	kind     RequestKind
}

// RequestLedger maps in-flight oracle request identifiers to their
// originating records. Entries are written once when a request is issued and
// consumed once when the matching callback is accepted. There is deliberately
// no way to list or iterate pending entries.
type RequestLedger struct {
	mu      sync.Mutex
	pending map[RequestID]pendingRequest
}

// NewRequestLedger returns an empty ledger.
func NewRequestLedger() *RequestLedger {
	return &RequestLedger{pending: make(map[RequestID]pendingRequest)}
}

// Register records a freshly issued request. It fails with
// ErrDuplicateRequest if the identifier is already pending, which defends
// against a misbehaving oracle client reusing an identifier.
func (l *RequestLedger) Register(id RequestID, recordID int64, kind RequestKind) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.pending[id]; ok {
		return ErrDuplicateRequest
	}
	l.pending[id] = pendingRequest{recordID: recordID, kind: kind}
	return nil
}

// Resolve consumes the entry for id, provided it was registered with the
// given kind, and returns the record it belongs to. The kind check is part
// of the atomic consume: a callback routed to the wrong entry point fails
// with ErrUnknownRequest and leaves the entry pending, so the same callback
// delivered to the right entry point still resolves it. The removal is
// atomic with the lookup: of two callbacks racing on the same identifier,
// exactly one succeeds and the other fails with ErrUnknownRequest. This is
// the at-most-once guarantee for the whole protocol.
func (l *RequestLedger) Resolve(id RequestID, kind RequestKind) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.pending[id]
	if !ok || p.kind != kind {
		return 0, ErrUnknownRequest
	}
	delete(l.pending, id)
	return p.recordID, nil
}
