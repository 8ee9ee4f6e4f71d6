package assessment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cipherwatch/cipherwatch-go/pkg/cipherwatch"
	"github.com/cipherwatch/cipherwatch-go/pkg/cipherwatch/logging"
	"github.com/cipherwatch/cipherwatch-go/pkg/cipherwatch/oracle"
)

// State is the externally observable position of a record in the protocol.
type State string

const (
	// StateEvaluating: submitted, risk evaluation requested, no verdict yet.
	// Records stay here forever if the oracle never answers.
	StateEvaluating State = "evaluating"

	// StateLowRisk is terminal; no further transitions exist.
	StateLowRisk State = "low-risk"

	// StateHighRisk: flagged, content not yet requested for reveal.
	StateHighRisk State = "high-risk"

	// StateRevealRequested: flagged, reveal in flight.
	StateRevealRequested State = "reveal-requested"

	// StateRevealed is terminal; the alert content is readable.
	StateRevealed State = "revealed"
)

// Config wires a Protocol instance. Counselor, Client, and Verifier are
// required; Logger defaults to a no-op and Clock to time.Now.
type Config struct {
	Counselor cipherwatch.Identity
	Client    oracle.Client
	Verifier  *oracle.Verifier
	Logger    logging.Logger
	Clock     func() time.Time
}

// Protocol orchestrates submission, asynchronous risk evaluation, and the
// privileged reveal flow. All externally observable operations are safe for
// concurrent use; the at-most-once resolution of a request identifier is
// delegated to the RequestLedger's atomic consume.
type Protocol struct {
	counselor cipherwatch.Identity
	client    oracle.Client
	verifier  *oracle.Verifier
	records   *cipherwatch.RecordStore
	ledger    *cipherwatch.RequestLedger
	log       logging.Logger
	clock     func() time.Time

	mu            sync.Mutex
	threshold     cipherwatch.SealedValue
	thresholdSet  bool
	evaluated     map[int64]bool
	revealPending map[int64]bool
}

// New constructs a Protocol. The counselor identity is fixed for the
// lifetime of the instance; there is no way to change it afterwards.
func New(cfg Config) (*Protocol, error) {
	if cfg.Counselor == "" {
		return nil, errors.New("assessment: counselor identity is required")
	}
	if cfg.Client == nil {
		return nil, errors.New("assessment: oracle client is required")
	}
	if cfg.Verifier == nil {
		return nil, errors.New("assessment: callback verifier is required")
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Protocol{
		counselor:     cfg.Counselor,
		client:        cfg.Client,
		verifier:      cfg.Verifier,
		records:       cipherwatch.NewRecordStore(),
		ledger:        cipherwatch.NewRequestLedger(),
		log:           log,
		clock:         clock,
		evaluated:     make(map[int64]bool),
		revealPending: make(map[int64]bool),
	}, nil
}

// Counselor returns the privileged identity the instance was built with.
func (p *Protocol) Counselor() cipherwatch.Identity { return p.counselor }

// SetThreshold assigns the sealed comparison threshold. Counselor only, and
// at most once: the threshold is immutable after its first assignment.
func (p *Protocol) SetThreshold(caller cipherwatch.Identity, threshold cipherwatch.SealedValue) error {
	if caller != p.counselor {
		return cipherwatch.ErrUnauthorized
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.thresholdSet {
		return cipherwatch.ErrThresholdAlreadySet
	}
	p.threshold = threshold
	p.thresholdSet = true
	return nil
}

// Submit stores a new record and immediately issues the risk-evaluation
// request over (score, threshold). It fails with ErrThresholdNotSet before
// any record or request is created, so a rejected submission leaves no
// partial state and does not consume an identifier. The returned record id
// is assigned synchronously; the verdict arrives later via
// ResolveRiskEvaluation, or never.
func (p *Protocol) Submit(ctx context.Context, content, score cipherwatch.SealedValue) (int64, error) {
	p.mu.Lock()
	if !p.thresholdSet {
		p.mu.Unlock()
		return 0, cipherwatch.ErrThresholdNotSet
	}
	threshold := p.threshold
	p.mu.Unlock()

	recordID := p.records.Create(content, score, p.clock())

	reqID, err := p.client.Request(ctx, cipherwatch.KindRiskEvaluation, []cipherwatch.SealedValue{score, threshold})
	if err != nil {
		return 0, fmt.Errorf("assessment: issue risk evaluation: %w", err)
	}
	if err := p.ledger.Register(reqID, recordID, cipherwatch.KindRiskEvaluation); err != nil {
		return 0, err
	}

	p.log.Info(ctx, "record submitted",
		"record_id", recordID,
		"request_id", string(reqID),
		logging.Sealed("content"),
		logging.Sealed("score"),
	)
	return recordID, nil
}

// ResolveRiskEvaluation accepts the oracle's verdict for a pending risk
// evaluation. Callable by anyone: the proof, not the caller, is the
// authentication. Proof verification and payload decoding happen before the
// ledger entry is consumed, and the consume itself is kind-checked, so a
// forged, malformed, or misrouted callback leaves the request pending and a
// later legitimate delivery can still resolve it.
func (p *Protocol) ResolveRiskEvaluation(ctx context.Context, cb oracle.Callback) error {
	if err := p.verifier.Verify(cb.RequestID, cb.Payload, cb.Proof); err != nil {
		return err
	}
	highRisk, err := oracle.DecodeBool(cb.Payload)
	if err != nil {
		return err
	}

	recordID, err := p.ledger.Resolve(cb.RequestID, cipherwatch.KindRiskEvaluation)
	if err != nil {
		return err
	}

	if err := p.records.MarkHighRisk(recordID, highRisk); err != nil {
		return err
	}
	p.mu.Lock()
	p.evaluated[recordID] = true
	p.mu.Unlock()

	p.log.Info(ctx, "risk evaluation resolved",
		"record_id", recordID,
		"request_id", string(cb.RequestID),
		"high_risk", highRisk,
	)
	return nil
}

// RequestReveal issues a content-reveal request for a high-risk record.
// Counselor only. A record whose reveal is already in flight, or already
// revealed, rejects with ErrAlreadyRevealed.
func (p *Protocol) RequestReveal(ctx context.Context, caller cipherwatch.Identity, recordID int64) (cipherwatch.RequestID, error) {
	if caller != p.counselor {
		return "", cipherwatch.ErrUnauthorized
	}
	rec, err := p.records.Get(recordID)
	if err != nil {
		return "", err
	}
	if !rec.HighRisk {
		return "", cipherwatch.ErrNotHighRisk
	}
	alert, err := p.records.Alert(recordID)
	if err != nil {
		return "", err
	}
	if alert.Revealed {
		return "", cipherwatch.ErrAlreadyRevealed
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.revealPending[recordID] {
		return "", cipherwatch.ErrAlreadyRevealed
	}

	reqID, err := p.client.Request(ctx, cipherwatch.KindContentReveal, []cipherwatch.SealedValue{rec.Content})
	if err != nil {
		return "", fmt.Errorf("assessment: issue content reveal: %w", err)
	}
	if err := p.ledger.Register(reqID, recordID, cipherwatch.KindContentReveal); err != nil {
		return "", err
	}
	p.revealPending[recordID] = true

	p.log.Info(ctx, "content reveal requested",
		"record_id", recordID,
		"request_id", string(reqID),
	)
	return reqID, nil
}

// ResolveReveal accepts the oracle's decryption of a record's content.
// Ordering mirrors ResolveRiskEvaluation: verify, decode, then the
// kind-checked consume. The high-risk check defends against stale requests.
func (p *Protocol) ResolveReveal(ctx context.Context, cb oracle.Callback) error {
	if err := p.verifier.Verify(cb.RequestID, cb.Payload, cb.Proof); err != nil {
		return err
	}
	content, err := oracle.DecodeText(cb.Payload)
	if err != nil {
		return err
	}

	recordID, err := p.ledger.Resolve(cb.RequestID, cipherwatch.KindContentReveal)
	if err != nil {
		return err
	}

	rec, err := p.records.Get(recordID)
	if err != nil {
		return err
	}
	if !rec.HighRisk {
		return cipherwatch.ErrNotHighRisk
	}

	if err := p.records.SetAlertContent(recordID, content); err != nil {
		return err
	}
	p.mu.Lock()
	delete(p.revealPending, recordID)
	p.mu.Unlock()

	p.log.Info(ctx, "content revealed",
		"record_id", recordID,
		"request_id", string(cb.RequestID),
		logging.Sealed("content"),
	)
	return nil
}

// ReadAlert returns the record's alert content and reveal flag. Counselor
// only. Content is empty whenever revealed is false, regardless of the
// record's risk state: reveal state, not risk state, gates visibility.
func (p *Protocol) ReadAlert(caller cipherwatch.Identity, recordID int64) (string, bool, error) {
	if caller != p.counselor {
		return "", false, cipherwatch.ErrUnauthorized
	}
	alert, err := p.records.Alert(recordID)
	if err != nil {
		return "", false, err
	}
	if !alert.Revealed {
		return "", false, nil
	}
	return alert.Content, true, nil
}

// Status reports the record's current state. Read-only; callable by anyone
// since it exposes no sealed or revealed data.
func (p *Protocol) Status(recordID int64) (State, error) {
	rec, err := p.records.Get(recordID)
	if err != nil {
		return "", err
	}
	alert, err := p.records.Alert(recordID)
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	evaluated := p.evaluated[recordID]
	pending := p.revealPending[recordID]
	p.mu.Unlock()

	switch {
	case !evaluated:
		return StateEvaluating, nil
	case !rec.HighRisk:
		return StateLowRisk, nil
	case alert.Revealed:
		return StateRevealed, nil
	case pending:
		return StateRevealRequested, nil
	default:
		return StateHighRisk, nil
	}
}
