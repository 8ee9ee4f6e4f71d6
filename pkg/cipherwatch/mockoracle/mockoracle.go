package mockoracle

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/google/uuid"

	"github.com/cipherwatch/cipherwatch-go/internal/sealing"
	"github.com/cipherwatch/cipherwatch-go/pkg/cipherwatch"
	"github.com/cipherwatch/cipherwatch-go/pkg/cipherwatch/oracle"
)

// Handler receives delivered callbacks. assessment.Protocol satisfies it.
type Handler interface {
	ResolveRiskEvaluation(ctx context.Context, cb oracle.Callback) error
	ResolveReveal(ctx context.Context, cb oracle.Callback) error
}

// Oracle is an in-process stand-in for the off-chain decryption oracle. It
// unseals values with a shared sealing codec, computes the result at request
// time, and signs the callback with its own secp256k1 key -- but holds the
// callback until it is pumped (Next) or served (Serve). Undelivered
// callbacks model the oracle's seconds-to-never schedule: a request whose
// callback is never pumped simply stalls, which is the protocol's accepted
// terminal-stall outcome.
type Oracle struct {
	signer *btcec.PrivateKey
	codec  *sealing.Codec

	mu     sync.Mutex
	queue  []Delivery
	notify chan struct{}
}

// Delivery is one computed callback waiting to be handed to the protocol.
type Delivery struct {
	Kind     cipherwatch.RequestKind
	Callback oracle.Callback
}

// New builds an Oracle around the given sealing codec, generating a fresh
// signing key.
func New(codec *sealing.Codec) (*Oracle, error) {
	if codec == nil {
		return nil, errors.New("mockoracle: nil codec")
	}
	signer, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	return &Oracle{
		signer: signer,
		codec:  codec,
		notify: make(chan struct{}, 1),
	}, nil
}

// PublicKey returns the oracle's signing authority, for constructing the
// protocol's CallbackVerifier.
func (o *Oracle) PublicKey() *btcec.PublicKey {
	return o.signer.PubKey()
}

// Request implements oracle.Client. The result is computed immediately but
// queued; nothing reaches the protocol until the callback is delivered.
func (o *Oracle) Request(_ context.Context, kind cipherwatch.RequestKind, values []cipherwatch.SealedValue) (cipherwatch.RequestID, error) {
	var payload []byte
	switch kind {
	case cipherwatch.KindRiskEvaluation:
		if len(values) != 2 {
			return "", fmt.Errorf("mockoracle: risk evaluation wants (score, threshold), got %d values", len(values))
		}
		score, err := o.codec.UnsealScore(values[0])
		if err != nil {
			return "", fmt.Errorf("mockoracle: unseal score: %w", err)
		}
		threshold, err := o.codec.UnsealScore(values[1])
		if err != nil {
			return "", fmt.Errorf("mockoracle: unseal threshold: %w", err)
		}
		payload = oracle.EncodeBool(score > threshold)
	case cipherwatch.KindContentReveal:
		if len(values) != 1 {
			return "", fmt.Errorf("mockoracle: content reveal wants one value, got %d", len(values))
		}
		text, err := o.codec.UnsealText(values[0])
		if err != nil {
			return "", fmt.Errorf("mockoracle: unseal content: %w", err)
		}
		payload = oracle.EncodeText(text)
	default:
		return "", fmt.Errorf("mockoracle: unknown request kind %v", kind)
	}

	id := cipherwatch.RequestID(uuid.NewString())
	digest := oracle.CallbackDigest(id, payload)
	proof := btcecdsa.Sign(o.signer, digest[:]).Serialize()

	o.mu.Lock()
	o.queue = append(o.queue, Delivery{
		Kind:     kind,
		Callback: oracle.Callback{RequestID: id, Payload: payload, Proof: proof},
	})
	o.mu.Unlock()

	select {
	case o.notify <- struct{}{}:
	default:
	}
	return id, nil
}

// Next pops the oldest pending delivery. Tests use this to pump callbacks
// one at a time and to leave requests deliberately stalled.
func (o *Oracle) Next() (Delivery, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.queue) == 0 {
		return Delivery{}, false
	}
	d := o.queue[0]
	o.queue = o.queue[1:]
	return d, true
}

// Pending reports how many callbacks are queued but undelivered.
func (o *Oracle) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.queue)
}

// Dispatch hands one delivery to the handler entry point matching its kind.
func Dispatch(ctx context.Context, h Handler, d Delivery) error {
	switch d.Kind {
	case cipherwatch.KindRiskEvaluation:
		return h.ResolveRiskEvaluation(ctx, d.Callback)
	case cipherwatch.KindContentReveal:
		return h.ResolveReveal(ctx, d.Callback)
	default:
		return fmt.Errorf("mockoracle: unknown delivery kind %v", d.Kind)
	}
}

// Serve delivers callbacks to the handler as they become available, until
// ctx is cancelled. Handler errors are swallowed: a rejected callback is the
// protocol's verdict, not a transport failure.
func (o *Oracle) Serve(ctx context.Context, h Handler) error {
	for {
		for {
			d, ok := o.Next()
			if !ok {
				break
			}
			_ = Dispatch(ctx, h, d)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-o.notify:
		}
	}
}

// Forge re-signs a callback with a throwaway key. The result is well-formed
// DER that must still fail proof verification against the real oracle's key.
func Forge(cb oracle.Callback) (oracle.Callback, error) {
	impostor, err := btcec.NewPrivateKey()
	if err != nil {
		return oracle.Callback{}, err
	}
	digest := oracle.CallbackDigest(cb.RequestID, cb.Payload)
	cb.Proof = btcecdsa.Sign(impostor, digest[:]).Serialize()
	return cb, nil
}
