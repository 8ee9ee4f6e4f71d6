package oracle

import (
	"crypto/sha256"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/cipherwatch/cipherwatch-go/pkg/cipherwatch"
)

// CallbackDigest computes the message the oracle signs for a callback:
// SHA-256 over the request identifier, a zero separator, and the cleartext
// payload. The separator keeps (id, payload) pairs unambiguous.
func CallbackDigest(id cipherwatch.RequestID, payload []byte) [32]byte {
	h := sha256.New()
	h.Write([]byte(id))
	h.Write([]byte{0x00})
	h.Write(payload)
	var digest [32]byte
	copy(digest[:], h.Sum(nil))
	return digest
}

// Verifier authenticates inbound callbacks against the oracle's known
// secp256k1 signing key. Verification must happen before any state mutation;
// the assessment protocol calls Verify first and only then touches the
// request ledger.
type Verifier struct {
	pub *btcec.PublicKey
}

// NewVerifier returns a Verifier for the given signing authority.
func NewVerifier(pub *btcec.PublicKey) (*Verifier, error) {
	if pub == nil {
		return nil, errors.New("oracle: nil public key")
	}
	return &Verifier{pub: pub}, nil
}

// ParseVerifier builds a Verifier from a serialized (compressed or
// uncompressed) secp256k1 public key.
func ParseVerifier(pubKeyBytes []byte) (*Verifier, error) {
	pub, err := btcec.ParsePubKey(pubKeyBytes)
	if err != nil {
		return nil, err
	}
	return &Verifier{pub: pub}, nil
}

// Verify checks that proof is a DER signature over CallbackDigest(id,
// payload) by the oracle's key. It fails with ErrInvalidProof and performs
// no other work; decoding the payload is a separate step.
func (v *Verifier) Verify(id cipherwatch.RequestID, payload, proof []byte) error {
	sig, err := btcecdsa.ParseDERSignature(proof)
	if err != nil {
		return cipherwatch.ErrInvalidProof
	}
	digest := CallbackDigest(id, payload)
	if !sig.Verify(digest[:], v.pub) {
		return cipherwatch.ErrInvalidProof
	}
	return nil
}
