// Package sealing is a reference implementation of the external sealing
// provider: it produces SealedValue handles with AES-256-GCM under a key the
// protocol core never sees. Only the oracle side (mockoracle, the daemon,
// examples) imports this package; the core packages treat the handles as
// opaque bytes, and pkg/cipherwatch/internalcheck enforces that boundary.
package sealing

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"io"

	"github.com/cipherwatch/cipherwatch-go/pkg/cipherwatch"
)

var (
	// ErrInvalidKeySize indicates the key is not 32 bytes (AES-256).
	ErrInvalidKeySize = errors.New("sealing: key must be 32 bytes")

	// ErrUnsealFailed indicates the handle did not authenticate under the
	// codec's key.
	ErrUnsealFailed = errors.New("sealing: unseal failed")

	// ErrInvalidHandle indicates the handle is too short to carry a nonce.
	ErrInvalidHandle = errors.New("sealing: invalid handle")

	// ErrNotAScore indicates an unsealed value is not an 8-byte score.
	ErrNotAScore = errors.New("sealing: value is not a score")
)

// Codec seals and unseals values under a single symmetric key.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec builds a Codec for the given 32-byte key.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) != 32 {
		return nil, ErrInvalidKeySize
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Codec{aead: aead}, nil
}

// GenerateKey returns a fresh random 256-bit sealing key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	return key, nil
}

// seal encrypts plaintext into a handle (nonce prepended) and wipes the
// plaintext buffer.
func (c *Codec) seal(plaintext []byte) (cipherwatch.SealedValue, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return cipherwatch.SealedValue{}, err
	}
	handle := c.aead.Seal(nonce, nonce, plaintext, nil)
	cipherwatch.ZeroizeBytes(plaintext)
	return cipherwatch.NewSealedValue(handle), nil
}

func (c *Codec) unseal(v cipherwatch.SealedValue) ([]byte, error) {
	handle := v.Bytes()
	nonceSize := c.aead.NonceSize()
	if len(handle) < nonceSize {
		return nil, ErrInvalidHandle
	}
	nonce, ciphertext := handle[:nonceSize], handle[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrUnsealFailed
	}
	return plaintext, nil
}

// SealText seals a text value, such as message content.
func (c *Codec) SealText(s string) (cipherwatch.SealedValue, error) {
	return c.seal([]byte(s))
}

// UnsealText recovers a sealed text value.
func (c *Codec) UnsealText(v cipherwatch.SealedValue) (string, error) {
	plaintext, err := c.unseal(v)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// SealScore seals a numeric risk score.
func (c *Codec) SealScore(score uint64) (cipherwatch.SealedValue, error) {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, score)
	return c.seal(buf)
}

// UnsealScore recovers a sealed risk score.
func (c *Codec) UnsealScore(v cipherwatch.SealedValue) (uint64, error) {
	plaintext, err := c.unseal(v)
	if err != nil {
		return 0, err
	}
	if len(plaintext) != 8 {
		return 0, ErrNotAScore
	}
	return binary.BigEndian.Uint64(plaintext), nil
}
