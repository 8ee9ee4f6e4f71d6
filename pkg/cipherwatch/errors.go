package cipherwatch

import "errors"

var (
	// ErrThresholdNotSet indicates a submission arrived before the counselor
	// configured the sealed comparison threshold.
	ErrThresholdNotSet = errors.New("cipherwatch: threshold not set")

	// ErrThresholdAlreadySet indicates an attempt to change the threshold
	// after its one-time assignment.
	ErrThresholdAlreadySet = errors.New("cipherwatch: threshold already set")

	// ErrUnauthorized indicates the caller is not the privileged counselor.
	ErrUnauthorized = errors.New("cipherwatch: unauthorized")

	// ErrNotFound indicates the record identifier was never allocated.
	ErrNotFound = errors.New("cipherwatch: record not found")

	// ErrNotHighRisk indicates a reveal operation on a record that was never
	// marked high risk.
	ErrNotHighRisk = errors.New("cipherwatch: record not high risk")

	// ErrAlreadyRevealed indicates the record's alert content has already
	// been revealed, or a reveal is already in flight.
	ErrAlreadyRevealed = errors.New("cipherwatch: alert already revealed")

	// ErrUnknownRequest indicates the request identifier is absent from the
	// ledger or was already consumed by an earlier callback.
	ErrUnknownRequest = errors.New("cipherwatch: unknown request")

	// ErrDuplicateRequest indicates the oracle client reused a request
	// identifier that is still pending.
	ErrDuplicateRequest = errors.New("cipherwatch: duplicate request")

	// ErrInvalidProof indicates the callback proof does not authenticate the
	// (request id, payload) pair against the oracle's signing key.
	ErrInvalidProof = errors.New("cipherwatch: invalid proof")

	// ErrMalformedPayload indicates the callback cleartext does not decode
	// as the shape the request kind expects.
	ErrMalformedPayload = errors.New("cipherwatch: malformed payload")
)
