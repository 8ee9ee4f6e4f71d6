// Package cipherwatch provides the core data model for the confidential
// risk-assessment protocol: sealed value handles, record and alert storage,
// and the pending-request ledger that correlates oracle requests with their
// eventual callbacks.
//
// # Sealed values
//
// A SealedValue is an opaque handle to a confidentially-held value. The
// packages under pkg/cipherwatch never decode one; evaluation and decryption
// are delegated to an external oracle that reports results asynchronously
// through signed callbacks (see the oracle and assessment subpackages).
//
// # Correlation and at-most-once resolution
//
// Every outbound oracle request is registered in a RequestLedger before the
// issuing operation returns. The ledger's Resolve is a kind-checked atomic
// consume: a request identifier resolves at most once, and only through the
// kind it was registered with, which is the replay guarantee the whole
// protocol leans on. There is no way to list or iterate pending requests.
//
// # Concurrency
//
// RecordStore and RequestLedger are safe for concurrent use. Each guards its
// state with a single mutex; operations are small and never block on I/O or
// on the oracle.
package cipherwatch
