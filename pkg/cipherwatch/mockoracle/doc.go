// Package mockoracle provides an in-memory oracle implementation for tests,
// examples, and the development daemon.
//
// The mock implements the oracle.Client contract: requests return a unique
// identifier immediately, and the signed callback is queued rather than
// delivered. Tests pump deliveries explicitly with Next and Dispatch, which
// makes the asynchronous callback schedule fully deterministic; Serve drives
// deliveries continuously for a running daemon. A request whose delivery is
// never pumped models the oracle going silent.
//
// Results are computed by unsealing the request's values with the shared
// sealing codec, which stands in for the oracle's confidential-computation
// capability. Callback proofs are DER signatures under the mock's own
// secp256k1 key; Forge produces well-formed proofs under the wrong key for
// negative tests.
package mockoracle
