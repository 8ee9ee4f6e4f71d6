// Package oracle defines the contract between the protocol core and the
// off-chain decryption oracle.
//
// Outbound, a Client turns (kind, sealed values) into an opaque request
// identifier; the computation itself happens out of process. Inbound, the
// transport delivers a Callback carrying the cleartext result and a proof: a
// DER-encoded secp256k1 signature over CallbackDigest(request id, payload).
// The Verifier checks that proof against the oracle's known signing key.
//
// The package does not dictate a transport. Tests and the development daemon
// use the in-memory mockoracle package; production deployments bind Client
// and callback delivery to whatever wire they use.
package oracle
