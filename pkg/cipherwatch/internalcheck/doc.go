// Package internalcheck holds repository policy tests.
//
// The checks load the protocol packages with go/packages and enforce two
// rules that the compiler cannot: the core packages never import the sealing
// provider (the core must be unable to read sealed values), and sealed
// payloads are never hex-formatted into logs or errors.
package internalcheck
