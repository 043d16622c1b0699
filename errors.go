package trapcode

import "errors"

// Error kinds surfaced by this package. All are meant to be tested with
// errors.Is against the wrapped error returned by the failing call.
var (
	// ErrKeyGeneration indicates RSA key generation could not find a
	// usable (n, d) pair. See subtle.ErrKeyGeneration for the cause.
	ErrKeyGeneration = errors.New("trapcode: key generation failed")

	// ErrInputTooLarge indicates the input, once padded to a shard-size
	// multiple, would require 2^16 or more shards.
	ErrInputTooLarge = errors.New("trapcode: input too large")

	// ErrInsufficientShards indicates fewer than the required k data
	// shards were supplied to Reconstruct.
	ErrInsufficientShards = errors.New("trapcode: insufficient shards")

	// ErrDuplicateIndex indicates two supplied shards carried the same
	// index.
	ErrDuplicateIndex = errors.New("trapcode: duplicate shard index")

	// ErrMalformedKey indicates a serialized key blob was truncated or
	// otherwise could not be parsed.
	ErrMalformedKey = errors.New("trapcode: malformed serialized key")
)
