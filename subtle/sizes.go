// Package subtle provides the low-level cryptographic primitives behind the
// trapcode trapdoor permutation: a deterministic keyed stream expander, the
// RSA-style modular cubing map and its trapdoor inverse, and the Feistel+RSA
// block permutation built from them. Callers outside this module should use
// the top-level trapcode package instead; subtle exposes raw, key-agnostic
// operations with no format handling or erasure coding.
package subtle

// PrimeSizeBits is the bit length of each of the two primes making up the
// RSA modulus.
const PrimeSizeBits = 1025

// ModulusSizeBits is the bit length of the RSA modulus n = p*q.
const ModulusSizeBits = 2 * PrimeSizeBits

// BlockHalfSize is the byte width of one half of a block, i.e. one of the
// two big integers (S0, S1) that make up a Block. It is fixed at 256 bytes
// (2048 bits), one prime-size-rounded-down short of ModulusSizeBits, so that
// a random half is smaller in bit length than n and therefore, given n is
// the product of two ~1025-bit primes, trivially less than n without any
// rejection sampling.
const BlockHalfSize = 256

// BlockSize is the byte width of a full block (both halves).
const BlockSize = 2 * BlockHalfSize

// ShardSize is the fixed byte size of one shard, before and after encoding.
const ShardSize = 1024

// ShardBlocks is the number of Blocks packed into one shard.
const ShardBlocks = ShardSize / BlockSize

// ShardElems is the number of two-byte elements in a shard. The
// Reed-Solomon layer codes whole byte shards and does not use this
// grouping.
const ShardElems = ShardSize / 2

func init() {
	if ShardSize%BlockSize != 0 {
		panic("subtle: ShardSize must be a multiple of BlockSize")
	}
}
