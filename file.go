// Package trapcode implements a file encoder built around a
// leakage-resilient trapdoor permutation (a tweaked, Feistel-wrapped RSA
// permutation, see the subtle package) composed with a Reed-Solomon
// erasure code. Given a byte buffer and an EncodingKey, it produces a set
// of fixed-size shards, any sufficient subset of which can be decoded
// (with the matching DecodingKey) and reassembled to recover the
// original bytes.
package trapcode

import "github.com/lx/trapcode/subtle"

// ShardSize is the fixed byte size of every shard, plaintext or encoded.
const ShardSize = subtle.ShardSize

// maxShards bounds the number of shards a single File may have: shard
// indices are stored as uint16 on the wire, so the count must stay below
// 2^16.
const maxShards = 1 << 16

// Header describes a File's logical shape without carrying any shard
// payload: the original byte length, from which the number of data
// shards is derived.
type Header struct {
	Length uint64
}

// Shards returns the number of data shards ⌈Length / ShardSize⌉.
func (h Header) Shards() int {
	if h.Length == 0 {
		return 0
	}
	return int((h.Length + ShardSize - 1) / ShardSize)
}

// File is an immutable, padded, FDH-permuted view of an input buffer,
// split into ShardSize-byte Shards. It is the unit the rest of the
// package (packing, encoding, erasure coding) operates on.
type File struct {
	Length uint64
	Shards []Shard
}

// NewFile pads data with zero bytes to a ShardSize multiple, applies the
// file-level full-domain hash (fdh.go) over the padded buffer, and splits
// the result into Shards. The original length is retained so Unpack can
// strip the padding. It returns ErrInputTooLarge if the padded length
// would require 2^16 or more shards.
func NewFile(data []byte) (*File, error) {
	padded := pad(data, ShardSize)

	numShards := len(padded) / ShardSize
	if numShards >= maxShards {
		return nil, ErrInputTooLarge
	}

	hashed := fdh(padded, false)

	shards := make([]Shard, numShards)
	for idx := 0; idx < numShards; idx++ {
		var s Shard
		s.Idx = uint16(idx)
		copy(s.Data[:], hashed[idx*ShardSize:(idx+1)*ShardSize])
		shards[idx] = s
	}

	return &File{
		Length: uint64(len(data)),
		Shards: shards,
	}, nil
}

// Unpack concatenates the File's shards in index order, reverses the
// file-level FDH, and truncates the result back to the original length.
func (f *File) Unpack() []byte {
	buf := make([]byte, 0, len(f.Shards)*ShardSize)
	for _, s := range f.Shards {
		buf = append(buf, s.Data[:]...)
	}

	buf = fdh(buf, true)

	if uint64(len(buf)) > f.Length {
		buf = buf[:f.Length]
	}
	return buf
}

// pad copies data into a new buffer, zero-extended to the next multiple
// of size (data itself is left untouched if already a multiple).
func pad(data []byte, size int) []byte {
	padded := len(data)
	if rem := padded % size; rem != 0 {
		padded += size - rem
	}
	out := make([]byte, padded)
	copy(out, data)
	return out
}
