package trapcode

import (
	"fmt"

	"github.com/klauspost/reedsolomon"
)

// Shards returns the Header describing f and a codeword of
// header.Shards()+expansion Shards: the first header.Shards() positions
// are f's own data shards, unchanged; the remaining expansion positions
// are parity shards produced by erasure-coding the whole vector.
//
// Each shard is handed to github.com/klauspost/reedsolomon as one whole
// byte shard (the codec works over GF(2^8), byte by byte); the two-byte
// subtle.ShardElems grouping is not used. Any header.Shards() of the
// header.Shards()+expansion shards suffice to reconstruct. The codec
// accepts at most 256 shards in total, so with a positive expansion
// Shards returns an error when header.Shards()+expansion exceeds 256.
// See SPEC_FULL.md §4.6 for the choice of codec.
func (f *File) Shards(expansion int) (Header, []Shard, error) {
	header := Header{Length: f.Length}
	k := header.Shards()
	codeLen := k + expansion

	code := make([]Shard, codeLen)
	for i := 0; i < codeLen; i++ {
		if i < k {
			code[i] = f.Shards[i]
		} else {
			code[i] = Shard{Idx: uint16(i)}
		}
	}

	if expansion > 0 && k > 0 {
		enc, err := reedsolomon.New(k, expansion)
		if err != nil {
			return Header{}, nil, fmt.Errorf("trapcode: constructing reed-solomon codec: %w", err)
		}

		data := make([][]byte, codeLen)
		for i := range code {
			data[i] = code[i].Data[:]
		}
		if err := enc.Encode(data); err != nil {
			return Header{}, nil, fmt.Errorf("trapcode: reed-solomon encode: %w", err)
		}
	}

	return header, code, nil
}

// Reconstruct rebuilds a File's data shards from any sufficient subset of
// a codeword produced by Shards. It returns ErrInsufficientShards if
// fewer than header.Shards() shards are supplied, or ErrDuplicateIndex if
// two supplied shards share an index.
func Reconstruct(header Header, shards []Shard) (*File, error) {
	k := header.Shards()
	if len(shards) < k {
		return nil, ErrInsufficientShards
	}
	if k == 0 {
		return &File{Length: header.Length, Shards: nil}, nil
	}

	max := 0
	for _, s := range shards {
		if int(s.Idx) > max {
			max = int(s.Idx)
		}
	}

	sparse := make([][]byte, max+1)
	seen := make([]bool, max+1)
	for _, s := range shards {
		idx := int(s.Idx)
		if seen[idx] {
			return nil, ErrDuplicateIndex
		}
		seen[idx] = true

		buf := make([]byte, ShardSize)
		copy(buf, s.Data[:])
		sparse[idx] = buf
	}

	parity := (max + 1) - k
	if parity > 0 {
		enc, err := reedsolomon.New(k, parity)
		if err != nil {
			return nil, fmt.Errorf("trapcode: constructing reed-solomon codec: %w", err)
		}
		if err := enc.ReconstructData(sparse); err != nil {
			return nil, fmt.Errorf("trapcode: reed-solomon reconstruct: %w", err)
		}
	}

	dataShards := make([]Shard, k)
	for i := 0; i < k; i++ {
		var s Shard
		s.Idx = uint16(i)
		copy(s.Data[:], sparse[i])
		dataShards[i] = s
	}

	return &File{Length: header.Length, Shards: dataShards}, nil
}
