package trapcode

import (
	"math/big"

	"github.com/lx/trapcode/subtle"
)

// Shard is a ShardSize-byte unit of a File, addressed by index. Its
// payload is handed to the Reed-Solomon layer (rs.go) as one whole byte
// shard, and to the trapdoor permutation (via Pack) as subtle.ShardBlocks
// Blocks.
type Shard struct {
	Idx  uint16
	Data [ShardSize]byte
}

// EncodedShard is the block-permutation view of a Shard: the same
// ShardSize bytes regrouped into subtle.ShardBlocks fixed-size Blocks,
// each a pair of big integers. EncodingKey.Encode and DecodingKey.Decode
// mutate an EncodedShard's Blocks in place.
type EncodedShard struct {
	Idx    uint16
	Blocks [subtle.ShardBlocks]subtle.Block
}

// Pack splits s's bytes into subtle.ShardBlocks consecutive
// subtle.BlockSize slices, each further split into two
// subtle.BlockHalfSize halves interpreted as big-endian unsigned
// integers, producing the (S0, S1) pair of each Block.
func Pack(s Shard) EncodedShard {
	var es EncodedShard
	es.Idx = s.Idx

	for i := 0; i < subtle.ShardBlocks; i++ {
		off := i * subtle.BlockSize
		s0 := s.Data[off : off+subtle.BlockHalfSize]
		s1 := s.Data[off+subtle.BlockHalfSize : off+subtle.BlockSize]
		es.Blocks[i] = subtle.Block{
			S0: new(big.Int).SetBytes(s0),
			S1: new(big.Int).SetBytes(s1),
		}
	}

	return es
}

// Unpack is the inverse of Pack: each Block's integers are serialized to
// their minimal big-endian byte string, zero-padded on the left to
// exactly subtle.BlockHalfSize bytes, and concatenated in order. The
// left-padding is essential: after Decode, a big integer's minimal
// encoding may be shorter than BlockHalfSize and must be restored to
// fixed width to land at the right byte offset.
func Unpack(es EncodedShard) Shard {
	var s Shard
	s.Idx = es.Idx

	for i := 0; i < subtle.ShardBlocks; i++ {
		off := i * subtle.BlockSize
		putHalf(s.Data[off:off+subtle.BlockHalfSize], es.Blocks[i].S0)
		putHalf(s.Data[off+subtle.BlockHalfSize:off+subtle.BlockSize], es.Blocks[i].S1)
	}

	return s
}

// putHalf writes v's big-endian bytes into dst (length
// subtle.BlockHalfSize), left-padded with zeros.
func putHalf(dst []byte, v *big.Int) {
	b := v.Bytes()
	for i := range dst {
		dst[i] = 0
	}
	copy(dst[len(dst)-len(b):], b)
}
