package trapcode

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/lx/trapcode/subtle"
)

// EncodingKey holds the RSA modulus n and trapdoor d (with the public
// exponent e=3 implicit) needed to encode shards. It carries no mutable
// scratch state, so, unlike the OpenSSL BigNumContext the original
// implementation needed, an EncodingKey value is already safe to use
// from a single goroutine at a time without any special cloning ritual;
// Clone exists purely so that concurrent workers each hold independent
// *big.Int values, never aliasing the same pointer across goroutines (see
// the concurrency notes in SPEC_FULL.md §5).
type EncodingKey struct {
	N, D *big.Int
}

// DecodingKey holds only the public modulus n, sufficient to decode
// shards but not to produce new valid encodings.
type DecodingKey struct {
	N *big.Int
}

// NewEncodingKey generates a fresh RSA modulus and trapdoor.
func NewEncodingKey() (*EncodingKey, error) {
	n, d, err := subtle.GenerateModulus()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	return &EncodingKey{N: n, D: d}, nil
}

// Encode applies the block trapdoor permutation to every Block in s, in
// ascending block-index order, tweaked by (s.Idx, blockIdx).
func (k *EncodingKey) Encode(s *EncodedShard) {
	for i := range s.Blocks {
		s.Blocks[i].Encode(s.Idx, uint32(i), k.N, k.D)
	}
}

// Decoding derives the DecodingKey corresponding to k, holding only the
// public modulus.
func (k *EncodingKey) Decoding() *DecodingKey {
	return &DecodingKey{N: new(big.Int).Set(k.N)}
}

// Clone returns an EncodingKey with independently-allocated copies of N
// and D, safe to hand to a different goroutine.
func (k *EncodingKey) Clone() *EncodingKey {
	return &EncodingKey{
		N: new(big.Int).Set(k.N),
		D: new(big.Int).Set(k.D),
	}
}

// Serialize encodes k as [len(n): uint16 big-endian][n bytes][d bytes].
func (k *EncodingKey) Serialize() []byte {
	n := k.N.Bytes()
	d := k.D.Bytes()

	out := make([]byte, 0, 2+len(n)+len(d))
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(n)))
	out = append(out, lenBuf[:]...)
	out = append(out, n...)
	out = append(out, d...)
	return out
}

// DeserializeEncodingKey parses the wire format produced by Serialize. It
// returns ErrMalformedKey if the input is shorter than the 2-byte length
// prefix, or if the length prefix claims as many bytes as remain or more,
// which would leave no bytes for d.
func DeserializeEncodingKey(data []byte) (*EncodingKey, error) {
	if len(data) < 2 {
		return nil, ErrMalformedKey
	}

	nLen := int(binary.BigEndian.Uint16(data[:2]))
	if nLen >= len(data)-2 {
		return nil, ErrMalformedKey
	}

	n := new(big.Int).SetBytes(data[2 : 2+nLen])
	d := new(big.Int).SetBytes(data[2+nLen:])
	return &EncodingKey{N: n, D: d}, nil
}

// Decode applies the block trapdoor permutation's inverse to every Block
// in s, in ascending block-index order, tweaked by (s.Idx, blockIdx).
func (k *DecodingKey) Decode(s *EncodedShard) {
	for i := range s.Blocks {
		s.Blocks[i].Decode(s.Idx, uint32(i), k.N)
	}
}

// Clone returns a DecodingKey with an independently-allocated copy of N.
func (k *DecodingKey) Clone() *DecodingKey {
	return &DecodingKey{N: new(big.Int).Set(k.N)}
}

// Serialize encodes k as the raw big-endian bytes of n, with no length
// prefix (the only field present).
func (k *DecodingKey) Serialize() []byte {
	return k.N.Bytes()
}

// DeserializeDecodingKey parses the wire format produced by Serialize.
func DeserializeDecodingKey(data []byte) (*DecodingKey, error) {
	if len(data) == 0 {
		return nil, ErrMalformedKey
	}
	return &DecodingKey{N: new(big.Int).SetBytes(data)}, nil
}
