package subtle

import (
	"encoding/binary"
	"math/big"
)

// feistelRounds is the number of rounds of the per-block Feistel network
// that mixes S0 into S1 before/after each RSA round.
const feistelRounds = 8

// blockRounds is the number of Feistel+RSA rounds applied by Encode/Decode.
const blockRounds = 2

// Block is a single unit of the trapdoor permutation: a pair of big
// integers (S0, S1), each strictly less than the modulus in scope,
// addressed by a shard index and a block index within that shard.
type Block struct {
	S0, S1 *big.Int
}

// blockTweak is the 6-byte domain separator (shard_idx, block_idx) mixed
// into every call to the Feistel round function for this block, ensuring
// identical plaintext blocks at different positions encode differently.
func blockTweak(shardIdx uint16, blockIdx uint32) [6]byte {
	var tw [6]byte
	binary.LittleEndian.PutUint16(tw[0:2], shardIdx)
	binary.LittleEndian.PutUint32(tw[2:6], blockIdx)
	return tw
}

// roundFunction implements F(round_tweak, v) = Expand(round_tweak,
// v.Bytes(), len(n)+16) mod n, the pseudorandom function driving each
// Feistel round.
func roundFunction(round byte, tweak [6]byte, v, n *big.Int) *big.Int {
	roundTweak := make([]byte, 0, 7)
	roundTweak = append(roundTweak, round)
	roundTweak = append(roundTweak, tweak[:]...)

	size := (n.BitLen()+7)/8 + 16
	random := Expand(roundTweak, v.Bytes(), size)

	f := new(big.Int).SetBytes(random)
	return f.Mod(f, n)
}

// feistel runs the feistelRounds-round Feistel network over (S0, S1),
// forward if reverse is false, backward (its exact inverse) if reverse is
// true. Both S0 and S1 must already be strictly less than n.
func (b *Block) feistel(reverse bool, tweak [6]byte, n *big.Int) {
	for r := 0; r < feistelRounds; r++ {
		var round byte
		if reverse {
			round = byte(feistelRounds - 1 - r)
		} else {
			round = byte(r)
		}

		p := roundFunction(round, tweak, b.S0, n)

		var mixed *big.Int
		if reverse {
			// b.S1 *= P
			mixed = new(big.Int).Mul(b.S1, p)
		} else {
			// b.S1 *= P^-1
			pInv := new(big.Int).ModInverse(p, n)
			mixed = new(big.Int).Mul(b.S1, pInv)
		}
		mixed.Mod(mixed, n)

		if r < feistelRounds-1 {
			b.S0, b.S1 = mixed, b.S0
		} else {
			// last round: no swap
			b.S1 = mixed
		}
	}
}

// roundInv applies one round of decoding: the public cubing map on both
// halves, followed by the reverse Feistel network.
func (b *Block) roundInv(tweak [6]byte, n *big.Int) {
	b.S0 = RSAP(b.S0, n)
	b.S1 = RSAP(b.S1, n)
	b.feistel(true, tweak, n)
}

// round applies one round of encoding: the forward Feistel network,
// followed by the trapdoor map on both halves.
func (b *Block) round(tweak [6]byte, n, d *big.Int) {
	b.feistel(false, tweak, n)
	b.S0 = RSAPInv(b.S0, n, d)
	b.S1 = RSAPInv(b.S1, n, d)
}

// Encode applies blockRounds forward rounds, using the trapdoor d. Both S0
// and S1 must be strictly less than n.
func (b *Block) Encode(shardIdx uint16, blockIdx uint32, n, d *big.Int) {
	tweak := blockTweak(shardIdx, blockIdx)
	for r := 0; r < blockRounds; r++ {
		b.round(tweak, n, d)
	}
}

// Decode applies blockRounds reverse rounds using only the public modulus
// n. Decode(Encode(b)) reproduces b bit-for-bit.
func (b *Block) Decode(shardIdx uint16, blockIdx uint32, n *big.Int) {
	tweak := blockTweak(shardIdx, blockIdx)
	for r := 0; r < blockRounds; r++ {
		b.roundInv(tweak, n)
	}
}
