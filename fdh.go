package trapcode

import "github.com/lx/trapcode/subtle"

// fdhRounds is the number of rounds of the file-level, byte-granular
// Feistel network that acts as a full-domain hash over the padded file.
const fdhRounds = 3

// fdh applies (or, with reverse set, un-applies) the file-level FDH: split
// data into equal left/right halves, then for fdhRounds rounds XOR an
// Expand-derived pad into the right half and swap, exactly mirroring the
// per-block Feistel structure in subtle but at byte granularity over the
// whole file. len(data) must be even (callers guarantee this by only ever
// calling fdh on ShardSize-multiple buffers).
func fdh(data []byte, reverse bool) []byte {
	half := len(data) / 2
	left := append([]byte(nil), data[:half]...)
	right := append([]byte(nil), data[half:]...)

	for r := 0; r < fdhRounds; r++ {
		var round byte
		if reverse {
			round = byte(fdhRounds - 1 - r)
		} else {
			round = byte(r)
		}

		pad := subtle.Expand([]byte{round}, left, len(right))
		for i := range right {
			right[i] ^= pad[i]
		}

		if r < fdhRounds-1 {
			left, right = right, left
		}
	}

	out := make([]byte, 0, len(data))
	out = append(out, left...)
	out = append(out, right...)
	return out
}
