package subtle

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
)

// Expand deterministically stretches (tweak, value) into size pseudorandom
// bytes. It hashes tweak‖value with SHA-256 to derive an AES-256 key, then
// runs AES-256-CTR with a zero IV over a zero buffer of length size; the
// keystream itself is the output. Two distinct tweaks yield independent
// streams; the same (tweak, value, size) always yields the same bytes.
func Expand(tweak, value []byte, size int) []byte {
	h := sha256.New()
	h.Write(tweak)
	h.Write(value)
	key := h.Sum(nil)

	block, err := aes.NewCipher(key)
	if err != nil {
		// key is always exactly 32 bytes (a SHA-256 digest), so this
		// can only fail if the crypto/aes package itself is broken.
		panic(err)
	}

	iv := make([]byte, aes.BlockSize)
	stream := cipher.NewCTR(block, iv)

	out := make([]byte, size)
	stream.XORKeyStream(out, out)
	return out
}
