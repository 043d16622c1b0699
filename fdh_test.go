package trapcode

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestFDHInvolution(t *testing.T) {
	v := []byte{
		0x00, 0x01, 0x02, 0x03,
		0x00, 0x01, 0x02, 0x03,
		0x00, 0x01, 0x02, 0x03,
		0x00, 0x01, 0x02, 0x03,
	}

	w := fdh(v, false)
	w = fdh(w, true)

	if !bytes.Equal(v, w) {
		t.Fatalf("fdh(fdh(v, fwd), rev) = %x, want %x", w, v)
	}
}

func TestFDHInvolutionRandom(t *testing.T) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}

	got := fdh(fdh(buf, false), true)
	if !bytes.Equal(got, buf) {
		t.Fatalf("fdh round trip mismatch: got %x, want %x", got, buf)
	}
}

func TestFDHChangesInput(t *testing.T) {
	buf := make([]byte, 2*ShardSize)
	if _, err := rand.Read(buf); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	out := fdh(buf, false)
	if bytes.Equal(out, buf) {
		t.Fatalf("fdh forward returned its input unchanged")
	}
	if len(out) != len(buf) {
		t.Fatalf("fdh changed length: got %d, want %d", len(out), len(buf))
	}
}
