package trapcode

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func TestNewFileEmpty(t *testing.T) {
	f, err := NewFile(nil)
	if err != nil {
		t.Fatalf("NewFile(nil): %v", err)
	}
	if len(f.Shards) != 0 {
		t.Fatalf("empty input produced %d shards, want 0", len(f.Shards))
	}
	if got := f.Unpack(); len(got) != 0 {
		t.Fatalf("Unpack of empty file returned %d bytes, want 0", len(got))
	}
}

func TestNewFileExactlyOneShard(t *testing.T) {
	data := make([]byte, ShardSize)
	if _, err := rand.Read(data); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}

	f, err := NewFile(data)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if len(f.Shards) != 1 {
		t.Fatalf("got %d shards, want 1", len(f.Shards))
	}
	if got := f.Unpack(); !bytes.Equal(got, data) {
		t.Fatalf("Unpack round trip mismatch for exact-shard input")
	}
}

func TestNewFileUnpackRoundTrip(t *testing.T) {
	for _, n := range []int{1, 17, 1023, 1024, 1025, 1024 * 9, 1024*3 + 7} {
		data := make([]byte, n)
		if _, err := rand.Read(data); err != nil {
			t.Fatalf("rand.Read: %v", err)
		}
		f, err := NewFile(data)
		if err != nil {
			t.Fatalf("NewFile(len=%d): %v", n, err)
		}
		got := f.Unpack()
		if !bytes.Equal(got, data) {
			t.Fatalf("round trip mismatch for length %d", n)
		}
	}
}

func TestNewFileTooLarge(t *testing.T) {
	if testing.Short() {
		t.Skip("allocates a ~64MiB buffer; skipped in short mode")
	}
	data := make([]byte, maxShards*ShardSize)
	_, err := NewFile(data)
	if !errors.Is(err, ErrInputTooLarge) {
		t.Fatalf("NewFile with %d shards worth of data: got %v, want ErrInputTooLarge", maxShards, err)
	}
}

func TestHeaderShards(t *testing.T) {
	cases := []struct {
		length uint64
		want   int
	}{
		{0, 0},
		{1, 1},
		{ShardSize, 1},
		{ShardSize + 1, 2},
		{ShardSize * 4, 4},
	}
	for _, c := range cases {
		h := Header{Length: c.length}
		if got := h.Shards(); got != c.want {
			t.Errorf("Header{Length:%d}.Shards() = %d, want %d", c.length, got, c.want)
		}
	}
}
