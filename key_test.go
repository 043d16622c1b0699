package trapcode

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func randomShard(t *testing.T, idx uint16) Shard {
	t.Helper()
	var s Shard
	s.Idx = idx
	if _, err := rand.Read(s.Data[:]); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	return s
}

func TestEncodingKeySerializeRoundTrip(t *testing.T) {
	key, err := NewEncodingKey()
	if err != nil {
		t.Fatalf("NewEncodingKey: %v", err)
	}

	blob := key.Serialize()
	restored, err := DeserializeEncodingKey(blob)
	if err != nil {
		t.Fatalf("DeserializeEncodingKey: %v", err)
	}

	plain := randomShard(t, 1)
	encA := Pack(plain)
	encB := Pack(plain)

	key.Encode(&encA)
	restored.Encode(&encB)

	if !blocksEqual(encA, encB) {
		t.Fatalf("serialized/deserialized key encoded differently from the original")
	}
}

func TestDecodingKeySerializeRoundTrip(t *testing.T) {
	key, err := NewEncodingKey()
	if err != nil {
		t.Fatalf("NewEncodingKey: %v", err)
	}
	dk := key.Decoding()

	blob := dk.Serialize()
	restored, err := DeserializeDecodingKey(blob)
	if err != nil {
		t.Fatalf("DeserializeDecodingKey: %v", err)
	}

	if dk.N.Cmp(restored.N) != 0 {
		t.Fatalf("decoding key modulus changed across serialize/deserialize")
	}
}

func TestDeserializeEncodingKeyMalformed(t *testing.T) {
	cases := [][]byte{
		nil,
		{0x00},
		{0xff, 0xff, 0x01, 0x02}, // claims a length longer than the remaining bytes
	}
	for _, c := range cases {
		if _, err := DeserializeEncodingKey(c); err == nil {
			t.Errorf("DeserializeEncodingKey(%x): expected error, got nil", c)
		}
	}
}

func TestEncodingKeyCloneEquivalence(t *testing.T) {
	key, err := NewEncodingKey()
	if err != nil {
		t.Fatalf("NewEncodingKey: %v", err)
	}
	clone := key.Clone()

	plain := randomShard(t, 9)
	encA := Pack(plain)
	encB := Pack(plain)

	key.Encode(&encA)
	clone.Encode(&encB)

	if !blocksEqual(encA, encB) {
		t.Fatalf("cloned key encoded differently from the original")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	key, err := NewEncodingKey()
	if err != nil {
		t.Fatalf("NewEncodingKey: %v", err)
	}
	dk := key.Decoding()

	plain := randomShard(t, 3)
	enc := Pack(plain)

	key.Encode(&enc)
	dk.Decode(&enc)

	got := Unpack(enc)
	if !bytes.Equal(got.Data[:], plain.Data[:]) {
		t.Fatalf("decode(encode(shard)) != shard")
	}
}

func blocksEqual(a, b EncodedShard) bool {
	if a.Idx != b.Idx {
		return false
	}
	for i := range a.Blocks {
		if a.Blocks[i].S0.Cmp(b.Blocks[i].S0) != 0 {
			return false
		}
		if a.Blocks[i].S1.Cmp(b.Blocks[i].S1) != 0 {
			return false
		}
	}
	return true
}
