package tinkx

import (
	"fmt"

	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"

	"github.com/lx/trapcode"
)

// New extracts the primary key material from handle and parses it as a
// trapcode EncodingKey. handle must have been created from KeyTemplate
// (directly, or via keyset.Read of a previously persisted keyset).
func New(handle *keyset.Handle) (*trapcode.EncodingKey, error) {
	if handle == nil {
		return nil, fmt.Errorf("tinkx: keyset handle cannot be nil")
	}

	ks := insecurecleartextkeyset.KeysetMaterial(handle)

	for _, k := range ks.Key {
		if k.KeyId != ks.PrimaryKeyId {
			continue
		}
		data := k.KeyData
		if data == nil || data.TypeUrl != KeyTypeURL {
			continue
		}
		return trapcode.DeserializeEncodingKey(data.Value)
	}

	return nil, fmt.Errorf("tinkx: key with ID %d not found or wrong type", ks.PrimaryKeyId)
}
