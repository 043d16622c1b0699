// Package tinkx integrates trapcode's EncodingKey with Tink's registry, so
// an EncodingKey can be generated, stored, and retrieved through a
// keyset.Handle like any other Tink primitive.
package tinkx

import (
	"fmt"

	"github.com/google/tink/go/core/registry"
	"github.com/google/tink/go/proto/tink_go_proto"
	"google.golang.org/protobuf/proto"

	"github.com/lx/trapcode"
)

// KeyTypeURL is the type URL under which trapcode EncodingKeys are
// registered with Tink.
const KeyTypeURL = "type.googleapis.com/github.lx.trapcode.EncodingKey"

// KeyManager implements registry.KeyManager, letting Tink generate and
// wrap trapcode EncodingKeys as KeyData.
type KeyManager struct{}

// NewKeyManager returns a KeyManager ready to register with
// registry.RegisterKeyManager.
func NewKeyManager() *KeyManager {
	return &KeyManager{}
}

// Primitive parses serializedKey (trapcode's EncodingKey wire format) and
// returns the resulting *trapcode.EncodingKey.
func (km *KeyManager) Primitive(serializedKey []byte) (interface{}, error) {
	key, err := trapcode.DeserializeEncodingKey(serializedKey)
	if err != nil {
		return nil, fmt.Errorf("tinkx: parsing encoding key: %w", err)
	}
	return key, nil
}

// DoesSupport reports whether typeURL is the trapcode EncodingKey type.
func (km *KeyManager) DoesSupport(typeURL string) bool {
	return typeURL == KeyTypeURL
}

// TypeURL returns the type URL this KeyManager manages.
func (km *KeyManager) TypeURL() string {
	return KeyTypeURL
}

// NewKey is not supported: trapcode has no registered protobuf message for
// its key material, so this always returns an error and generates no key.
// Callers should go through NewKeyData instead, which Tink's
// keyset.NewHandle uses in practice.
func (km *KeyManager) NewKey(serializedKeyTemplate []byte) (proto.Message, error) {
	return nil, fmt.Errorf("tinkx: NewKey is not supported, use NewKeyData")
}

// NewKeyData generates a fresh EncodingKey and wraps its serialized form
// in a Tink KeyData record. The key template is ignored; trapcode keys
// have no size or parameter choices to select between.
func (km *KeyManager) NewKeyData(serializedKeyTemplate []byte) (*tink_go_proto.KeyData, error) {
	key, err := trapcode.NewEncodingKey()
	if err != nil {
		return nil, fmt.Errorf("tinkx: generating encoding key: %w", err)
	}

	return &tink_go_proto.KeyData{
		TypeUrl:         KeyTypeURL,
		Value:           key.Serialize(),
		KeyMaterialType: tink_go_proto.KeyData_ASYMMETRIC_PRIVATE,
	}, nil
}

var _ registry.KeyManager = (*KeyManager)(nil)

// KeyTemplate returns the Tink key template for trapcode EncodingKeys.
// RSA modulus generation is slow, so keysets built from this template
// should be generated once and persisted rather than regenerated per run.
func KeyTemplate() *tink_go_proto.KeyTemplate {
	return &tink_go_proto.KeyTemplate{
		TypeUrl:          KeyTypeURL,
		OutputPrefixType: tink_go_proto.OutputPrefixType_RAW,
	}
}
