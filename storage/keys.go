package storage

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/vocdoni/ec-elgamal/crypto/ecc"
	"github.com/vocdoni/ec-elgamal/crypto/ecc/curves"
	"github.com/vocdoni/ec-elgamal/crypto/keys"
	"github.com/vocdoni/ec-elgamal/log"
)

// StoredKey is a named key pair. Secret is nil when only the public half
// was kept.
type StoredKey struct {
	Name      string   `cbor:"0,keyasint,omitempty"`
	CurveType string   `cbor:"1,keyasint,omitempty"`
	X         *big.Int `cbor:"2,keyasint,omitempty"`
	Y         *big.Int `cbor:"3,keyasint,omitempty"`
	Secret    *big.Int `cbor:"4,keyasint,omitempty"`
}

// Public returns the stored public key as a point.
func (k *StoredKey) Public() ecc.Point {
	return ecc.NewPoint(k.X, k.Y)
}

// HasSecret reports whether the secret scalar was stored.
func (k *StoredKey) HasSecret() bool {
	return k.Secret != nil
}

// KeyPair rebuilds the key pair from the stored secret, checking that the
// stored public key still matches it.
func (k *StoredKey) KeyPair() (*keys.KeyPair, error) {
	if !k.HasSecret() {
		return nil, fmt.Errorf("key %q has no secret", k.Name)
	}
	curve, err := curves.New(k.CurveType)
	if err != nil {
		return nil, err
	}
	kp, err := keys.DeriveKeyPair(curve, k.Secret)
	if err != nil {
		return nil, err
	}
	if !kp.Public.Equal(k.Public()) {
		return nil, fmt.Errorf("key %q: stored public key does not match its secret", k.Name)
	}
	return kp, nil
}

// SetKey stores kp under name, overwriting any previous key with that name.
// The secret scalar is only written when withSecret is true.
func (s *Storage) SetKey(name string, kp *keys.KeyPair, withSecret bool) error {
	if name == "" {
		return fmt.Errorf("empty key name")
	}
	if kp == nil || kp.Curve == nil || kp.Public.Inf {
		return fmt.Errorf("key %q: %w", name, keys.ErrInvalidPublicKey)
	}
	sk := &StoredKey{
		Name:      name,
		CurveType: kp.Curve.Name,
		X:         kp.Public.X,
		Y:         kp.Public.Y,
	}
	if withSecret {
		sk.Secret = kp.Secret
	}
	if err := s.setArtifact(keyPrefix, []byte(name), sk); err != nil {
		return fmt.Errorf("store key %q: %w", name, err)
	}
	log.Debugw("key stored", "name", name, "curve", sk.CurveType, "secret", withSecret)
	return nil
}

// Key loads the key stored under name. Returns ErrNotFound if it does not
// exist, and keys.ErrInvalidPublicKey for a record without both public
// coordinates.
func (s *Storage) Key(name string) (*StoredKey, error) {
	sk := &StoredKey{}
	if err := s.getArtifact(keyPrefix, []byte(name), sk); err != nil {
		return nil, fmt.Errorf("could not read key %q: %w", name, err)
	}
	if sk.X == nil || sk.Y == nil {
		return nil, fmt.Errorf("could not read key %q: %w: missing coordinates", name, keys.ErrInvalidPublicKey)
	}
	return sk, nil
}

// ListKeys returns the names of all stored keys, sorted.
func (s *Storage) ListKeys() ([]string, error) {
	raw, err := s.listArtifacts(keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("iterate keys: %w", err)
	}
	names := make([]string, 0, len(raw))
	for _, k := range raw {
		names = append(names, string(k))
	}
	slices.Sort(names)
	return names, nil
}

// DeleteKey removes the key stored under name.
func (s *Storage) DeleteKey(name string) error {
	s.globalLock.Lock()
	defer s.globalLock.Unlock()
	if err := s.deleteArtifact(keyPrefix, []byte(name)); err != nil {
		return fmt.Errorf("delete key %q: %w", name, err)
	}
	return nil
}
