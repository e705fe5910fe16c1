package storage

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/vocdoni/ec-elgamal/crypto/ecc/curves"
	"github.com/vocdoni/ec-elgamal/crypto/elgamal"
	"github.com/vocdoni/ec-elgamal/log"
)

// storedCiphertext keeps the binary form of the ciphertext, whose width is
// fixed by the curve.
type storedCiphertext struct {
	CurveType string `cbor:"0,keyasint,omitempty"`
	Data      []byte `cbor:"1,keyasint,omitempty"`
}

// PushCiphertext validates ct against curveType and stores it under a new
// random identifier, which is returned.
func (s *Storage) PushCiphertext(curveType string, ct elgamal.Ciphertext) (uuid.UUID, error) {
	curve, err := curves.New(curveType)
	if err != nil {
		return uuid.Nil, err
	}
	if err := ct.Validate(curve); err != nil {
		return uuid.Nil, err
	}
	id := uuid.New()
	sc := &storedCiphertext{
		CurveType: curveType,
		Data:      ct.Serialize(curve),
	}
	if err := s.setArtifact(ciphertextPrefix, id[:], sc); err != nil {
		return uuid.Nil, fmt.Errorf("store ciphertext: %w", err)
	}
	log.Debugw("ciphertext stored", "id", id.String(), "curve", curveType, "points", len(ct))
	return id, nil
}

// Ciphertext loads the ciphertext stored under id together with the name of
// its curve. Returns ErrNotFound if it does not exist.
func (s *Storage) Ciphertext(id uuid.UUID) (string, elgamal.Ciphertext, error) {
	sc := &storedCiphertext{}
	if err := s.getArtifact(ciphertextPrefix, id[:], sc); err != nil {
		return "", nil, fmt.Errorf("could not read ciphertext %s: %w", id, err)
	}
	curve, err := curves.New(sc.CurveType)
	if err != nil {
		return "", nil, err
	}
	ct, err := elgamal.Deserialize(curve, sc.Data)
	if err != nil {
		return "", nil, fmt.Errorf("decode ciphertext %s: %w", id, err)
	}
	return sc.CurveType, ct, nil
}

// DeleteCiphertext removes the ciphertext stored under id.
func (s *Storage) DeleteCiphertext(id uuid.UUID) error {
	s.globalLock.Lock()
	defer s.globalLock.Unlock()
	if err := s.deleteArtifact(ciphertextPrefix, id[:]); err != nil {
		return fmt.Errorf("delete ciphertext %s: %w", id, err)
	}
	return nil
}

// ListCiphertexts returns the identifiers of all stored ciphertexts.
func (s *Storage) ListCiphertexts() ([]uuid.UUID, error) {
	raw, err := s.listArtifacts(ciphertextPrefix)
	if err != nil {
		return nil, fmt.Errorf("iterate ciphertexts: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, k := range raw {
		id, err := uuid.FromBytes(k)
		if err != nil {
			return nil, fmt.Errorf("invalid ciphertext key %x: %w", k, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
