package elgamal

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/vocdoni/ec-elgamal/crypto/ecc"
	"github.com/vocdoni/ec-elgamal/crypto/ecc/curves"
)

// Envelope is a ciphertext together with the name of the curve it was
// produced on. It is the document exchanged by the CLI, the API and the
// store.
type Envelope struct {
	CurveType  string
	Ciphertext Ciphertext
}

// Curve returns the parameters of the envelope's curve.
func (z *Envelope) Curve() (*ecc.CurveParams, error) {
	return curves.New(z.CurveType)
}

// MarshalJSON serializes the Envelope to JSON.
func (z *Envelope) MarshalJSON() ([]byte, error) {
	// Prepare an array of raw JSON messages for each point.
	rawPoints := make([]json.RawMessage, len(z.Ciphertext))
	for i, p := range z.Ciphertext {
		b, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal point[%d]: %w", i, err)
		}
		rawPoints[i] = b
	}
	tmp := struct {
		CurveType  string            `json:"curveType"`
		Ciphertext []json.RawMessage `json:"ciphertext"`
	}{
		CurveType:  z.CurveType,
		Ciphertext: rawPoints,
	}
	return json.Marshal(tmp)
}

// UnmarshalJSON deserializes the Envelope from JSON. The curve must be a
// supported one; the points are not validated.
func (z *Envelope) UnmarshalJSON(data []byte) error {
	var tmp struct {
		CurveType  string            `json:"curveType"`
		Ciphertext []json.RawMessage `json:"ciphertext"`
	}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return fmt.Errorf("failed to unmarshal envelope container: %w", err)
	}
	if !curves.IsSupported(tmp.CurveType) {
		return fmt.Errorf("%w: %q", curves.ErrUnsupportedCurve, tmp.CurveType)
	}
	z.CurveType = tmp.CurveType
	z.Ciphertext = make(Ciphertext, len(tmp.Ciphertext))
	for i, raw := range tmp.Ciphertext {
		if err := z.Ciphertext[i].UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("failed to unmarshal point[%d]: %w", i, err)
		}
	}
	return nil
}

// MarshalCBOR serializes the Envelope to CBOR.
func (z *Envelope) MarshalCBOR() ([]byte, error) {
	rawPoints := make([]cbor.RawMessage, len(z.Ciphertext))
	for i, p := range z.Ciphertext {
		raw, err := p.MarshalCBOR()
		if err != nil {
			return nil, fmt.Errorf("failed to marshal point[%d]: %w", i, err)
		}
		rawPoints[i] = raw
	}
	tmp := struct {
		CurveType  string            `cbor:"curveType"`
		Ciphertext []cbor.RawMessage `cbor:"ciphertext"`
	}{
		CurveType:  z.CurveType,
		Ciphertext: rawPoints,
	}
	return cbor.Marshal(tmp)
}

// UnmarshalCBOR deserializes the Envelope from CBOR.
func (z *Envelope) UnmarshalCBOR(buf []byte) error {
	var tmp struct {
		CurveType  string            `cbor:"curveType"`
		Ciphertext []cbor.RawMessage `cbor:"ciphertext"`
	}
	if err := cbor.Unmarshal(buf, &tmp); err != nil {
		return err
	}
	if !curves.IsSupported(tmp.CurveType) {
		return fmt.Errorf("%w: %q", curves.ErrUnsupportedCurve, tmp.CurveType)
	}
	z.CurveType = tmp.CurveType
	z.Ciphertext = make(Ciphertext, len(tmp.Ciphertext))
	for i, raw := range tmp.Ciphertext {
		if err := z.Ciphertext[i].UnmarshalCBOR(raw); err != nil {
			return fmt.Errorf("failed to unmarshal point[%d]: %w", i, err)
		}
	}
	return nil
}
