package ecc

import (
	"encoding/json"
	"math/big"

	"github.com/fxamacker/cbor/v2"
	"github.com/vocdoni/ec-elgamal/types"
)

// pointRecord is the wire form of a Point. Coordinates and order travel as
// decimal strings; a zero order means unknown.
type pointRecord struct {
	X      *types.BigInt `json:"x" cbor:"0,keyasint"`
	Y      *types.BigInt `json:"y" cbor:"1,keyasint"`
	IsInf  bool          `json:"isInf" cbor:"2,keyasint"`
	OrderN *types.BigInt `json:"orderN" cbor:"3,keyasint"`
}

func (p Point) record() pointRecord {
	r := pointRecord{
		X:      new(types.BigInt),
		Y:      new(types.BigInt),
		IsInf:  p.Inf,
		OrderN: new(types.BigInt),
	}
	if !p.Inf {
		r.X.SetBigInt(p.X)
		r.Y.SetBigInt(p.Y)
	}
	if p.Order != nil {
		r.OrderN.SetBigInt(p.Order)
	}
	return r
}

func (r pointRecord) point() Point {
	if r.IsInf {
		p := Infinity()
		p.Order = r.order()
		return p
	}
	return Point{X: r.X.MathBigInt(), Y: r.Y.MathBigInt(), Order: r.order()}
}

func (r pointRecord) order() *big.Int {
	n := r.OrderN.MathBigInt()
	if n.Sign() == 0 {
		return nil
	}
	return n
}

// MarshalJSON encodes the point as {"x","y","isInf","orderN"}.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.record())
}

// UnmarshalJSON decodes the format produced by MarshalJSON. It does not
// check curve membership.
func (p *Point) UnmarshalJSON(data []byte) error {
	var r pointRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*p = r.point()
	return nil
}

// MarshalCBOR encodes the point record with integer keys.
func (p Point) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(p.record())
}

// UnmarshalCBOR decodes the format produced by MarshalCBOR.
func (p *Point) UnmarshalCBOR(data []byte) error {
	var r pointRecord
	if err := cbor.Unmarshal(data, &r); err != nil {
		return err
	}
	*p = r.point()
	return nil
}
