package api

import (
	"net/http"

	"github.com/vocdoni/ec-elgamal/crypto/ecc"
	"github.com/vocdoni/ec-elgamal/crypto/ecc/curves"
	"github.com/vocdoni/ec-elgamal/crypto/elgamal"
	"github.com/vocdoni/ec-elgamal/types"
)

// curves lists the supported curves
// GET /curves
func (a *API) curves(w http.ResponseWriter, r *http.Request) {
	resp := &Curves{Default: curves.DefaultCurveType}
	for _, name := range curves.Supported() {
		c, err := curves.New(name)
		if err != nil {
			ErrGenericInternalServerError.WithErr(err).Write(w)
			return
		}
		resp.Curves = append(resp.Curves, &Curve{
			Name:        c.Name,
			P:           types.NewBigInt(c.P),
			N:           types.NewBigInt(c.N),
			A:           types.NewBigInt(c.A),
			B:           types.NewBigInt(c.B),
			Gx:          types.NewBigInt(c.G.X),
			Gy:          types.NewBigInt(c.G.Y),
			BitSize:     c.BitSize,
			ChunkLength: elgamal.ChunkLength(c),
		})
	}
	httpWriteJSON(w, resp)
}

// curveParams resolves a curve name, falling back to the default curve when
// name is empty.
func curveParams(name string) (*ecc.CurveParams, error) {
	if name == "" {
		name = curves.DefaultCurveType
	}
	c, err := curves.New(name)
	if err != nil {
		return nil, ErrUnsupportedCurve.Withf("%q", name)
	}
	return c, nil
}
