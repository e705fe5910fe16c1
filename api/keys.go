package api

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vocdoni/ec-elgamal/crypto/arith"
	"github.com/vocdoni/ec-elgamal/crypto/ecc"
	"github.com/vocdoni/ec-elgamal/crypto/keys"
	"github.com/vocdoni/ec-elgamal/log"
	stg "github.com/vocdoni/ec-elgamal/storage"
)

// newKey derives or generates a key pair and optionally stores it
// POST /keys
func (a *API) newKey(w http.ResponseWriter, r *http.Request) {
	req := &KeyRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	curve, err := curveParams(req.Curve)
	if err != nil {
		httpWriteError(w, err)
		return
	}

	var kp *keys.KeyPair
	switch {
	case req.Secret != "":
		kp, err = keys.ParseSecretKey(curve, req.Secret)
	case req.Passphrase != "" && req.Hashed:
		kp, err = keys.FromPassphraseHash(curve, req.Passphrase)
	case req.Passphrase != "":
		kp, err = keys.FromPassphrase(curve, req.Passphrase)
	default:
		kp, err = keys.GenerateKey(curve, rand.Reader)
	}
	if err != nil {
		ErrInvalidKey.WithErr(err).Write(w)
		return
	}

	if req.Name != "" {
		if err := a.storage.SetKey(req.Name, kp, req.StoreSecret); err != nil {
			ErrStorageFailed.WithErr(err).Write(w)
			return
		}
		log.Infow("new key stored", "name", req.Name, "curve", curve.Name, "secret", req.StoreSecret)
	}

	resp, err := keyResponse(req.Name, kp.Curve, kp.Public)
	if err != nil {
		ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	resp.Secret = kp.SecretHex()
	resp.HasSecret = true
	httpWriteJSON(w, resp)
}

// key returns the public part of a stored key
// GET /keys/{name}
func (a *API) key(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, KeyURLParam)
	sk, err := a.storage.Key(name)
	if err != nil {
		if errors.Is(err, stg.ErrNotFound) {
			ErrKeyNotFound.Withf("%q", name).Write(w)
			return
		}
		ErrStorageFailed.WithErr(err).Write(w)
		return
	}
	curve, err := curveParams(sk.CurveType)
	if err != nil {
		httpWriteError(w, err)
		return
	}
	resp, err := keyResponse(sk.Name, curve, sk.Public())
	if err != nil {
		ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	resp.HasSecret = sk.HasSecret()
	httpWriteJSON(w, resp)
}

// deleteKey removes a stored key
// DELETE /keys/{name}
func (a *API) deleteKey(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, KeyURLParam)
	if err := a.storage.DeleteKey(name); err != nil {
		if errors.Is(err, stg.ErrNotFound) {
			ErrKeyNotFound.Withf("%q", name).Write(w)
			return
		}
		ErrStorageFailed.WithErr(err).Write(w)
		return
	}
	log.Infow("key deleted", "name", name)
	httpWriteOK(w)
}

func keyResponse(name string, c *ecc.CurveParams, q ecc.Point) (*Key, error) {
	compressed, err := keys.CompressPublic(q, c)
	if err != nil {
		return nil, err
	}
	return &Key{
		Name:       name,
		Curve:      c.Name,
		PublicX:    arith.FormatHex(q.X),
		PublicY:    arith.FormatHex(q.Y),
		Compressed: compressed,
	}, nil
}
