package api

import (
	"encoding/json"
	"errors"
	"math/big"
	"net/http"

	"github.com/google/uuid"
	"github.com/vocdoni/ec-elgamal/crypto/arith"
	"github.com/vocdoni/ec-elgamal/crypto/armor"
	"github.com/vocdoni/ec-elgamal/crypto/ecc"
	"github.com/vocdoni/ec-elgamal/crypto/elgamal"
	"github.com/vocdoni/ec-elgamal/crypto/keys"
	"github.com/vocdoni/ec-elgamal/log"
	stg "github.com/vocdoni/ec-elgamal/storage"
)

// encrypt encrypts a text for a public key
// POST /encrypt
func (a *API) encrypt(w http.ResponseWriter, r *http.Request) {
	req := &EncryptRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	curve, q, err := a.recipient(req)
	if err != nil {
		httpWriteError(w, err)
		return
	}

	var opts []elgamal.Option
	if req.Legacy {
		opts = append(opts, elgamal.WithLegacyEncoding())
	}
	ct, err := elgamal.Encrypt(req.Text, q, curve, opts...)
	if err != nil {
		ErrEncryptionFailed.WithErr(err).Write(w)
		return
	}
	resp := &EncryptResponse{
		Envelope: &elgamal.Envelope{CurveType: curve.Name, Ciphertext: ct},
	}
	if req.Armor {
		data, err := json.Marshal(resp.Envelope)
		if err != nil {
			ErrMarshalingServerJSONFailed.WithErr(err).Write(w)
			return
		}
		if resp.Armored, err = armor.Wrap(string(data)); err != nil {
			ErrGenericInternalServerError.WithErr(err).Write(w)
			return
		}
	}
	if req.Store {
		id, err := a.storage.PushCiphertext(curve.Name, ct)
		if err != nil {
			ErrStorageFailed.WithErr(err).Write(w)
			return
		}
		resp.ID = &id
		log.Infow("ciphertext stored", "id", id.String(), "curve", curve.Name)
	}
	httpWriteJSON(w, resp)
}

// recipient resolves the curve and public key of an encryption request.
func (a *API) recipient(req *EncryptRequest) (*ecc.CurveParams, ecc.Point, error) {
	if req.KeyName != "" {
		sk, err := a.storedKey(req.KeyName)
		if err != nil {
			return nil, ecc.Point{}, err
		}
		if req.Curve != "" && req.Curve != sk.CurveType {
			return nil, ecc.Point{}, ErrInvalidKey.Withf("key %q is on curve %s, not %s", sk.Name, sk.CurveType, req.Curve)
		}
		curve, err := curveParams(sk.CurveType)
		if err != nil {
			return nil, ecc.Point{}, err
		}
		return curve, sk.Public(), nil
	}
	curve, err := curveParams(req.Curve)
	if err != nil {
		return nil, ecc.Point{}, err
	}
	switch {
	case len(req.Compressed) > 0:
		q, err := keys.DecompressPublic(req.Compressed, curve)
		if err != nil {
			return nil, ecc.Point{}, ErrInvalidKey.WithErr(err)
		}
		return curve, q, nil
	case req.PublicX != "" && req.PublicY != "":
		q, err := keys.ParsePublicKey(req.PublicX, req.PublicY)
		if err != nil {
			return nil, ecc.Point{}, ErrInvalidKey.WithErr(err)
		}
		if !curve.IsOnCurve(q) {
			return nil, ecc.Point{}, ErrInvalidKey.Withf("public key is not on curve %s", curve.Name)
		}
		return curve, q, nil
	default:
		return nil, ecc.Point{}, ErrMissingParameter.With("keyName, compressed or publicX and publicY")
	}
}

// decrypt recovers the text of a ciphertext
// POST /decrypt
func (a *API) decrypt(w http.ResponseWriter, r *http.Request) {
	req := &DecryptRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	env, err := a.envelope(req)
	if err != nil {
		httpWriteError(w, err)
		return
	}
	curve, err := curveParams(env.CurveType)
	if err != nil {
		httpWriteError(w, err)
		return
	}
	if err := env.Ciphertext.Validate(curve); err != nil {
		ErrMalformedCiphertext.WithErr(err).Write(w)
		return
	}
	sk, err := a.secret(req, curve)
	if err != nil {
		httpWriteError(w, err)
		return
	}

	var opts []elgamal.Option
	if req.Legacy {
		opts = append(opts, elgamal.WithLegacyEncoding())
	}
	text, err := elgamal.Decrypt(env.Ciphertext, sk, curve, opts...)
	if err != nil {
		ErrDecryptionFailed.WithErr(err).Write(w)
		return
	}
	httpWriteJSON(w, &DecryptResponse{Text: text})
}

// envelope resolves the ciphertext of a decryption request.
func (a *API) envelope(req *DecryptRequest) (*elgamal.Envelope, error) {
	switch {
	case req.Envelope != nil:
		return req.Envelope, nil
	case req.Armored != "":
		data, err := armor.Unwrap(req.Armored)
		if err != nil {
			return nil, ErrMalformedCiphertext.WithErr(err)
		}
		env := &elgamal.Envelope{}
		if err := json.Unmarshal([]byte(data), env); err != nil {
			return nil, ErrMalformedCiphertext.WithErr(err)
		}
		return env, nil
	case req.ID != "":
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, ErrMalformedID.WithErr(err)
		}
		return a.storedCiphertext(id)
	default:
		return nil, ErrMissingParameter.With("envelope, armored or id")
	}
}

// secret resolves the secret scalar of a decryption request.
func (a *API) secret(req *DecryptRequest, curve *ecc.CurveParams) (*big.Int, error) {
	if req.KeyName != "" {
		sk, err := a.storedKey(req.KeyName)
		if err != nil {
			return nil, err
		}
		if sk.CurveType != curve.Name {
			return nil, ErrInvalidKey.Withf("key %q is on curve %s, not %s", sk.Name, sk.CurveType, curve.Name)
		}
		if !sk.HasSecret() {
			return nil, ErrInvalidKey.Withf("key %q has no secret", sk.Name)
		}
		return sk.Secret, nil
	}
	if req.Secret == "" {
		return nil, ErrMissingParameter.With("secret or keyName")
	}
	secret, err := arith.ParseHex(req.Secret)
	if err != nil {
		return nil, ErrInvalidKey.WithErr(err)
	}
	return secret, nil
}

func (a *API) storedKey(name string) (*stg.StoredKey, error) {
	sk, err := a.storage.Key(name)
	if err != nil {
		if errors.Is(err, stg.ErrNotFound) {
			return nil, ErrKeyNotFound.Withf("%q", name)
		}
		return nil, ErrStorageFailed.WithErr(err)
	}
	return sk, nil
}

func (a *API) storedCiphertext(id uuid.UUID) (*elgamal.Envelope, error) {
	curveType, ct, err := a.storage.Ciphertext(id)
	if err != nil {
		if errors.Is(err, stg.ErrNotFound) {
			return nil, ErrCiphertextNotFound.Withf("%s", id)
		}
		return nil, ErrStorageFailed.WithErr(err)
	}
	return &elgamal.Envelope{CurveType: curveType, Ciphertext: ct}, nil
}
