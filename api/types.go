package api

import (
	"github.com/google/uuid"
	"github.com/vocdoni/ec-elgamal/crypto/elgamal"
	"github.com/vocdoni/ec-elgamal/types"
)

// Curve describes a supported curve.
type Curve struct {
	Name        string        `json:"name"`
	P           *types.BigInt `json:"p"`
	N           *types.BigInt `json:"n"`
	A           *types.BigInt `json:"a"`
	B           *types.BigInt `json:"b"`
	Gx          *types.BigInt `json:"gx"`
	Gy          *types.BigInt `json:"gy"`
	BitSize     int           `json:"bitSize"`
	ChunkLength int           `json:"chunkLength"`
}

// Curves is the response of the curves listing.
type Curves struct {
	Default string   `json:"default"`
	Curves  []*Curve `json:"curves"`
}

// KeyRequest asks for a key pair on Curve. The secret is taken from Secret
// (hex) if set, otherwise derived from Passphrase (hashed with Keccak256 when
// Hashed is true), otherwise drawn at random. If Name is set the key is
// stored under it, with its secret only when StoreSecret is true.
type KeyRequest struct {
	Curve       string `json:"curve"`
	Passphrase  string `json:"passphrase,omitempty"`
	Hashed      bool   `json:"hashed,omitempty"`
	Secret      string `json:"secret,omitempty"`
	Name        string `json:"name,omitempty"`
	StoreSecret bool   `json:"storeSecret,omitempty"`
}

// Key is a key pair in hexadecimal form. Secret is only filled in the
// response to a KeyRequest.
type Key struct {
	Name       string         `json:"name,omitempty"`
	Curve      string         `json:"curve"`
	Secret     string         `json:"secret,omitempty"`
	PublicX    string         `json:"publicX"`
	PublicY    string         `json:"publicY"`
	Compressed types.HexBytes `json:"compressed"`
	HasSecret  bool           `json:"hasSecret"`
}

// EncryptRequest asks to encrypt Text on Curve. The recipient is either a
// stored key (KeyName), a compressed public key or the PublicX/PublicY hex
// coordinates, in that order of precedence.
type EncryptRequest struct {
	Curve      string         `json:"curve,omitempty"`
	Text       string         `json:"text"`
	KeyName    string         `json:"keyName,omitempty"`
	Compressed types.HexBytes `json:"compressed,omitempty"`
	PublicX    string         `json:"publicX,omitempty"`
	PublicY    string         `json:"publicY,omitempty"`
	Armor      bool           `json:"armor,omitempty"`
	Store      bool           `json:"store,omitempty"`
	Legacy     bool           `json:"legacy,omitempty"`
}

// EncryptResponse carries the ciphertext and, when requested, its armored
// form and the identifier it was stored under.
type EncryptResponse struct {
	Envelope *elgamal.Envelope `json:"envelope"`
	Armored  string            `json:"armored,omitempty"`
	ID       *uuid.UUID        `json:"id,omitempty"`
}

// DecryptRequest asks to decrypt a ciphertext given as an envelope, as its
// armored form or as the identifier of a stored one. The secret is either a
// hex scalar or the name of a stored key holding it.
type DecryptRequest struct {
	Envelope *elgamal.Envelope `json:"envelope,omitempty"`
	Armored  string            `json:"armored,omitempty"`
	ID       string            `json:"id,omitempty"`
	Secret   string            `json:"secret,omitempty"`
	KeyName  string            `json:"keyName,omitempty"`
	Legacy   bool              `json:"legacy,omitempty"`
}

// DecryptResponse is the recovered text.
type DecryptResponse struct {
	Text string `json:"text"`
}
