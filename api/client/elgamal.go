package client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/vocdoni/ec-elgamal/api"
	"github.com/vocdoni/ec-elgamal/crypto/elgamal"
)

// Error is an API error response as decoded by the client.
type Error struct {
	Status  int
	Code    int    `json:"code"`
	Message string `json:"error"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %d (code %d: %s)", errCodeNot200, e.Status, e.Code, e.Message)
}

// call performs the request and decodes a 200 response into out. Any other
// status is returned as *Error.
func (c *HTTPclient) call(method string, body, out any, urlPath ...string) error {
	data, status, err := c.Request(method, body, urlPath...)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		apiErr := &Error{Status: status}
		if err := json.Unmarshal(data, apiErr); err != nil {
			apiErr.Message = string(data)
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Curves lists the curves supported by the server.
func (c *HTTPclient) Curves() (*api.Curves, error) {
	resp := &api.Curves{}
	if err := c.call(HTTPGET, nil, resp, api.CurvesEndpoint); err != nil {
		return nil, err
	}
	return resp, nil
}

// NewKey derives, generates or stores a key pair as described by req.
func (c *HTTPclient) NewKey(req *api.KeyRequest) (*api.Key, error) {
	resp := &api.Key{}
	if err := c.call(HTTPPOST, req, resp, api.KeysEndpoint); err != nil {
		return nil, err
	}
	return resp, nil
}

// Key returns the public part of a stored key.
func (c *HTTPclient) Key(name string) (*api.Key, error) {
	resp := &api.Key{}
	if err := c.call(HTTPGET, nil, resp, api.KeysEndpoint, name); err != nil {
		return nil, err
	}
	return resp, nil
}

// Encrypt asks the server to encrypt a text.
func (c *HTTPclient) Encrypt(req *api.EncryptRequest) (*api.EncryptResponse, error) {
	resp := &api.EncryptResponse{}
	if err := c.call(HTTPPOST, req, resp, api.EncryptEndpoint); err != nil {
		return nil, err
	}
	return resp, nil
}

// Decrypt asks the server to decrypt a ciphertext and returns the text.
func (c *HTTPclient) Decrypt(req *api.DecryptRequest) (string, error) {
	resp := &api.DecryptResponse{}
	if err := c.call(HTTPPOST, req, resp, api.DecryptEndpoint); err != nil {
		return "", err
	}
	return resp.Text, nil
}

// Ciphertext fetches a stored ciphertext.
func (c *HTTPclient) Ciphertext(id uuid.UUID) (*elgamal.Envelope, error) {
	env := &elgamal.Envelope{}
	if err := c.call(HTTPGET, nil, env, api.CiphertextsEndpoint, id.String()); err != nil {
		return nil, err
	}
	return env, nil
}

// DeleteKey removes a stored key.
func (c *HTTPclient) DeleteKey(name string) error {
	return c.call(HTTPDELETE, nil, nil, api.KeysEndpoint, name)
}

// DeleteCiphertext removes a stored ciphertext.
func (c *HTTPclient) DeleteCiphertext(id uuid.UUID) error {
	return c.call(HTTPDELETE, nil, nil, api.CiphertextsEndpoint, id.String())
}
