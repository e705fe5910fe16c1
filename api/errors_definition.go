//nolint:lll
package api

import (
	"fmt"
	"net/http"
)

// The custom Error type satisfies the error interface.
// Error() returns a human-readable description of the error.
//
// Error codes in the 40001-49999 range are the user's fault,
// and they return HTTP Status 400 or 404, whatever is most appropriate.
//
// Error codes 50001-59999 are the server's fault
// and they return HTTP Status 500 or 503, or something else if appropriate.
//
// NEVER change any of the current error codes, only append new errors after the current last 4XXX or 5XXX.
// If you notice there's a gap (say, error code 40005, 40006 and 40007 are missing) DON'T fill in the gap,
// that code was used in the past for some error (not anymore) and shouldn't be reused.
var (
	ErrResourceNotFound    = Error{Code: 40001, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("resource not found")}
	ErrMalformedBody       = Error{Code: 40004, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed JSON body")}
	ErrUnsupportedCurve    = Error{Code: 40008, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("unsupported curve")}
	ErrInvalidKey          = Error{Code: 40009, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid key")}
	ErrMalformedCiphertext = Error{Code: 40010, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed ciphertext")}
	ErrDecryptionFailed    = Error{Code: 40011, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("decryption failed")}
	ErrKeyNotFound         = Error{Code: 40012, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("key not found")}
	ErrCiphertextNotFound  = Error{Code: 40013, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("ciphertext not found")}
	ErrMalformedID         = Error{Code: 40014, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed ciphertext ID")}
	ErrMissingParameter    = Error{Code: 40015, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("missing parameter")}

	ErrMarshalingServerJSONFailed = Error{Code: 50001, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("marshaling (server-side) JSON failed")}
	ErrGenericInternalServerError = Error{Code: 50002, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("internal server error")}
	ErrEncryptionFailed           = Error{Code: 50003, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("encryption failed")}
	ErrStorageFailed              = Error{Code: 50004, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("storage operation failed")}
)
