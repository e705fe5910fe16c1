package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vocdoni/ec-elgamal/log"
	stg "github.com/vocdoni/ec-elgamal/storage"
)

// ciphertext returns a stored ciphertext
// GET /ciphertexts/{id}
func (a *API) ciphertext(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, CiphertextURLParam))
	if err != nil {
		ErrMalformedID.WithErr(err).Write(w)
		return
	}
	env, err := a.storedCiphertext(id)
	if err != nil {
		httpWriteError(w, err)
		return
	}
	httpWriteJSON(w, env)
}

// deleteCiphertext removes a stored ciphertext
// DELETE /ciphertexts/{id}
func (a *API) deleteCiphertext(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, CiphertextURLParam))
	if err != nil {
		ErrMalformedID.WithErr(err).Write(w)
		return
	}
	if err := a.storage.DeleteCiphertext(id); err != nil {
		if errors.Is(err, stg.ErrNotFound) {
			ErrCiphertextNotFound.Withf("%s", id).Write(w)
			return
		}
		ErrStorageFailed.WithErr(err).Write(w)
		return
	}
	log.Infow("ciphertext deleted", "id", id.String())
	httpWriteOK(w)
}
