package api

const (
	// PingEndpoint is the endpoint for checking the API status
	PingEndpoint = "/ping"
	// CurvesEndpoint lists the supported curves and their parameters
	CurvesEndpoint = "/curves"
	// KeysEndpoint is the endpoint for deriving (and optionally storing) a
	// key pair
	KeysEndpoint = "/keys"
	// KeyEndpoint returns (GET) or removes (DELETE) a stored key
	KeyURLParam = "name"
	KeyEndpoint = "/keys/{" + KeyURLParam + "}"
	// EncryptEndpoint encrypts a text for a public key
	EncryptEndpoint = "/encrypt"
	// DecryptEndpoint decrypts a ciphertext with a secret key
	DecryptEndpoint = "/decrypt"
	// CiphertextsEndpoint is the collection of stored ciphertexts
	CiphertextsEndpoint = "/ciphertexts"
	// CiphertextEndpoint returns (GET) or removes (DELETE) a stored ciphertext
	CiphertextURLParam = "id"
	CiphertextEndpoint = CiphertextsEndpoint + "/{" + CiphertextURLParam + "}"
)
