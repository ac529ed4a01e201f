package models

// Credential is the stored verifier of an account secret. The secret itself
// is never persisted.
type Credential struct {
	Algorithm string `json:"algorithm"`
	Salt      []byte `json:"salt"`
	Hash      []byte `json:"hash"`
}
