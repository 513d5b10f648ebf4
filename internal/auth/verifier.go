package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Verifier checks the author secret. A bcrypt hash is preferred; the
// plaintext form exists for local development only.
type Verifier struct {
	hash  string
	plain string
}

func NewVerifier(secretHash, plainSecret string) *Verifier {
	return &Verifier{hash: secretHash, plain: plainSecret}
}

// Verify reports whether the presented secret is the author's. It never
// reveals which form of the secret is configured.
func (v *Verifier) Verify(secret string) bool {
	if v.hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(v.hash), []byte(secret)) == nil
	}
	if v.plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(v.plain), []byte(secret)) == 1
}

// HashSecret produces a bcrypt hash suitable for AUTHOR_SECRET_HASH.
func HashSecret(secret string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
