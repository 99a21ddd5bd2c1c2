package security

import "spongkj/contacts-api/pkg/util"

const verificationTokenSize = 32

// NewVerificationToken returns a fresh opaque single-use token for
// email verification. It proves control of a mailbox and is unrelated
// to session tokens, so a stale verification link can never be used
// to authenticate.
func NewVerificationToken() (string, error) {
	return util.GenerateToken(verificationTokenSize)
}
