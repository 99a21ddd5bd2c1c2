package validators

import (
	"errors"
	"net/mail"
)

var (
	ErrContactNameMissing  = errors.New("missing required name field")
	ErrContactEmailMissing = errors.New("missing required email field")
	ErrContactPhoneMissing = errors.New("missing required phone field")
)

// ContactValidator checks the required contact fields. An email that
// doesn't parse counts as missing, matching the wire contract.
func ContactValidator(name, email, phone string) error {
	if name == "" {
		return ErrContactNameMissing
	}

	if email == "" {
		return ErrContactEmailMissing
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return ErrContactEmailMissing
	}

	if phone == "" {
		return ErrContactPhoneMissing
	}

	return nil
}
