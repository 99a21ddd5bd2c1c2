package validators

import (
	"errors"
	"slices"
)

var (
	ErrSubscriptionInvalid = errors.New("subscription must be one of starter, pro or business")

	validSubscriptions = []string{"starter", "pro", "business"}
)

func SubscriptionValidator(s string) error {
	if !slices.Contains(validSubscriptions, s) {
		return ErrSubscriptionInvalid
	}

	return nil
}
