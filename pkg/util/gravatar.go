package util

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// GravatarURL builds the default avatar for a fresh account from the
// account's email, sized and styled the same way the frontend expects.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://s.gravatar.com/avatar/%s?s=250&d=retro", hex.EncodeToString(sum[:]))
}
