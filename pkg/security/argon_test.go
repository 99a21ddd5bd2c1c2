package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFromPasswordSalts(t *testing.T) {
	a := New()

	h1, err := a.GenerateFromPassword("secret1")
	require.NoError(t, err)

	h2, err := a.GenerateFromPassword("secret1")
	require.NoError(t, err)

	// Fresh salt per call, identical passwords never share a hash
	assert.NotEqual(t, h1, h2)
	assert.True(t, strings.HasPrefix(h1, "$argon2id$"))
}

func TestVerifyPasswd(t *testing.T) {
	a := New()

	h, err := a.GenerateFromPassword("secret1")
	require.NoError(t, err)

	ok, err := a.VerifyPasswd("secret1", h)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.VerifyPasswd("wrong", h)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswdMalformedHash(t *testing.T) {
	a := New()

	_, err := a.VerifyPasswd("secret1", "not-a-phc-string")
	assert.Error(t, err)

	_, err = a.VerifyPasswd("secret1", "$argon2id$v=19$m=65536,t=3,p=2$!!!$!!!")
	assert.Error(t, err)
}
