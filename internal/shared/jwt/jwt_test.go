package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeParseRoundTrip(t *testing.T) {
	tok, err := Make(42)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	uid, err := Parse(tok)
	require.NoError(t, err)
	assert.EqualValues(t, 42, uid)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("not.a.token")
	assert.Error(t, err)

	_, err = Parse("")
	assert.Error(t, err)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	tok, err := Make(7)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-two")
	_, err = Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsZeroSubject(t *testing.T) {
	tok, err := Make(0)
	require.NoError(t, err)
	_, err = Parse(tok)
	assert.Error(t, err)
}
