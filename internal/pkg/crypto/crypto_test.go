package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCipher_RoundTrip(t *testing.T) {
	c, err := NewCipher("a-short-secret")
	require.NoError(t, err)

	enc, err := c.Encrypt("s3cr3t")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cr3t", enc)

	// nonce 随机，同一明文两次密文不同
	enc2, err := c.Encrypt("s3cr3t")
	require.NoError(t, err)
	assert.NotEqual(t, enc, enc2)

	plain, err := c.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", plain)
}

func TestCipher_WrongKey(t *testing.T) {
	a, err := NewCipher("key-a")
	require.NoError(t, err)
	b, err := NewCipher("key-b")
	require.NoError(t, err)

	enc, err := a.Encrypt("value")
	require.NoError(t, err)

	_, err = b.Decrypt(enc)
	assert.Error(t, err)
}

func TestCipher_Invalid(t *testing.T) {
	_, err := NewCipher("")
	assert.ErrorIs(t, err, ErrNotConfigured)

	c, err := NewCipher("key")
	require.NoError(t, err)

	_, err = c.Decrypt("not base64!")
	assert.Error(t, err)

	_, err = c.Decrypt("YWJj")
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	SetDefault(nil)
	_, err := Default()
	assert.ErrorIs(t, err, ErrNotConfigured)

	c, err := NewCipher("key")
	require.NoError(t, err)
	SetDefault(c)
	t.Cleanup(func() { SetDefault(nil) })

	got, err := Default()
	require.NoError(t, err)
	assert.Same(t, c, got)
}
