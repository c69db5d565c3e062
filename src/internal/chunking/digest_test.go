package chunking

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSHA256MatchesStdlib(t *testing.T) {
	d := SHA256()
	_, err := d.Write([]byte("hello, "))
	require.NoError(t, err)
	_, err = d.Write([]byte("world"))
	require.NoError(t, err)

	want := sha256.Sum256([]byte("hello, world"))
	require.Equal(t, want[:], d.Finalize())
}

func TestDigestResetReusable(t *testing.T) {
	d := SHA256()
	_, err := d.Write([]byte("first"))
	require.NoError(t, err)
	first := d.Finalize()

	d.Reset()
	_, err = d.Write([]byte("first"))
	require.NoError(t, err)
	second := d.Finalize()

	require.Equal(t, first, second)
}

func TestSHA1AndMD5Sizes(t *testing.T) {
	sha1d := SHA1()
	_, _ = sha1d.Write([]byte("x"))
	require.Len(t, sha1d.Finalize(), 20)

	md5d := MD5()
	_, _ = md5d.Write([]byte("x"))
	require.Len(t, md5d.Finalize(), 16)
}
