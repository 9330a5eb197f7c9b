package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/godslighthouse/gsp-server/internal/errs"
)

func TestIssueDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := New([]byte("test-key"), time.Hour)
	tok, exp, err := svc.Issue("user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	subject, err := svc.Decode(tok)
	require.NoError(t, err)
	require.Equal(t, "user@example.com", subject)
}

func TestDecode_WrongKey(t *testing.T) {
	t.Parallel()

	tok, _, err := New([]byte("key-a"), time.Hour).Issue("u")
	require.NoError(t, err)

	_, err = New([]byte("key-b"), time.Hour).Decode(tok)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestDecode_Expired(t *testing.T) {
	t.Parallel()

	svc := New([]byte("test-key"), -time.Minute)
	tok, _, err := svc.Issue("u")
	require.NoError(t, err)

	_, err = svc.Decode(tok)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	svc := New([]byte("test-key"), time.Hour)
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Decode(tok)
		require.ErrorIs(t, err, errs.ErrUnauthorized, "token %q", tok)
	}
}

func TestDecode_TamperedPayload(t *testing.T) {
	t.Parallel()

	svc := New([]byte("test-key"), time.Hour)
	tok, _, err := svc.Issue("u")
	require.NoError(t, err)

	tampered := tok[:len(tok)-4] + "AAAA"
	_, err = svc.Decode(tampered)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}
