package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestHMACSHA256Hex_KnownVector(t *testing.T) {
	// RFC 4231 test case 2.
	got := HMACSHA256Hex("Jefe", "what do ya want for nothing?")
	require.Equal(t, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843", got)
}

func TestHMACEqual(t *testing.T) {
	sig := HMACSHA256Hex("secret", "order_abc|pay_xyz")
	require.True(t, HMACEqual(sig, sig))
	require.False(t, HMACEqual(sig, strings.ToUpper(sig)))
	require.False(t, HMACEqual(sig, sig[:len(sig)-1]))
	require.False(t, HMACEqual(sig, ""))
}

func TestHMACEqual_SingleCharMutation(t *testing.T) {
	sig := HMACSHA256Hex("secret", "order_abc|pay_xyz")
	rapid.Check(t, func(r *rapid.T) {
		i := rapid.IntRange(0, len(sig)-1).Draw(r, "pos")
		c := rapid.SampledFrom([]byte("0123456789abcdefABCDEF")).Filter(func(b byte) bool {
			return b != sig[i]
		}).Draw(r, "char")
		mutated := sig[:i] + string(c) + sig[i+1:]
		require.False(r, HMACEqual(sig, mutated))
	})
}

func TestMillisID(t *testing.T) {
	id := MillisID("order_demo_")
	require.True(t, strings.HasPrefix(id, "order_demo_"))
	require.Greater(t, len(id), len("order_demo_"))
}
