package payments

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tournament-reg/internal/config"
)

func TestIsDemoOrder(t *testing.T) {
	require.True(t, IsDemoOrder("order_demo_1729330000000"))
	require.True(t, IsDemoOrder("demo"))
	require.False(t, IsDemoOrder("order_N8xYz"))
	require.False(t, IsDemoOrder(""))
}

func TestNewProvider(t *testing.T) {
	var cfg config.Config
	p := NewProvider(cfg)
	require.Equal(t, "stub", p.Name())
	require.False(t, p.Live())

	cfg.Razorpay.KeyID = "rzp_test_key"
	p = NewProvider(cfg)
	require.Equal(t, "stub", p.Name(), "key id without secret must not go live")

	cfg.Razorpay.KeySecret = "secret"
	p = NewProvider(cfg)
	require.Equal(t, "razorpay", p.Name())
	require.True(t, p.Live())
}
