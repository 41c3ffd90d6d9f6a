package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	size  int
	name  string
	calls []string
}

var errNegative = errors.New("size cannot be negative")

func withSize(n int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if n < 0 {
			return errNegative
		}
		c.size = n
		c.calls = append(c.calls, "size")

		return nil
	})
}

func withName(name string) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.name = name
		c.calls = append(c.calls, "name")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &testConfig{}

		err := Apply(cfg, withName("a"), withSize(256), withName("b"))
		require.NoError(t, err)
		require.Equal(t, 256, cfg.size)
		require.Equal(t, "b", cfg.name)
		require.Equal(t, []string{"name", "size", "name"}, cfg.calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &testConfig{}

		err := Apply(cfg, withSize(4), withSize(-1), withName("unreached"))
		require.ErrorIs(t, err, errNegative)
		require.Equal(t, 4, cfg.size)
		require.Empty(t, cfg.name)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &testConfig{size: 7}
		require.NoError(t, Apply(cfg))
		require.Equal(t, 7, cfg.size)
	})

	t.Run("nil options are skipped", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg, nil, withSize(1)))
		require.Equal(t, 1, cfg.size)
	})
}
