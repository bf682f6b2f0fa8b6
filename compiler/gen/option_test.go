package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"Abstract", "Base"}, cfg.StripPrefixes)
	assert.Equal(t, StyleBean, cfg.NameStyle)
	assert.False(t, cfg.Strict)
	assert.Zero(t, cfg.Workers)
}

func TestOptions(t *testing.T) {
	t.Run("valid options compose", func(t *testing.T) {
		cfg, err := NewConfig(
			WithPackage("model"),
			WithTarget("./model"),
			WithHeader("// model package"),
			WithNameStyle(StyleFluent),
			WithStrict(true),
			WithWorkers(4),
			WithStripPrefixes("Internal"),
			WithBuildFlags("-tags", "model"),
		)
		require.NoError(t, err)

		assert.Equal(t, "model", cfg.Package)
		assert.Equal(t, "./model", cfg.Target)
		assert.Equal(t, "// model package", cfg.Header)
		assert.Equal(t, StyleFluent, cfg.NameStyle)
		assert.True(t, cfg.Strict)
		assert.Equal(t, 4, cfg.Workers)
		assert.Contains(t, cfg.StripPrefixes, "Internal")
		assert.Contains(t, cfg.StripPrefixes, "Abstract")
		assert.Equal(t, []string{"-tags", "model"}, cfg.BuildFlags)
	})

	t.Run("empty package is rejected", func(t *testing.T) {
		_, err := NewConfig(WithPackage(""))
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("empty target is rejected", func(t *testing.T) {
		_, err := NewConfig(WithTarget(""))
		assert.True(t, IsConfigError(err))
	})

	t.Run("unknown name style is rejected", func(t *testing.T) {
		_, err := NewConfig(WithNameStyle("hungarian"))
		assert.True(t, IsConfigError(err))
	})

	t.Run("negative workers are rejected", func(t *testing.T) {
		_, err := NewConfig(WithWorkers(-1))
		assert.True(t, IsConfigError(err))
	})
}

func TestApplyAll(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyAll(
		WithPackage(""),
		WithTarget(""),
		WithHeader("// kept"),
	)
	require.Error(t, err)
	// every failing option is reported, passing options still apply
	assert.Equal(t, "// kept", cfg.Header)
}

func TestMustNewConfigPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustNewConfig(WithNameStyle("nope"))
	})
}
