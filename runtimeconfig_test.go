package langrt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRuntimeConfig_ParsesAllKnobs(t *testing.T) {
	src := `
max_full_context_retries = 2
suppress_ambiguity_reports = true
disable_single_token_insertion = true
disable_single_token_deletion = true
`
	cfg, err := LoadRuntimeConfig(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.MaxFullContextRetries)
	assert.True(t, cfg.SuppressAmbiguityReports)
	assert.True(t, cfg.DisableSingleTokenInsertion)
	assert.True(t, cfg.DisableSingleTokenDeletion)
}

func TestLoadRuntimeConfig_MissingFieldsStayZero(t *testing.T) {
	cfg, err := LoadRuntimeConfig(strings.NewReader(""))
	require.NoError(t, err)

	assert.Equal(t, RuntimeConfig{}, cfg)
}

func TestRuntimeConfig_FillDefaults(t *testing.T) {
	filled := RuntimeConfig{}.FillDefaults()
	assert.Equal(t, 1, filled.MaxFullContextRetries)
	assert.False(t, filled.DisableSingleTokenDeletion)

	// explicit values survive
	kept := RuntimeConfig{MaxFullContextRetries: 3}.FillDefaults()
	assert.Equal(t, 3, kept.MaxFullContextRetries)

	// negative disables the LL fallback and is not "unset"
	disabled := RuntimeConfig{MaxFullContextRetries: -1}.FillDefaults()
	assert.Equal(t, -1, disabled.MaxFullContextRetries)
}

func TestLoadRuntimeConfig_BadTOML(t *testing.T) {
	_, err := LoadRuntimeConfig(strings.NewReader("max_full_context_retries = ["))
	assert.Error(t, err)
}
