// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// RuntimeConfig holds the small set of knobs that tune recovery and
// prediction behaviour without touching grammar semantics. The zero
// value (after FillDefaults) is the standard configuration, so loading
// a file is always optional; the boolean knobs are phrased as opt-outs
// so "unset" and "default" coincide.
type RuntimeConfig struct {
	// MaxFullContextRetries switches a single AdaptivePredict call's
	// escalation from SLL to full-context simulation: any positive value
	// allows the one escalation per call the algorithm makes, so values
	// above 1 behave like 1. 0 means use the default (1); a negative
	// value disables the fallback
	// entirely, resolving SLL conflicts in place with the minimum-alt
	// tie-break.
	MaxFullContextRetries int `toml:"max_full_context_retries"`

	// SuppressAmbiguityReports turns off ReportAmbiguity calls, for
	// callers who resolve ambiguities silently and find the listener
	// noise counterproductive. Trace-level diagnostics still fire.
	SuppressAmbiguityReports bool `toml:"suppress_ambiguity_reports"`

	// DisableSingleTokenInsertion/DisableSingleTokenDeletion switch off
	// DefaultErrorStrategy's two single-token recovery heuristics
	// (spec §9), e.g. for grammars whose FOLLOW sets make them too
	// eager.
	DisableSingleTokenInsertion bool `toml:"disable_single_token_insertion"`
	DisableSingleTokenDeletion  bool `toml:"disable_single_token_deletion"`
}

// DefaultRuntimeConfig is the configuration used whenever no TOML file
// is loaded.
var DefaultRuntimeConfig = RuntimeConfig{MaxFullContextRetries: 1}

// FillDefaults returns a copy of cfg with zero-valued fields replaced
// by DefaultRuntimeConfig's values, the way dekarrin-tunaq's
// server.Config.FillDefaults layers defaults over a partially-specified
// config.
func (cfg RuntimeConfig) FillDefaults() RuntimeConfig {
	out := cfg
	if out.MaxFullContextRetries == 0 {
		out.MaxFullContextRetries = DefaultRuntimeConfig.MaxFullContextRetries
	}
	return out
}

// LoadRuntimeConfig reads a TOML runtime configuration from r. Missing
// fields are left at their zero value; call FillDefaults to layer in
// DefaultRuntimeConfig afterward.
func LoadRuntimeConfig(r io.Reader) (RuntimeConfig, error) {
	var cfg RuntimeConfig
	_, err := toml.NewDecoder(r).Decode(&cfg)
	return cfg, err
}

// LoadRuntimeConfigFile opens path and decodes it as TOML via
// LoadRuntimeConfig.
func LoadRuntimeConfigFile(path string) (RuntimeConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return RuntimeConfig{}, err
	}
	defer f.Close()
	return LoadRuntimeConfig(f)
}
