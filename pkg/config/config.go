// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔧 TransferArgs tunes the bulk transfer engine
type TransferArgs struct {
	Retries        int           `json:"retries,omitempty" yaml:"retries,omitempty"`                 // Extra attempts per failing file
	RetryWait      time.Duration `json:"retry_wait,omitempty" yaml:"retry_wait,omitempty"`           // Wait between attempts
	Parallel       int           `json:"parallel,omitempty" yaml:"parallel,omitempty"`               // Concurrent file copies
	IgnorePatterns []string      `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty"` // Globs left behind
}

// 📚 Config represents the complete configuration
type Config struct {
	BasePath     string        `json:"base_path" yaml:"base_path"`                           // Root the folders land under
	Folders      []string      `json:"folders,omitempty" yaml:"folders,omitempty"`           // Selection; empty means all
	DryRun       bool          `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`           // Report only
	CreateBase   bool          `json:"create_base,omitempty" yaml:"create_base,omitempty"`   // Create BasePath without asking
	Yes          bool          `json:"yes,omitempty" yaml:"yes,omitempty"`                   // Assume yes on prompts
	RestartShell bool          `json:"restart_shell,omitempty" yaml:"restart_shell,omitempty"` // Restart the shell process after changes
	Transfer     *TransferArgs `json:"transfer,omitempty" yaml:"transfer,omitempty"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// ✅ Validate checks the config for correctness
func (c *Config) Validate() error {
	if c.BasePath == "" {
		return errors.Errorf("base_path is required")
	}
	if !filepath.IsAbs(c.BasePath) {
		return errors.Errorf("base_path %q must be absolute", c.BasePath)
	}
	if c.Transfer != nil {
		if c.Transfer.Retries < 0 {
			return errors.Errorf("transfer.retries must not be negative")
		}
		if c.Transfer.Parallel < 0 {
			return errors.Errorf("transfer.parallel must not be negative")
		}
	}
	return nil
}
