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
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

func init() {
	Register(&YAMLParser{})
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

// 📝 Parse parses the config from YAML
func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	type yamlTransfer struct {
		Retries        int      `yaml:"retries"`
		RetryWait      string   `yaml:"retry_wait"`
		Parallel       int      `yaml:"parallel"`
		IgnorePatterns []string `yaml:"ignore_patterns"`
	}
	type yamlConfig struct {
		BasePath     string        `yaml:"base_path"`
		Folders      []string      `yaml:"folders"`
		DryRun       bool          `yaml:"dry_run"`
		CreateBase   bool          `yaml:"create_base"`
		Yes          bool          `yaml:"yes"`
		RestartShell bool          `yaml:"restart_shell"`
		Transfer     *yamlTransfer `yaml:"transfer"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, errors.Errorf("decoding YAML: %w", err)
	}

	cfg := &Config{
		BasePath:     yamlCfg.BasePath,
		Folders:      yamlCfg.Folders,
		DryRun:       yamlCfg.DryRun,
		CreateBase:   yamlCfg.CreateBase,
		Yes:          yamlCfg.Yes,
		RestartShell: yamlCfg.RestartShell,
	}

	if yamlCfg.Transfer != nil {
		cfg.Transfer = &TransferArgs{
			Retries:        yamlCfg.Transfer.Retries,
			Parallel:       yamlCfg.Transfer.Parallel,
			IgnorePatterns: yamlCfg.Transfer.IgnorePatterns,
		}
		if yamlCfg.Transfer.RetryWait != "" {
			wait, err := time.ParseDuration(yamlCfg.Transfer.RetryWait)
			if err != nil {
				return nil, errors.Errorf("parsing transfer.retry_wait: %w", err)
			}
			cfg.Transfer.RetryWait = wait
		}
	}

	return cfg, nil
}
