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

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclConfig struct {
		BasePath     string   `hcl:"base_path"`
		Folders      []string `hcl:"folders,optional"`
		DryRun       bool     `hcl:"dry_run,optional"`
		CreateBase   bool     `hcl:"create_base,optional"`
		Yes          bool     `hcl:"yes,optional"`
		RestartShell bool     `hcl:"restart_shell,optional"`
		Transfer     *struct {
			Retries        int      `hcl:"retries,optional"`
			RetryWait      string   `hcl:"retry_wait,optional"`
			Parallel       int      `hcl:"parallel,optional"`
			IgnorePatterns []string `hcl:"ignore_patterns,optional"`
		} `hcl:"transfer,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		BasePath:     hclCfg.BasePath,
		Folders:      hclCfg.Folders,
		DryRun:       hclCfg.DryRun,
		CreateBase:   hclCfg.CreateBase,
		Yes:          hclCfg.Yes,
		RestartShell: hclCfg.RestartShell,
	}

	if hclCfg.Transfer != nil {
		cfg.Transfer = &TransferArgs{
			Retries:        hclCfg.Transfer.Retries,
			Parallel:       hclCfg.Transfer.Parallel,
			IgnorePatterns: hclCfg.Transfer.IgnorePatterns,
		}
		if hclCfg.Transfer.RetryWait != "" {
			wait, err := time.ParseDuration(hclCfg.Transfer.RetryWait)
			if err != nil {
				return nil, errors.Errorf("parsing transfer.retry_wait: %w", err)
			}
			cfg.Transfer.RetryWait = wait
		}
	}

	return cfg, nil
}
