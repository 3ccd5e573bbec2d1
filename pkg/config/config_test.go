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

package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/foldermv/pkg/config"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// 🧪 TestLoadHCL tests loading a full HCL config
func TestLoadHCL(t *testing.T) {
	path := writeConfig(t, "foldermv.hcl", `
base_path = "/data/profile"
folders   = ["Documents", "Music"]
dry_run   = true
yes       = true

transfer {
  retries         = 2
  retry_wait      = "250ms"
  parallel        = 8
  ignore_patterns = ["desktop.ini", "Thumbs.db"]
}
`)

	cfg, err := config.Load(testContext(t), path)
	require.NoError(t, err)

	assert.Equal(t, "/data/profile", cfg.BasePath)
	assert.Equal(t, []string{"Documents", "Music"}, cfg.Folders)
	assert.True(t, cfg.DryRun)
	assert.True(t, cfg.Yes)
	require.NotNil(t, cfg.Transfer)
	assert.Equal(t, 2, cfg.Transfer.Retries)
	assert.Equal(t, 250*time.Millisecond, cfg.Transfer.RetryWait)
	assert.Equal(t, 8, cfg.Transfer.Parallel)
	assert.Equal(t, []string{"desktop.ini", "Thumbs.db"}, cfg.Transfer.IgnorePatterns)
}

// 🧪 TestLoadYAML tests loading a YAML config
func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "foldermv.yaml", `
base_path: /data/profile
folders:
  - Documents
restart_shell: true
transfer:
  retry_wait: 1s
`)

	cfg, err := config.Load(testContext(t), path)
	require.NoError(t, err)

	assert.Equal(t, "/data/profile", cfg.BasePath)
	assert.Equal(t, []string{"Documents"}, cfg.Folders)
	assert.True(t, cfg.RestartShell)
	require.NotNil(t, cfg.Transfer)
	assert.Equal(t, time.Second, cfg.Transfer.RetryWait)
}

// 🧪 TestLoadErrors tests parser selection and validation failures
func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{
			name:    "unknown extension",
			file:    "config.toml",
			content: `base_path = "/x"`,
			wantErr: "no parser found",
		},
		{
			name:    "missing base path",
			file:    "config.yaml",
			content: `dry_run: true`,
			wantErr: "base_path is required",
		},
		{
			name:    "relative base path",
			file:    "config.yaml",
			content: `base_path: relative/dir`,
			wantErr: "must be absolute",
		},
		{
			name:    "bad retry wait",
			file:    "config.hcl",
			content: "base_path = \"/x\"\ntransfer {\n  retry_wait = \"soon\"\n}\n",
			wantErr: "retry_wait",
		},
		{
			name:    "negative retries",
			file:    "config.yaml",
			content: "base_path: /x\ntransfer:\n  retries: -1\n",
			wantErr: "must not be negative",
		},
		{
			name:    "broken hcl",
			file:    "config.hcl",
			content: `base_path = `,
			wantErr: "parsing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.content)
			_, err := config.Load(testContext(t), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// 🧪 TestLoadMissingFile tests the read error path
func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(testContext(t), filepath.Join(t.TempDir(), "absent.hcl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}
