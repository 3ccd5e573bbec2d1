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

//go:build windows

package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sys/windows/registry"
)

const (
	// Canonical per-user store. Values are REG_EXPAND_SZ and may reference
	// %USERPROFILE% and friends.
	userShellFoldersKey = `Software\Microsoft\Windows\CurrentVersion\Explorer\User Shell Folders`

	// Legacy store. Still read by older software, so both keys are written
	// on every Bind to keep them consistent.
	shellFoldersKey = `Software\Microsoft\Windows\CurrentVersion\Explorer\Shell Folders`
)

// 🪟 ShellFolders is the Windows location store, backed by the per-user
// Explorer registry keys.
type ShellFolders struct{}

// 🏭 System returns the platform location store.
func System() (Store, error) {
	return &ShellFolders{}, nil
}

func (s *ShellFolders) Name() string {
	return "windows shell folders"
}

func (s *ShellFolders) Resolve(ctx context.Context, id string) (string, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, userShellFoldersKey, registry.QUERY_VALUE)
	if err != nil {
		return "", errors.Errorf("opening %s: %w", userShellFoldersKey, err)
	}
	defer k.Close()

	v, _, err := k.GetStringValue(id)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", errors.Errorf("resolving %q: %w", id, ErrNotFound)
		}
		return "", errors.Errorf("reading %q: %w", id, err)
	}

	v = strings.TrimSpace(os.ExpandEnv(expandUserProfile(v)))
	if v == "" {
		return "", errors.Errorf("resolving %q: empty value: %w", id, ErrNotFound)
	}
	return filepath.Clean(v), nil
}

func (s *ShellFolders) Bind(ctx context.Context, id string, path string) error {
	logger := zerolog.Ctx(ctx)

	// Canonical store first. If this fails nothing has changed yet.
	if err := setValue(userShellFoldersKey, id, path, true); err != nil {
		return errors.Errorf("writing %s: %w: %w", userShellFoldersKey, err, ErrWrite)
	}

	// Legacy store second. A failure here leaves the two keys disagreeing;
	// no rollback is attempted, the caller decides what to do.
	if err := setValue(shellFoldersKey, id, path, false); err != nil {
		logger.Error().Str("id", id).Err(err).Msg("legacy store write failed, stores now inconsistent")
		return errors.Errorf("writing %s after %s succeeded: %w: %w", shellFoldersKey, userShellFoldersKey, err, ErrWrite)
	}

	logger.Debug().Str("id", id).Str("path", path).Msg("bound location in both stores")
	return nil
}

// setValue writes one value into one of the Explorer keys.
func setValue(key, id, path string, expandable bool) error {
	k, err := registry.OpenKey(registry.CURRENT_USER, key, registry.SET_VALUE)
	if err != nil {
		return errors.Errorf("opening key: %w", err)
	}
	defer k.Close()

	if expandable {
		return k.SetExpandStringValue(id, path)
	}
	return k.SetStringValue(id, path)
}

// expandUserProfile expands %USERPROFILE%-style references that
// os.ExpandEnv does not understand.
func expandUserProfile(v string) string {
	for _, name := range []string{"USERPROFILE", "SystemDrive", "SystemRoot"} {
		v = strings.ReplaceAll(v, "%"+name+"%", os.Getenv(name))
	}
	return v
}
