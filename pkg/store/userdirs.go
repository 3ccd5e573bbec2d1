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

package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// xdgKeys translates the registry's stable identifiers to xdg-user-dirs
// keys. Favorites and Contacts have no xdg equivalent and stay unbound.
var xdgKeys = map[string]string{
	"Personal":    "XDG_DOCUMENTS_DIR",
	"My Music":    "XDG_MUSIC_DIR",
	"My Pictures": "XDG_PICTURES_DIR",
	"{374DE290-123F-4565-9164-39C4925E467B}": "XDG_DOWNLOAD_DIR",
	"Desktop":  "XDG_DESKTOP_DIR",
	"My Video": "XDG_VIDEOS_DIR",
}

// 🐧 UserDirs is the freedesktop location store, backed by the single
// user-dirs.dirs file. There is no legacy companion store on this platform.
type UserDirs struct {
	configDir string
}

// 🏭 NewUserDirs creates a UserDirs store rooted at configDir
// (normally os.UserConfigDir()).
func NewUserDirs(configDir string) *UserDirs {
	return &UserDirs{configDir: configDir}
}

func (u *UserDirs) Name() string {
	return "xdg user-dirs"
}

func (u *UserDirs) file() string {
	return filepath.Join(u.configDir, "user-dirs.dirs")
}

func (u *UserDirs) Resolve(ctx context.Context, id string) (string, error) {
	key, ok := xdgKeys[id]
	if !ok {
		return "", errors.Errorf("resolving %q: no xdg mapping: %w", id, ErrNotFound)
	}

	lines, err := u.readLines()
	if err != nil {
		return "", err
	}

	for _, line := range lines {
		k, v, ok := parseUserDirLine(line)
		if !ok || k != key {
			continue
		}
		path := expandHome(v)
		if path == "" {
			break
		}
		return filepath.Clean(path), nil
	}
	return "", errors.Errorf("resolving %q (%s): %w", id, key, ErrNotFound)
}

func (u *UserDirs) Bind(ctx context.Context, id string, path string) error {
	key, ok := xdgKeys[id]
	if !ok {
		return errors.Errorf("binding %q: no xdg mapping: %w", id, ErrWrite)
	}

	lines, err := u.readLines()
	if err != nil {
		return errors.Errorf("binding %q: %w: %w", id, err, ErrWrite)
	}

	entry := key + `="` + path + `"`
	replaced := false
	for i, line := range lines {
		if k, _, ok := parseUserDirLine(line); ok && k == key {
			lines[i] = entry
			replaced = true
		}
	}
	if !replaced {
		lines = append(lines, entry)
	}

	data := strings.Join(lines, "\n")
	if !strings.HasSuffix(data, "\n") {
		data += "\n"
	}
	if err := os.MkdirAll(u.configDir, 0o755); err != nil {
		return errors.Errorf("creating config dir: %w: %w", err, ErrWrite)
	}
	if err := os.WriteFile(u.file(), []byte(data), 0o644); err != nil {
		return errors.Errorf("writing user-dirs.dirs: %w: %w", err, ErrWrite)
	}

	zerolog.Ctx(ctx).Debug().Str("id", id).Str("key", key).Str("path", path).Msg("bound location in user-dirs.dirs")
	return nil
}

func (u *UserDirs) readLines() ([]string, error) {
	data, err := os.ReadFile(u.file())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Errorf("reading user-dirs.dirs: %w", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n"), nil
}

// parseUserDirLine splits a `XDG_X_DIR="value"` line. Comments and anything
// else are passed through untouched by Bind.
func parseUserDirLine(line string) (key, value string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false
	}
	k, v, found := strings.Cut(trimmed, "=")
	if !found || !strings.HasPrefix(k, "XDG_") || !strings.HasSuffix(k, "_DIR") {
		return "", "", false
	}
	return k, strings.Trim(v, `"`), true
}

// expandHome expands the $HOME prefix xdg-user-dirs uses for relative dirs.
func expandHome(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "$HOME") {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return home + strings.TrimPrefix(v, "$HOME")
	}
	return v
}
