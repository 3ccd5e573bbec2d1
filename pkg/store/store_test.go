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

package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/foldermv/pkg/store"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

// 🧪 TestMemoryResolveBind tests the map-backed store contract
func TestMemoryResolveBind(t *testing.T) {
	ctx := testContext(t)
	mem := store.NewMemory(map[string]string{"Personal": "/home/u/Documents"})

	path, err := mem.Resolve(ctx, "Personal")
	require.NoError(t, err)
	assert.Equal(t, "/home/u/Documents", path)

	_, err = mem.Resolve(ctx, "Favorites")
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrNotFound))

	require.NoError(t, mem.Bind(ctx, "Personal", "/data/Documents"))
	path, err = mem.Resolve(ctx, "Personal")
	require.NoError(t, err)
	assert.Equal(t, "/data/Documents", path)

	assert.Equal(t, []string{
		"resolve Personal",
		"resolve Favorites",
		"bind Personal /data/Documents",
		"resolve Personal",
	}, mem.Journal())
}

// 🧪 TestMemoryBindErr tests injected write failures
func TestMemoryBindErr(t *testing.T) {
	ctx := testContext(t)
	mem := store.NewMemory(map[string]string{"Personal": "/home/u/Documents"})
	mem.BindErr = store.ErrWrite

	err := mem.Bind(ctx, "Personal", "/data/Documents")
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrWrite))

	// Failed bind must not mutate the store.
	path, err := mem.Resolve(ctx, "Personal")
	require.NoError(t, err)
	assert.Equal(t, "/home/u/Documents", path)
}

// 🧪 TestUserDirsRoundTrip tests resolve/bind against a user-dirs.dirs file
func TestUserDirsRoundTrip(t *testing.T) {
	ctx := testContext(t)
	configDir := t.TempDir()
	ud := store.NewUserDirs(configDir)

	// Unbound identifier before any write.
	_, err := ud.Resolve(ctx, "Personal")
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrNotFound))

	require.NoError(t, ud.Bind(ctx, "Personal", "/data/Documents"))
	require.NoError(t, ud.Bind(ctx, "My Music", "/data/Music"))

	path, err := ud.Resolve(ctx, "Personal")
	require.NoError(t, err)
	assert.Equal(t, "/data/Documents", path)

	// Rebinding replaces the existing entry in place.
	require.NoError(t, ud.Bind(ctx, "Personal", "/data2/Documents"))
	path, err = ud.Resolve(ctx, "Personal")
	require.NoError(t, err)
	assert.Equal(t, "/data2/Documents", path)

	path, err = ud.Resolve(ctx, "My Music")
	require.NoError(t, err)
	assert.Equal(t, "/data/Music", path)
}

// 🧪 TestUserDirsNoMapping tests identifiers with no xdg equivalent
func TestUserDirsNoMapping(t *testing.T) {
	ctx := testContext(t)
	ud := store.NewUserDirs(t.TempDir())

	_, err := ud.Resolve(ctx, "Favorites")
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrNotFound))

	err = ud.Bind(ctx, "{56784854-C6CB-462B-8169-88E350ACB882}", "/data/Contacts")
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrWrite))
}

// 🧪 TestUserDirsPreservesForeignLines tests that comments and other
// assignments survive a bind
func TestUserDirsPreservesForeignLines(t *testing.T) {
	ctx := testContext(t)
	configDir := t.TempDir()
	ud := store.NewUserDirs(configDir)

	// Hand-written file content from xdg-user-dirs-update.
	existing := "# This file is written by xdg-user-dirs-update\n" +
		"XDG_DESKTOP_DIR=\"$HOME/Desktop\"\n" +
		"XDG_TEMPLATES_DIR=\"$HOME/Templates\"\n"
	writeUserDirs(t, configDir, existing)

	require.NoError(t, ud.Bind(ctx, "Desktop", "/data/Desktop"))

	path, err := ud.Resolve(ctx, "Desktop")
	require.NoError(t, err)
	assert.Equal(t, "/data/Desktop", path)

	data := readUserDirs(t, configDir)
	assert.Contains(t, data, "# This file is written by xdg-user-dirs-update")
	assert.Contains(t, data, "XDG_TEMPLATES_DIR=\"$HOME/Templates\"")
	assert.NotContains(t, data, "XDG_DESKTOP_DIR=\"$HOME/Desktop\"")
}

func writeUserDirs(t *testing.T, configDir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "user-dirs.dirs"), []byte(content), 0o644))
}

func readUserDirs(t *testing.T, configDir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(configDir, "user-dirs.dirs"))
	require.NoError(t, err)
	return string(data)
}
