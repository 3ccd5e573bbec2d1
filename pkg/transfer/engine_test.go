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

package transfer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/foldermv/pkg/transfer"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

// writeFile creates a file with content and a fixed mod time, returning
// that time.
func writeFile(t *testing.T, path, content string) time.Time {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	stamp := time.Date(2023, 6, 1, 12, 0, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(path, stamp, stamp))
	return stamp
}

// 🧪 TestMoveTree tests a full move of a nested tree
func TestMoveTree(t *testing.T) {
	ctx := testContext(t)
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	dst := filepath.Join(tmp, "dst")

	stamp := writeFile(t, filepath.Join(src, "a.txt"), "alpha")
	writeFile(t, filepath.Join(src, "sub", "b.txt"), "bravo")
	writeFile(t, filepath.Join(src, "sub", "deep", "c.txt"), "charlie")

	engine := transfer.New(transfer.Options{RetryWait: time.Millisecond})
	result, err := engine.Move(ctx, src, dst)
	require.NoError(t, err)

	assert.False(t, result.NoSource)
	assert.True(t, result.Ok())
	assert.Equal(t, 3, result.Moved)
	assert.Equal(t, 0, result.Failed)

	// Contents arrived with identical relative paths.
	data, err := os.ReadFile(filepath.Join(dst, "sub", "deep", "c.txt"))
	require.NoError(t, err)
	assert.Equal(t, "charlie", string(data))

	// Timestamps preserved.
	info, err := os.Stat(filepath.Join(dst, "a.txt"))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(stamp), "mod time should be preserved")

	// Source tree is gone.
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err), "source should be removed on full success")

	// Accounting is sorted and complete.
	require.Len(t, result.Files, 3)
	assert.Equal(t, "a.txt", result.Files[0].RelPath)
}

// 🧪 TestMoveNoSource tests missing and empty sources
func TestMoveNoSource(t *testing.T) {
	ctx := testContext(t)
	tmp := t.TempDir()
	engine := transfer.New(transfer.Options{})

	result, err := engine.Move(ctx, filepath.Join(tmp, "missing"), filepath.Join(tmp, "dst"))
	require.NoError(t, err)
	assert.True(t, result.NoSource)

	empty := filepath.Join(tmp, "empty")
	require.NoError(t, os.MkdirAll(empty, 0o755))
	result, err = engine.Move(ctx, empty, filepath.Join(tmp, "dst2"))
	require.NoError(t, err)
	assert.True(t, result.NoSource)

	// A no-op move touches nothing.
	_, err = os.Stat(filepath.Join(tmp, "dst2"))
	assert.True(t, os.IsNotExist(err))
}

// 🧪 TestMoveIgnorePatterns tests that excluded files stay in the source
func TestMoveIgnorePatterns(t *testing.T) {
	ctx := testContext(t)
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	dst := filepath.Join(tmp, "dst")

	writeFile(t, filepath.Join(src, "a.txt"), "alpha")
	writeFile(t, filepath.Join(src, "sub", "desktop.ini"), "[shell]")

	engine := transfer.New(transfer.Options{
		RetryWait:      time.Millisecond,
		IgnorePatterns: []string{"desktop.ini"},
	})
	result, err := engine.Move(ctx, src, dst)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Moved)
	assert.Equal(t, 1, result.Skipped)
	assert.True(t, result.Ok(), "skips are not failures")

	// Ignored file stayed behind, its directory with it.
	_, err = os.Stat(filepath.Join(src, "sub", "desktop.ini"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dst, "sub", "desktop.ini"))
	assert.True(t, os.IsNotExist(err))
}

// 🧪 TestMovePartialFailure tests per-file failure isolation and retry
// accounting
func TestMovePartialFailure(t *testing.T) {
	ctx := testContext(t)
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	dst := filepath.Join(tmp, "dst")

	writeFile(t, filepath.Join(src, "good.txt"), "fine")
	writeFile(t, filepath.Join(src, "stuck.txt"), "blocked")

	// A directory squatting on the destination path makes every copy
	// attempt for stuck.txt fail.
	require.NoError(t, os.MkdirAll(filepath.Join(dst, "stuck.txt"), 0o755))

	engine := transfer.New(transfer.Options{Retries: 1, RetryWait: time.Millisecond})
	result, err := engine.Move(ctx, src, dst)
	require.NoError(t, err, "partial failure is reported, not raised")

	assert.Equal(t, 1, result.Moved)
	assert.Equal(t, 1, result.Failed)
	assert.False(t, result.Ok())

	failed := result.FailedFiles()
	require.Len(t, failed, 1)
	assert.Equal(t, "stuck.txt", failed[0].RelPath)
	assert.Equal(t, 2, failed[0].Attempts, "one retry after the first attempt")
	assert.Error(t, failed[0].Err)

	// The failed file survives in the source, the moved one does not.
	_, err = os.Stat(filepath.Join(src, "stuck.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(src, "good.txt"))
	assert.True(t, os.IsNotExist(err))

	// Source root must survive while it still holds data.
	_, err = os.Stat(src)
	assert.NoError(t, err)
}

// 🧪 TestMoveSourceNotDirectory tests the non-directory guard
func TestMoveSourceNotDirectory(t *testing.T) {
	ctx := testContext(t)
	tmp := t.TempDir()
	file := filepath.Join(tmp, "plain.txt")
	writeFile(t, file, "x")

	engine := transfer.New(transfer.Options{})
	_, err := engine.Move(ctx, file, filepath.Join(tmp, "dst"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

// 🧪 TestMoveSameDirRefused tests the self-move guard
func TestMoveSameDirRefused(t *testing.T) {
	ctx := testContext(t)
	tmp := t.TempDir()
	src := filepath.Join(tmp, "Documents")
	writeFile(t, filepath.Join(src, "a.txt"), "alpha")

	engine := transfer.New(transfer.Options{})
	_, err := engine.Move(ctx, src, filepath.Join(tmp, "documents"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source and destination are the same")

	// Nothing was harmed.
	data, readErr := os.ReadFile(filepath.Join(src, "a.txt"))
	require.NoError(t, readErr)
	assert.Equal(t, "alpha", string(data))
}
