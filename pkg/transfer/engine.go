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

// Package transfer moves directory trees with copy-then-delete semantics,
// preserving file modes and timestamps.
package transfer

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🔧 Options configures the engine
type Options struct {
	// Retries is how many extra attempts a failing file copy gets.
	Retries int
	// RetryWait is the fixed wait between attempts.
	RetryWait time.Duration
	// Parallel bounds concurrent file copies within one move.
	Parallel int
	// IgnorePatterns are doublestar globs matched against the path relative
	// to the source root. Matching files stay behind.
	IgnorePatterns []string
}

// 🚚 Engine performs recursive moves
type Engine struct {
	opts Options
}

// 🏭 New creates an engine, filling in defaults: 1 retry, 500ms wait,
// 4 parallel copies.
func New(opts Options) *Engine {
	if opts.Retries <= 0 {
		opts.Retries = 1
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = 500 * time.Millisecond
	}
	if opts.Parallel <= 0 {
		opts.Parallel = 4
	}
	return &Engine{opts: opts}
}

// 🏃 Move relocates the tree at src into dst. Every file is copied before
// its source entry is removed; failed files stay in src. The returned
// accounting is computed only after all copy workers have joined.
func (e *Engine) Move(ctx context.Context, src, dst string) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	result := &Result{Source: src, Dest: dst}

	if strings.EqualFold(filepath.Clean(src), filepath.Clean(dst)) {
		return nil, errors.Errorf("source and destination are the same: %s", src)
	}

	srcInfo, err := os.Stat(src)
	if os.IsNotExist(err) {
		logger.Debug().Str("src", src).Msg("source does not exist, nothing to move")
		result.NoSource = true
		return result, nil
	}
	if err != nil {
		return nil, errors.Errorf("inspecting source %s: %w", src, err)
	}
	if !srcInfo.IsDir() {
		return nil, errors.Errorf("source %s is not a directory", src)
	}

	files, dirs, err := e.collect(src)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		logger.Debug().Str("src", src).Msg("source is empty, nothing to move")
		result.NoSource = true
		return result, nil
	}

	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return nil, errors.Errorf("creating destination %s: %w", dst, err)
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dst, d.rel), d.mode.Perm()); err != nil {
			return nil, errors.Errorf("creating destination dir %s: %w", d.rel, err)
		}
	}

	results := e.copyAll(ctx, src, dst, files)

	// Restore directory timestamps after the files beneath them landed.
	for i := len(dirs) - 1; i >= 0; i-- {
		_ = os.Chtimes(filepath.Join(dst, dirs[i].rel), dirs[i].modTime, dirs[i].modTime)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].RelPath < results[j].RelPath })
	result.Files = results
	for _, f := range results {
		switch f.Status {
		case StatusMoved:
			result.Moved++
		case StatusFailed:
			result.Failed++
		case StatusSkipped:
			result.Skipped++
		}
	}

	// Source dirs come down bottom-up, and only the ones actually emptied.
	// os.Remove refuses non-empty dirs, which is exactly what we want when
	// failed or skipped files remain.
	for i := len(dirs) - 1; i >= 0; i-- {
		_ = os.Remove(filepath.Join(src, dirs[i].rel))
	}
	if result.Failed == 0 && result.Skipped == 0 {
		_ = os.Remove(src)
	}

	logger.Info().
		Str("src", src).
		Str("dst", dst).
		Int("moved", result.Moved).
		Int("failed", result.Failed).
		Int("skipped", result.Skipped).
		Msg("move finished")
	return result, nil
}

// dirEntry remembers what is needed to recreate and later remove a source
// directory.
type dirEntry struct {
	rel     string
	mode    fs.FileMode
	modTime time.Time
}

// fileEntry is one file queued for copying.
type fileEntry struct {
	rel     string
	mode    fs.FileMode
	modTime time.Time
	symlink bool
}

// collect walks src and splits it into directories and files, applying
// ignore patterns to files.
func (e *Engine) collect(src string) ([]fileEntry, []dirEntry, error) {
	var files []fileEntry
	var dirs []dirEntry

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Errorf("walking %s: %w", path, err)
		}
		if path == src {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return errors.Errorf("relativizing %s: %w", path, err)
		}

		info, err := d.Info()
		if err != nil {
			return errors.Errorf("inspecting %s: %w", path, err)
		}

		if d.IsDir() {
			dirs = append(dirs, dirEntry{rel: rel, mode: info.Mode(), modTime: info.ModTime()})
			return nil
		}

		files = append(files, fileEntry{
			rel:     rel,
			mode:    info.Mode(),
			modTime: info.ModTime(),
			symlink: info.Mode()&fs.ModeSymlink != 0,
		})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return files, dirs, nil
}

// copyAll moves the collected files with bounded parallelism. Per-file
// failures are recorded, never propagated: the group itself cannot fail.
func (e *Engine) copyAll(ctx context.Context, src, dst string, files []fileEntry) []FileResult {
	var mu sync.Mutex
	results := make([]FileResult, 0, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Parallel)

	for _, f := range files {
		f := f
		g.Go(func() error {
			res := e.moveOne(ctx, src, dst, f)
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// moveOne copies a single file with bounded retries, then removes the
// source entry.
func (e *Engine) moveOne(ctx context.Context, src, dst string, f fileEntry) FileResult {
	logger := zerolog.Ctx(ctx)
	res := FileResult{RelPath: f.rel}

	if e.ignored(f.rel) {
		logger.Debug().Str("file", f.rel).Msg("file excluded by ignore pattern")
		res.Status = StatusSkipped
		return res
	}

	srcPath := filepath.Join(src, f.rel)
	dstPath := filepath.Join(dst, f.rel)

	var err error
	for attempt := 1; attempt <= e.opts.Retries+1; attempt++ {
		res.Attempts = attempt
		err = e.copyEntry(srcPath, dstPath, f)
		if err == nil {
			break
		}
		logger.Warn().Str("file", f.rel).Int("attempt", attempt).Err(err).Msg("copy attempt failed")
		if attempt <= e.opts.Retries {
			time.Sleep(e.opts.RetryWait)
		}
	}
	if err != nil {
		res.Status = StatusFailed
		res.Err = err
		return res
	}

	if err := os.Remove(srcPath); err != nil {
		// The copy landed but the source survives. Report as failed so the
		// caller knows the tree is not fully drained; a re-run will settle it.
		res.Status = StatusFailed
		res.Err = errors.Errorf("removing source after copy: %w", err)
		return res
	}

	res.Status = StatusMoved
	return res
}

// copyEntry copies one filesystem entry, preserving mode and mod time.
func (e *Engine) copyEntry(srcPath, dstPath string, f fileEntry) error {
	if f.symlink {
		target, err := os.Readlink(srcPath)
		if err != nil {
			return errors.Errorf("reading link: %w", err)
		}
		_ = os.Remove(dstPath)
		if err := os.Symlink(target, dstPath); err != nil {
			return errors.Errorf("creating link: %w", err)
		}
		return nil
	}

	in, err := os.Open(srcPath)
	if err != nil {
		return errors.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.mode.Perm())
	if err != nil {
		return errors.Errorf("creating destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		_ = os.Remove(dstPath)
		return errors.Errorf("copying content: %w", err)
	}
	if err := out.Close(); err != nil {
		return errors.Errorf("flushing destination: %w", err)
	}

	if err := os.Chmod(dstPath, f.mode.Perm()); err != nil {
		return errors.Errorf("preserving mode: %w", err)
	}
	if err := os.Chtimes(dstPath, f.modTime, f.modTime); err != nil {
		return errors.Errorf("preserving timestamps: %w", err)
	}
	return nil
}

// ignored checks rel against the configured patterns.
func (e *Engine) ignored(rel string) bool {
	if len(e.opts.IgnorePatterns) == 0 {
		return false
	}
	normalized := filepath.ToSlash(rel)
	for _, pattern := range e.opts.IgnorePatterns {
		if ok, err := doublestar.Match(pattern, normalized); err == nil && ok {
			return true
		}
		// Also match against the bare file name so plain patterns like
		// desktop.ini apply at any depth.
		if ok, err := doublestar.Match(pattern, filepath.Base(normalized)); err == nil && ok {
			return true
		}
	}
	return false
}
