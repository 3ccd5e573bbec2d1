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

// Package relocate sequences known-folder moves: resolve the current
// binding, decide, rebind the location store, then transfer contents.
package relocate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/foldermv/pkg/folders"
	"github.com/walteh/foldermv/pkg/store"
	"github.com/walteh/foldermv/pkg/transfer"
	"gitlab.com/tozd/go/errors"
)

// ErrConfiguration means the run could not start at all. Nothing was
// touched when it is returned.
var ErrConfiguration = errors.New("configuration error")

// 🚚 Engine is the bulk transfer primitive the orchestrator drives
type Engine interface {
	Move(ctx context.Context, src, dst string) (*transfer.Result, error)
}

// 🙋 Confirmer answers skip-or-continue questions. Injected so the core
// stays testable without a keyboard.
type Confirmer interface {
	Confirm(ctx context.Context, question string, def bool) (bool, error)
}

// 🔧 Options configures the operator
type Options struct {
	// BasePath is the root every folder lands under, as BasePath/<Kind>.
	BasePath string
	// Folders selects what to relocate; empty means every registered folder.
	Folders []folders.Kind
	// DryRun reports the plan without touching the store or the filesystem.
	DryRun bool
	// CreateBase creates a missing BasePath without asking.
	CreateBase bool

	Store   store.Store
	Engine  Engine
	Confirm Confirmer
}

// 🎮 Operator drives the per-folder relocation state machine
type Operator struct {
	opts Options
}

// 🏭 New creates an operator with the given options.
func New(opts Options) (*Operator, error) {
	if opts.BasePath == "" {
		return nil, errors.Errorf("base path is required: %w", ErrConfiguration)
	}
	if opts.Store == nil {
		return nil, errors.Errorf("store is required")
	}
	if opts.Engine == nil {
		return nil, errors.Errorf("engine is required")
	}
	if opts.Confirm == nil {
		return nil, errors.Errorf("confirmer is required")
	}
	if len(opts.Folders) == 0 {
		for _, b := range folders.All() {
			opts.Folders = append(opts.Folders, b.Kind)
		}
	}
	return &Operator{opts: opts}, nil
}

// 🏃 Run processes the selected folders strictly in order. Per-folder
// failures never abort the run; only a base-path problem is fatal, and it
// fires before any folder is touched.
func (o *Operator) Run(ctx context.Context) (*RunResult, error) {
	logger := zerolog.Ctx(ctx)

	if err := o.ensureBase(ctx); err != nil {
		return nil, err
	}

	result := &RunResult{}
	for _, kind := range o.opts.Folders {
		outcome := o.processFolder(ctx, kind)
		result.Outcomes = append(result.Outcomes, outcome)
		if outcome.Action == ActionMoved {
			result.Changed = true
		}

		logger.Info().
			Str("folder", kind.String()).
			Str("action", outcome.Action.String()).
			Str("old", outcome.OldPath).
			Str("new", outcome.NewPath).
			Msg("folder processed")
	}
	return result, nil
}

// ensureBase makes sure BasePath exists before any folder is processed.
// Dry-run never creates it: a dry run leaves the filesystem untouched.
func (o *Operator) ensureBase(ctx context.Context) error {
	info, err := os.Stat(o.opts.BasePath)
	if err == nil {
		if !info.IsDir() {
			return errors.Errorf("base path %s is not a directory: %w", o.opts.BasePath, ErrConfiguration)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return errors.Errorf("inspecting base path %s: %w", o.opts.BasePath, err)
	}

	if o.opts.DryRun {
		zerolog.Ctx(ctx).Debug().Str("base", o.opts.BasePath).Msg("base path missing, dry-run would create it")
		return nil
	}

	create := o.opts.CreateBase
	if !create {
		answer, err := o.opts.Confirm.Confirm(ctx,
			fmt.Sprintf("Base directory %s does not exist. Create it?", o.opts.BasePath), true)
		if err != nil {
			return errors.Errorf("asking about base creation: %w", err)
		}
		create = answer
	}
	if !create {
		return errors.Errorf("base path %s does not exist and creation was declined: %w", o.opts.BasePath, ErrConfiguration)
	}
	if err := os.MkdirAll(o.opts.BasePath, 0o755); err != nil {
		return errors.Errorf("creating base path %s: %w", o.opts.BasePath, err)
	}
	return nil
}

// processFolder runs one folder through Resolve -> Decide -> Skip/Report/
// Execute. Every exit produces a complete Outcome.
func (o *Operator) processFolder(ctx context.Context, kind folders.Kind) Outcome {
	outcome := Outcome{Folder: kind, NewPath: filepath.Join(o.opts.BasePath, kind.String())}

	id, ok := folders.StableID(kind)
	if !ok {
		outcome.Action = ActionFailed
		outcome.Err = errors.Errorf("folder %s is not registered", kind)
		outcome.Reason = "unregistered folder kind"
		return outcome
	}
	outcome.StableID = id

	// Resolve.
	oldPath, err := o.opts.Store.Resolve(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			outcome.Action = ActionSkipNotFound
			outcome.Reason = fmt.Sprintf("%q is not bound in the %s store", id, o.opts.Store.Name())
			return outcome
		}
		outcome.Action = ActionFailed
		outcome.Err = err
		outcome.Reason = "resolving current location"
		return outcome
	}
	outcome.OldPath = oldPath

	// Decide.
	alreadyRedirected := samePath(oldPath, outcome.NewPath)
	if alreadyRedirected {
		if o.opts.DryRun {
			outcome.Action = ActionDryRun
			outcome.Reason = "already redirected"
			return outcome
		}
		proceed, err := o.opts.Confirm.Confirm(ctx,
			fmt.Sprintf("%s already points at %s. Move remaining contents anyway?", kind, outcome.NewPath), false)
		if err != nil {
			outcome.Action = ActionFailed
			outcome.Err = err
			outcome.Reason = "asking about already-redirected folder"
			return outcome
		}
		if !proceed {
			outcome.Action = ActionSkipRedirected
			outcome.Reason = "already points at the target"
			return outcome
		}
	} else if nestedUnder(outcome.NewPath, oldPath) {
		// Moving a folder into a subdirectory of itself would eat its own
		// tail; refuse instead of guessing.
		outcome.Action = ActionFailed
		outcome.Err = errors.Errorf("destination %s is nested under current location %s", outcome.NewPath, oldPath)
		outcome.Reason = "destination nested under source"
		return outcome
	}

	// Report.
	if o.opts.DryRun {
		outcome.Action = ActionDryRun
		return outcome
	}

	// Execute. The destination must exist before the store points at it,
	// and the store must point at it before contents start moving.
	if err := os.MkdirAll(outcome.NewPath, 0o755); err != nil {
		outcome.Action = ActionFailed
		outcome.Err = err
		outcome.Reason = "creating destination directory"
		return outcome
	}

	if err := o.opts.Store.Bind(ctx, id, outcome.NewPath); err != nil {
		// A stale or half-written pointer with contents already moved would
		// strand data, so a failed bind stops this folder before transfer.
		outcome.Action = ActionFailed
		outcome.Err = err
		outcome.Reason = "updating location store"
		return outcome
	}

	// Continuing on an already-redirected folder refreshes the binding but
	// must not run the engine against itself.
	if alreadyRedirected {
		outcome.Action = ActionMoved
		outcome.Reason = "binding refreshed, contents already in place"
		return outcome
	}

	result, err := o.opts.Engine.Move(ctx, oldPath, outcome.NewPath)
	if err != nil {
		outcome.Action = ActionFailed
		outcome.Err = err
		outcome.Reason = "transferring contents"
		return outcome
	}
	outcome.Transfer = result

	if !result.Ok() {
		outcome.Action = ActionFailed
		outcome.Err = errors.Errorf("%d of %d files failed to move", result.Failed, len(result.Files))
		outcome.Reason = "some files failed after retries"
		return outcome
	}

	// NoSource still counts as relocated: the binding is updated and there
	// was simply nothing to carry over.
	outcome.Action = ActionMoved
	if result.NoSource {
		outcome.Reason = "no contents to move"
	}
	return outcome
}

// samePath compares paths case-insensitively, matching the behavior of the
// case-insensitive filesystems these folders live on.
func samePath(a, b string) bool {
	return strings.EqualFold(filepath.Clean(a), filepath.Clean(b))
}

// nestedUnder reports whether child sits strictly below parent.
func nestedUnder(child, parent string) bool {
	rel, err := filepath.Rel(filepath.Clean(parent), filepath.Clean(child))
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
