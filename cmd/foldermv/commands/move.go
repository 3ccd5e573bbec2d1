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

package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/walteh/foldermv/cmd/foldermv/opts"
	"github.com/walteh/foldermv/pkg/folders"
	"github.com/walteh/foldermv/pkg/prompt"
	"github.com/walteh/foldermv/pkg/relocate"
	"github.com/walteh/foldermv/pkg/transfer"
	"gitlab.com/tozd/go/errors"
)

// OptsFactory builds shared dependencies once flags are parsed.
type OptsFactory func(ctx context.Context) (*opts.RootOpts, error)

// NewMoveCmd creates a new move command
func NewMoveCmd(factory OptsFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Relocate the selected folders and migrate their contents",
		Long: `Move relocates each selected folder under the base directory.
For every folder it will:
1. Resolve the current location from the OS store
2. Create the new directory and rebind the store to it
3. Move the existing contents, preserving timestamps and attributes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ro, err := factory(ctx)
			if err != nil {
				return err
			}

			result, err := runRelocation(ctx, ro, ro.Config.DryRun)
			if err != nil {
				return err
			}

			if result.Changed && ro.Config.RestartShell {
				ro.Logger.Info("restarting shell to pick up the new locations")
				if err := restartShell(ctx); err != nil {
					ro.Logger.Warningf("shell restart failed: %v", err)
				}
			}
			return nil
		},
	}

	return cmd
}

// runRelocation wires the operator and renders every outcome. Shared by
// move and plan.
func runRelocation(ctx context.Context, ro *opts.RootOpts, dryRun bool) (*relocate.RunResult, error) {
	kinds, err := selectKinds(ctx, ro, dryRun)
	if err != nil {
		return nil, err
	}

	var confirm relocate.Confirmer = prompt.Interactive{}
	if ro.Config.Yes {
		confirm = prompt.Static{Answer: true}
	} else if dryRun || !isatty.IsTerminal(os.Stdin.Fd()) {
		confirm = prompt.Static{}
	}

	engineOpts := transfer.Options{}
	if t := ro.Config.Transfer; t != nil {
		engineOpts = transfer.Options{
			Retries:        t.Retries,
			RetryWait:      t.RetryWait,
			Parallel:       t.Parallel,
			IgnorePatterns: t.IgnorePatterns,
		}
	}

	op, err := relocate.New(relocate.Options{
		BasePath:   ro.Config.BasePath,
		Folders:    kinds,
		DryRun:     dryRun,
		CreateBase: ro.Config.CreateBase,
		Store:      ro.Store,
		Engine:     transfer.New(engineOpts),
		Confirm:    confirm,
	})
	if err != nil {
		return nil, errors.Errorf("creating operator: %w", err)
	}

	verb := "relocating"
	if dryRun {
		verb = "planning relocation of"
	}
	ro.Logger.Header(fmt.Sprintf("%s %d folders to %s", verb, len(kinds), ro.Config.BasePath))

	result, err := op.Run(ctx)
	if err != nil {
		return nil, errors.Errorf("running relocation: %w", err)
	}

	renderOutcomes(ctx, ro, result)
	return result, nil
}

// selectKinds resolves the folder selection: explicit config first, then an
// interactive menu on a terminal, otherwise everything.
func selectKinds(ctx context.Context, ro *opts.RootOpts, dryRun bool) ([]folders.Kind, error) {
	if len(ro.Config.Folders) > 0 {
		kinds, err := folders.ParseSelection(strings.Join(ro.Config.Folders, ","))
		if err != nil {
			return nil, errors.Errorf("parsing folder selection: %w", err)
		}
		return kinds, nil
	}

	if !dryRun && !ro.Config.Yes && isatty.IsTerminal(os.Stdin.Fd()) {
		return prompt.SelectFolders(ctx)
	}

	return folders.ParseSelection("")
}

// renderOutcomes prints one line per folder plus a run summary.
func renderOutcomes(ctx context.Context, ro *opts.RootOpts, result *relocate.RunResult) {
	moved, planned, skipped, failed := 0, 0, 0, 0
	for _, outcome := range result.Outcomes {
		files := 0
		if outcome.Transfer != nil {
			files = outcome.Transfer.Moved
		}
		detail := outcome.Reason
		if outcome.Err != nil {
			detail = outcome.Err.Error()
		}

		ro.Logger.LogFolderOperation(ctx, logOperation(outcome, files, detail))

		switch outcome.Action {
		case relocate.ActionMoved:
			moved++
		case relocate.ActionDryRun:
			planned++
		case relocate.ActionFailed:
			failed++
		case relocate.ActionSkipNotFound, relocate.ActionSkipRedirected:
			skipped++
		}
	}

	switch {
	case failed > 0:
		ro.Logger.Warningf("%d moved, %d skipped, %d failed. re-run after fixing the failures", moved, skipped, failed)
	case moved > 0:
		ro.Logger.Successf("%d folders relocated, %d skipped", moved, skipped)
	case planned > 0:
		ro.Logger.Infof("%d folders would be relocated, %d skipped", planned, skipped)
	default:
		ro.Logger.Info("nothing to do")
	}
}
