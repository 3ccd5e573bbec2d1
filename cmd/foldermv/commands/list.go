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
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/foldermv/pkg/folders"
	"github.com/walteh/foldermv/pkg/store"
	"gitlab.com/tozd/go/errors"
)

// NewListCmd creates a new list command
func NewListCmd(factory OptsFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the known folders and their current locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ro, err := factory(ctx)
			if err != nil {
				return err
			}

			rows := pterm.TableData{{"#", "Folder", "Identifier", "Current location"}}
			for i, b := range folders.All() {
				location, err := ro.Store.Resolve(ctx, b.StableID)
				if err != nil {
					if errors.Is(err, store.ErrNotFound) {
						location = "(not bound)"
					} else {
						return errors.Errorf("resolving %s: %w", b.Kind, err)
					}
				}
				rows = append(rows, []string{
					pterm.Sprintf("%d", i+1),
					b.Kind.String(),
					b.StableID,
					location,
				})
			}

			return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
		},
	}

	return cmd
}
