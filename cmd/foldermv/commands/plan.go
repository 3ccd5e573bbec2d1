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
	"github.com/spf13/cobra"
)

// NewPlanCmd creates a new plan command
func NewPlanCmd(factory OptsFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what move would do, without touching anything",
		Long: `Plan resolves every selected folder and reports the old and new
location plus the intended store rebind. The location store and the
filesystem are left exactly as they were.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ro, err := factory(ctx)
			if err != nil {
				return err
			}

			_, err = runRelocation(ctx, ro, true)
			return err
		},
	}

	return cmd
}
