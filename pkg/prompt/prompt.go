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

// Package prompt holds the interactive decision layer. The orchestrator only
// sees the Confirmer interface, so everything here stays swappable in tests.
package prompt

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/walteh/foldermv/pkg/folders"
	"gitlab.com/tozd/go/errors"
)

// 💬 Interactive asks on the terminal via pterm
type Interactive struct{}

// Confirm implements relocate.Confirmer.
func (Interactive) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	answer, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(def).
		Show(question)
	if err != nil {
		return false, errors.Errorf("reading confirmation: %w", err)
	}
	return answer, nil
}

// 🤖 Static answers every question the same way; used for --yes runs and
// non-interactive callers.
type Static struct {
	Answer bool
}

// Confirm implements relocate.Confirmer.
func (s Static) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	return s.Answer, nil
}

// 📋 SelectFolders shows a multiselect over the registry, in menu order,
// and returns the chosen kinds.
func SelectFolders(ctx context.Context) ([]folders.Kind, error) {
	var options []string
	for _, b := range folders.All() {
		options = append(options, b.Kind.String())
	}

	chosen, err := pterm.DefaultInteractiveMultiselect.
		WithOptions(options).
		WithDefaultText("Folders to relocate").
		Show()
	if err != nil {
		return nil, errors.Errorf("reading folder selection: %w", err)
	}
	if len(chosen) == 0 {
		return nil, errors.Errorf("no folders selected")
	}

	kinds := make([]folders.Kind, len(chosen))
	for i, name := range chosen {
		kinds[i] = folders.Kind(name)
	}
	return kinds, nil
}
