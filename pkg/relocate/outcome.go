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

package relocate

import (
	"github.com/walteh/foldermv/pkg/folders"
	"github.com/walteh/foldermv/pkg/transfer"
)

// 📊 Action is the per-folder result category
type Action int

const (
	ActionMoved          Action = iota // relocated, store rebound
	ActionDryRun                       // plan reported, nothing touched
	ActionSkipNotFound                 // identifier absent from the store
	ActionSkipRedirected               // already points at the target, user skipped
	ActionFailed                       // bind or transfer failed, run continued
)

// String returns a string representation of Action
func (a Action) String() string {
	switch a {
	case ActionMoved:
		return "moved"
	case ActionDryRun:
		return "dry-run"
	case ActionSkipNotFound:
		return "skip (not bound)"
	case ActionSkipRedirected:
		return "skip (already redirected)"
	case ActionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 Outcome is one folder's fully-reported result. OldPath is empty when
// the identifier was not bound.
type Outcome struct {
	Folder   folders.Kind
	StableID string
	OldPath  string
	NewPath  string
	Action   Action
	Reason   string           // human-readable detail for skips and failures
	Err      error            // set for ActionFailed
	Transfer *transfer.Result // set when the engine ran
}

// 📦 RunResult is the ordered record of a whole run
type RunResult struct {
	Outcomes []Outcome

	// Changed means at least one folder was actually relocated, so processes
	// caching old locations are stale and may need a restart.
	Changed bool
}

// Failed returns the outcomes that ended in ActionFailed.
func (r *RunResult) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Action == ActionFailed {
			out = append(out, o)
		}
	}
	return out
}
