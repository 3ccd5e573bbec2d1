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

package transfer

// 📊 FileStatus is the outcome of one file within a move
type FileStatus int

const (
	StatusMoved   FileStatus = iota // copied to dest, source removed
	StatusFailed                    // copy or source removal failed after retries
	StatusSkipped                   // excluded by ignore pattern, left in source
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusMoved:
		return "moved"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// 📄 FileResult is the per-file accounting entry
type FileResult struct {
	RelPath  string     // path relative to the source root
	Status   FileStatus // final status after retries
	Attempts int        // copy attempts made
	Err      error      // last error for failed files
}

// 📦 Result is the whole-tree accounting of one move. It is assembled only
// after every worker has finished, so counts never change once returned.
type Result struct {
	Source string
	Dest   string

	// NoSource means the source did not exist or was empty. A valid no-op,
	// not an error.
	NoSource bool

	Files   []FileResult
	Moved   int
	Failed  int
	Skipped int
}

// Ok reports whether every file made it across.
func (r *Result) Ok() bool {
	return r.Failed == 0
}

// FailedFiles returns the entries that failed after retries.
func (r *Result) FailedFiles() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if f.Status == StatusFailed {
			out = append(out, f)
		}
	}
	return out
}
