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

//go:build windows

package commands

import (
	"context"
	"os/exec"
	"time"

	"gitlab.com/tozd/go/errors"
)

// restartShell bounces explorer.exe so it drops its cached folder
// locations. taskkill exits non-zero when explorer was not running, which
// is fine; explorer normally respawns itself, the explicit start is a
// fallback.
func restartShell(ctx context.Context) error {
	_ = exec.CommandContext(ctx, "taskkill", "/f", "/im", "explorer.exe").Run()
	time.Sleep(time.Second)

	if err := exec.CommandContext(ctx, "explorer.exe").Start(); err != nil {
		return errors.Errorf("starting explorer: %w", err)
	}
	return nil
}
