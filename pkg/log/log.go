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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	entryIndent = 4  // spaces to indent per-folder entries
	nameWidth   = 12 // width for the folder name
	actionWidth = 28 // width for the action text
)

// 🎯 FolderOperation represents one folder's outcome for logging
type FolderOperation struct {
	Folder  string // Folder name
	OldPath string // Resolved current path, empty when unbound
	NewPath string // Computed target path
	Action  string // Outcome text
	Detail  string // Extra reason/detail, may be empty
	IsMoved bool   // Folder was relocated
	IsSkip  bool   // Folder was skipped
	IsError bool   // Folder failed
	Files   int    // Files carried over
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, or a console-less fallback.
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return New(io.Discard, zerolog.Disabled)
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFolderOperation formats a folder outcome for display
func (l *Logger) formatFolderOperation(op FolderOperation) string {
	var symbol string
	switch {
	case op.IsError:
		symbol = color.RedString("✗")
	case op.IsMoved:
		symbol = color.GreenString("✓")
	case op.IsSkip:
		symbol = color.HiBlackString("-")
	default:
		symbol = color.BlueString("•")
	}

	namePart := fmt.Sprintf("%-*s", nameWidth, op.Folder)
	actionPart := color.New(color.Faint).Sprint(fmt.Sprintf("%-*s", actionWidth, op.Action))

	line := fmt.Sprintf("%*s%s %s %s", entryIndent, "", symbol, namePart, actionPart)
	if op.OldPath != "" || op.NewPath != "" {
		line += fmt.Sprintf(" %s %s %s",
			op.OldPath,
			color.New(color.FgYellow).Sprint("→"),
			color.New(color.FgCyan).Sprint(op.NewPath))
	}
	if op.Detail != "" {
		line += color.New(color.Faint).Sprint(" (" + op.Detail + ")")
	}
	return line
}

// 📝 LogFolderOperation logs one folder's outcome
func (l *Logger) LogFolderOperation(ctx context.Context, op FolderOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatFolderOperation(op))

	l.zlog.Info().
		Str("folder", op.Folder).
		Str("old", op.OldPath).
		Str("new", op.NewPath).
		Str("action", op.Action).
		Bool("moved", op.IsMoved).
		Bool("skipped", op.IsSkip).
		Bool("failed", op.IsError).
		Int("files", op.Files).
		Msg("folder operation")
}

// 📝 Header logs a run header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("foldermv")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
