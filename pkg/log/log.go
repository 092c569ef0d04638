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
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	effectIndent = 2 // spaces to indent effect lines
)

// 🎯 RunState is the outcome of one migration run
type RunState int

const (
	RunUpdated   RunState = iota // target rewritten on disk
	RunPending                   // dry run, changes not written
	RunUnchanged                 // nothing matched
)

// Effect is one counted change in a run report
type Effect struct {
	Rule   string // Rule that produced the change
	Format string // Printf format taking the count
	Count  int    // Number of replacements
}

// 📦 RunReport is everything printed at the end of a run
type RunReport struct {
	Path    string
	State   RunState
	Effects []Effect
	Diff    string // Unified diff, only for dry runs
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger. Structured events go to stderr, user lines to console.
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatHeader formats the first line of a run report
func formatHeader(r RunReport) string {
	switch r.State {
	case RunUpdated:
		return fmt.Sprintf("%s thumbnails updated: %s",
			color.New(color.FgGreen).Sprint("[OK]"), r.Path)
	case RunPending:
		return fmt.Sprintf("%s thumbnails pending: %s",
			color.New(color.FgYellow).Sprint("[DRY RUN]"), r.Path)
	default:
		return fmt.Sprintf("%s nothing to update: %s",
			color.New(color.Faint).Sprint("[--]"), r.Path)
	}
}

// 📝 formatEffect formats one counted change
func formatEffect(e Effect) string {
	c := color.New(color.FgCyan)
	if e.Count == 0 {
		c = color.New(color.Faint)
	}
	return fmt.Sprintf("%*s- %s", effectIndent, "", c.Sprintf(e.Format, e.Count))
}

// 📝 LogRun prints a run report and mirrors it to zerolog
func (l *Logger) LogRun(ctx context.Context, r RunReport) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, formatHeader(r))
	for _, e := range r.Effects {
		fmt.Fprintln(l.console, formatEffect(e))
	}
	if r.Diff != "" {
		fmt.Fprintln(l.console)
		fmt.Fprint(l.console, r.Diff)
	}

	counts := zerolog.Dict()
	for _, e := range r.Effects {
		counts = counts.Int(e.Rule, e.Count)
	}
	l.zlog.Info().
		Str("path", r.Path).
		Int("state", int(r.State)).
		Dict("counts", counts).
		Bool("has_diff", r.Diff != "").
		Msg("migration run")
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("thumbfix")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}
