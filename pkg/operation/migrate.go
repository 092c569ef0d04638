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

package operation

import (
	"context"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog"
	"github.com/walteh/thumbfix/pkg/log"
	"github.com/walteh/thumbfix/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
)

// 📊 Report describes what a migration run did
type Report struct {
	Path    string
	Counts  map[string]int // replacements per rule name
	Effects []log.Effect
	Written bool
	DryRun  bool
	Diff    string // unified diff, dry runs only
}

// Changed reports whether any rule replaced something
func (r *Report) Changed() bool {
	for _, n := range r.Counts {
		if n > 0 {
			return true
		}
	}
	return false
}

// 📦 MigrateOperation rewrites the target file's photo thumbnails
type MigrateOperation struct {
	BaseOperation
	report *Report
}

// 📦 NewMigrateOperation creates a new migrate operation
func NewMigrateOperation(opts Options) *MigrateOperation {
	return &MigrateOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

// Report returns the outcome of the last Execute, nil before it ran
func (op *MigrateOperation) Report() *Report {
	return op.report
}

// 🏃 Execute runs read → rewrite → write → report
func (op *MigrateOperation) Execute(ctx context.Context) error {
	if op.Config == nil {
		return errors.Errorf("config is required")
	}

	path, err := op.targetPath()
	if err != nil {
		return errors.Errorf("resolving target: %w", err)
	}

	zlog := zerolog.Ctx(ctx).With().Str("path", path).Logger()
	ctx = zlog.WithContext(ctx)
	out := op.logger(ctx)

	rules, err := op.rulesFor(path)
	if err != nil {
		return err
	}
	if err := op.Rewriter.ValidateRules(rules); err != nil {
		return errors.Errorf("validating rules: %w", err)
	}
	if len(rules) == 0 {
		if op.Config.RequireMatch {
			return errors.Errorf("%s: no rule accepts this path: %w", path, ErrNoMatch)
		}
		out.Warningf("no rule accepts %s (file_filter_glob %q)", path, op.Config.FileFilterGlob)
	}

	file, err := op.Store.Read(ctx, path)
	if err != nil {
		return errors.Errorf("reading target: %w", err)
	}

	result, err := op.Rewriter.Rewrite(ctx, strings.NewReader(file.Content), rules)
	if err != nil {
		return errors.Errorf("rewriting %s: %w", path, err)
	}

	report := &Report{
		Path:    path,
		Counts:  result.Counts,
		Effects: effects(rules, result),
		DryRun:  op.Config.DryRun,
	}
	op.report = report

	if missing := missingMatch(rules, result); missing != "" {
		if op.Config.RequireMatch {
			return errors.Errorf("%s: rule %s: %w", path, missing, ErrNoMatch)
		}
		out.Warningf("rule %s matched nothing in %s", missing, path)
	}

	modified := string(result.ModifiedContent)
	state := log.RunUnchanged
	switch {
	case !result.WasModified:
		zlog.Info().Msg("target already up to date")
	case op.Config.DryRun:
		state = log.RunPending
		report.Diff, err = unifiedDiff(path, file.Content, modified)
		if err != nil {
			return err
		}
	default:
		if err := op.Store.Write(ctx, file, modified); err != nil {
			return errors.Errorf("writing target: %w", err)
		}
		report.Written = true
		state = log.RunUpdated
	}

	out.LogRun(ctx, log.RunReport{
		Path:    path,
		State:   state,
		Effects: report.Effects,
		Diff:    report.Diff,
	})

	return nil
}

// rulesFor returns the configured rules whose glob accepts path
func (op *MigrateOperation) rulesFor(path string) ([]rewrite.Rule, error) {
	selected, err := op.Config.SelectedRules()
	if err != nil {
		return nil, errors.Errorf("selecting rules: %w", err)
	}

	rules := make([]rewrite.Rule, 0, len(selected))
	for _, rule := range selected {
		ok, err := rule.AppliesTo(path)
		if err != nil {
			return nil, err
		}
		if ok {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

// missingMatch names the rule whose lack of matches means there was nothing to
// migrate: the wrap rule when it ran, otherwise the first rule when none matched.
func missingMatch(rules []rewrite.Rule, result *rewrite.Result) string {
	if len(rules) == 0 {
		return ""
	}
	for _, rule := range rules {
		if rule.Name == rewrite.WrapThumbnailRuleName {
			if result.Count(rule.Name) == 0 {
				return rule.Name
			}
			return ""
		}
	}
	if result.ReplacementCount == 0 {
		return rules[0].Name
	}
	return ""
}

func effects(rules []rewrite.Rule, result *rewrite.Result) []log.Effect {
	var out []log.Effect
	for _, rule := range rules {
		for _, format := range rule.Effects {
			out = append(out, log.Effect{
				Rule:   rule.Name,
				Format: format,
				Count:  result.Count(rule.Name),
			})
		}
	}
	return out
}

func unifiedDiff(path, before, after string) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path + " (migrated)",
		Context:  3,
	})
	if err != nil {
		return "", errors.Errorf("rendering diff: %w", err)
	}
	return diff, nil
}
