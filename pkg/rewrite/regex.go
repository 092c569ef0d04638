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

package rewrite

import (
	"context"
	"io"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// RegexRewriter implements TextRewriter with sequential regexp substitutions
type RegexRewriter struct{}

// NewRegexRewriter creates a new RegexRewriter
func NewRegexRewriter() *RegexRewriter {
	return &RegexRewriter{}
}

// Rewrite implements TextRewriter.Rewrite
func (r *RegexRewriter) Rewrite(ctx context.Context, content io.Reader, rules []Rule) (*Result, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &Result{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
		Counts:          make(map[string]int, len(rules)),
	}

	logger := zerolog.Ctx(ctx)
	current := string(originalContent)
	for _, rule := range rules {
		if rule.Pattern == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("rewriting before rule %s: %w", rule.Name, err)
		}

		var n int
		current, n = apply(current, rule)
		result.Counts[rule.Name] += n
		result.ReplacementCount += n
		if n > 0 {
			result.WasModified = true
		}

		logger.Debug().
			Str("rule", rule.Name).
			Int("replacements", n).
			Msg("applied rule")
	}

	result.ModifiedContent = []byte(current)
	return result, nil
}

// ValidateRules implements TextRewriter.ValidateRules
func (r *RegexRewriter) ValidateRules(rules []Rule) error {
	seen := make(map[string]bool, len(rules))
	for i, rule := range rules {
		if rule.Name == "" {
			return errors.Errorf("rule %d: name is required", i)
		}
		if rule.Pattern == nil {
			return errors.Errorf("rule %d: pattern is required", i)
		}
		if seen[rule.Name] {
			return errors.Errorf("rule %d: duplicate name %q", i, rule.Name)
		}
		if rule.FileFilterGlob != "" && !doublestar.ValidatePattern(rule.FileFilterGlob) {
			return errors.Errorf("rule %d: invalid file_filter_glob %q", i, rule.FileFilterGlob)
		}
		seen[rule.Name] = true
	}
	return nil
}

// RewriteString applies rules to text in memory and returns the new text with per-rule counts
func RewriteString(text string, rules []Rule) (string, map[string]int) {
	counts := make(map[string]int, len(rules))
	for _, rule := range rules {
		if rule.Pattern == nil {
			continue
		}
		var n int
		text, n = apply(text, rule)
		counts[rule.Name] += n
	}
	return text, counts
}

func apply(text string, rule Rule) (string, int) {
	n := len(rule.Pattern.FindAllStringIndex(text, -1))
	if n == 0 {
		return text, 0
	}

	// matches can't overlap, so the count above equals the number of substitutions
	if !strings.Contains(rule.Replacement, "$") {
		return rule.Pattern.ReplaceAllLiteralString(text, rule.Replacement), n
	}
	return rule.Pattern.ReplaceAllString(text, rule.Replacement), n
}
