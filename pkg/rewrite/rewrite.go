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
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Rule defines a single pattern substitution over the whole text
type Rule struct {
	// Name identifies the rule in configs and reports
	Name string

	// Description is a one line human summary
	Description string

	// Pattern is matched against the full text, not line by line
	Pattern *regexp.Regexp

	// Replacement is expanded with regexp template syntax ($1, ${1})
	Replacement string

	// Effects are report lines, each formatted with the match count
	Effects []string

	// FileFilterGlob limits which target paths the rule applies to, empty means all
	FileFilterGlob string
}

// 🎯 AppliesTo reports whether the rule's glob matches the given path
func (r Rule) AppliesTo(path string) (bool, error) {
	if r.FileFilterGlob == "" {
		return true, nil
	}

	// doublestar matches on forward slashes and relative segments
	name := strings.TrimPrefix(filepath.ToSlash(path), "/")
	ok, err := doublestar.Match(r.FileFilterGlob, name)
	if err != nil {
		return false, errors.Errorf("rule %s: matching %q: %w", r.Name, r.FileFilterGlob, err)
	}
	return ok, nil
}

// 📊 Result contains the outcome of a rewrite
type Result struct {
	// WasModified indicates if any rule changed the text
	WasModified bool

	// ReplacementCount is the total number of matches replaced across rules
	ReplacementCount int

	// Counts holds the matches replaced per rule name, zero entries included
	Counts map[string]int

	// OriginalContent is the text before rewriting
	OriginalContent []byte

	// ModifiedContent is the text after rewriting
	ModifiedContent []byte
}

// Count returns the number of replacements made by the named rule
func (r *Result) Count(name string) int {
	if r == nil || r.Counts == nil {
		return 0
	}
	return r.Counts[name]
}

// TextRewriter defines the interface for whole-text rewrites
type TextRewriter interface {
	// Rewrite applies the rules in order and returns the rewritten text with counts
	Rewrite(ctx context.Context, content io.Reader, rules []Rule) (*Result, error)

	// ValidateRules checks that all rules are usable
	ValidateRules(rules []Rule) error
}
