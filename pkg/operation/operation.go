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

	"github.com/walteh/thumbfix/pkg/config"
	"github.com/walteh/thumbfix/pkg/log"
	"github.com/walteh/thumbfix/pkg/rewrite"
	"github.com/walteh/thumbfix/pkg/target"
	"gitlab.com/tozd/go/errors"
)

// ErrNoMatch is returned in strict mode when the target has nothing to migrate
var ErrNoMatch = errors.Base("no thumbnail matched")

// 🎯 Operation is a single executable step
type Operation interface {
	Execute(ctx context.Context) error
}

// 💾 Store reads and writes the target file
type Store interface {
	Read(ctx context.Context, path string) (*target.File, error)
	Write(ctx context.Context, file *target.File, content string) error
}

// 🔧 Options contains everything an operation needs
type Options struct {
	// Config selects rules and switches, required
	Config *config.Config
	// Target overrides the config target when set
	Target string
	// Rewriter defaults to a RegexRewriter
	Rewriter rewrite.TextRewriter
	// Store defaults to target.New()
	Store Store
	// Logger defaults to the logger in the context
	Logger *log.Logger
}

// 🧱 BaseOperation holds the resolved options shared by operations
type BaseOperation struct {
	Options
}

// 🏭 NewBaseOperation fills defaults for unset options
func NewBaseOperation(opts Options) BaseOperation {
	if opts.Rewriter == nil {
		opts.Rewriter = rewrite.NewRegexRewriter()
	}
	if opts.Store == nil {
		opts.Store = target.New()
	}
	return BaseOperation{Options: opts}
}

// logger returns the configured logger or the one carried by ctx
func (op *BaseOperation) logger(ctx context.Context) *log.Logger {
	if op.Logger != nil {
		return op.Logger
	}
	return log.FromContext(ctx)
}

// 🎯 targetPath returns the explicit target or the configured one
func (op *BaseOperation) targetPath() (string, error) {
	if op.Target != "" {
		return op.Target, nil
	}
	if op.Config == nil {
		return "", config.ErrNoTarget
	}
	return op.Config.ResolveTarget()
}
