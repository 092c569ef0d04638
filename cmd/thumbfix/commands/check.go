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
package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/thumbfix/cmd/thumbfix/opts"
	"github.com/walteh/thumbfix/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// ErrChangesPending is returned by check when the target still needs migrating
var ErrChangesPending = errors.Base("thumbnails still need migrating")

// NewCheckCmd creates the check command
func NewCheckCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Show what apply would change without writing",
		Long: `Check runs the migration as a dry run and prints a unified diff of the
pending changes. It fails when the target is not yet migrated, so it can gate CI.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg := *opts.Config
			cfg.DryRun = true
			if opts.Strict {
				cfg.RequireMatch = true
			}

			report, err := operation.Migrate(ctx, operation.Options{
				Config: &cfg,
				Target: targetArg(args),
				Logger: opts.Logger,
			})
			if err != nil {
				return errors.Errorf("checking target: %w", err)
			}

			if report.Changed() {
				return errors.Errorf("%s: %w", report.Path, ErrChangesPending)
			}
			opts.UserLogger.LogValidation(true, "thumbnails already migrated", nil)
			return nil
		},
	}

	return cmd
}
