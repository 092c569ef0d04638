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

// NewApplyCmd creates the apply command
func NewApplyCmd(opts *opts.RootOpts) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply [path]",
		Short: "Rewrite the target screen in place",
		Long: `Apply migrates the photo card thumbnails of one screen.
The target is the path argument, else THUMBFIX_TARGET, else the config's target.
Running it again on a migrated screen changes nothing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg := *opts.Config
			if dryRun {
				cfg.DryRun = true
			}
			if opts.Strict {
				cfg.RequireMatch = true
			}

			opts.Logger.Header("migrating photo thumbnails")
			report, err := operation.Migrate(ctx, operation.Options{
				Config: &cfg,
				Target: targetArg(args),
				Logger: opts.Logger,
			})
			if err != nil {
				return errors.Errorf("applying migration: %w", err)
			}

			if report.DryRun && report.Changed() {
				opts.UserLogger.LogValidation(false, "dry run, nothing written", nil)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the diff instead of writing")

	return cmd
}

func targetArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
