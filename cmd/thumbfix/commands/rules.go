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
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/walteh/thumbfix/cmd/thumbfix/opts"
)

// NewRulesCmd creates the rules command
func NewRulesCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rules the current config runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := opts.Config.SelectedRules()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, rule := range rules {
				fmt.Fprintf(out, "%d. %s  %s\n", i+1, color.New(color.Bold).Sprint(rule.Name), rule.Description)
				fmt.Fprintf(out, "   files: %s\n", rule.FileFilterGlob)
			}
			return nil
		},
	}

	return cmd
}
