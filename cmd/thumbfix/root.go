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
package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/thumbfix/cmd/thumbfix/commands"
	"github.com/walteh/thumbfix/cmd/thumbfix/opts"
	"github.com/walteh/thumbfix/pkg/config"
	"github.com/walteh/thumbfix/pkg/log"
	"gitlab.com/tozd/go/errors"
)

const defaultConfigFile = ".thumbfix.yaml"

type rootFlags struct {
	configFile string
	debug      bool
	strict     bool
}

// newRootCmd builds the command tree. out receives user facing output; a nil
// environ reads the process environment.
func newRootCmd(out io.Writer, environ map[string]string) *cobra.Command {
	flags := &rootFlags{}
	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "thumbfix",
		Short: "Migrate photo card thumbnails in a React Native screen",
		Long: `thumbfix rewrites a screen's photo cards so each thumbnail is wrapped in a
TouchableOpacity that opens the photo fullscreen and is rendered through
PhotoWithPlaca, then removes the renderUtmBadge overlays PhotoWithPlaca replaces.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zlog := setupLogging(flags.debug)
			ctx := zlog.WithContext(cmd.Context())

			resolved, err := newRootOpts(ctx, flags, out, environ)
			if err != nil {
				return err
			}
			*rootOpts = *resolved

			cmd.SetContext(log.NewContext(ctx, rootOpts.Logger))
			return nil
		},
	}

	addRootFlags(rootCmd, flags)
	rootCmd.SetOut(out)

	rootCmd.AddCommand(
		commands.NewApplyCmd(rootOpts),
		commands.NewCheckCmd(rootOpts),
		commands.NewRulesCmd(rootOpts),
		newVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", defaultConfigFile, "config file path (yaml, json or hcl)")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&flags.strict, "strict", false, "fail when no thumbnail matches")
}

// newRootOpts loads the config and builds the loggers every command shares
func newRootOpts(ctx context.Context, flags *rootFlags, out io.Writer, environ map[string]string) (*opts.RootOpts, error) {
	cfg, err := loadConfig(ctx, flags.configFile, environ)
	if err != nil {
		return nil, err
	}

	level := zerolog.InfoLevel
	if flags.debug {
		level = zerolog.DebugLevel
	}

	return &opts.RootOpts{
		Config:     cfg,
		Logger:     log.New(out, level),
		UserLogger: log.NewUserLogger(ctx, out),
		Strict:     flags.strict,
	}, nil
}

// loadConfig reads the config file and applies THUMBFIX_* overrides. Only the
// default file may be missing.
func loadConfig(ctx context.Context, path string, environ map[string]string) (*config.Config, error) {
	logger := zerolog.Ctx(ctx)

	var cfg *config.Config
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && path == defaultConfigFile {
		logger.Debug().Str("path", path).Msg("no config file, using defaults")
		cfg = config.Default()
	} else {
		cfg, err = config.Load(ctx, path)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
	}

	fromFile := cfg.Target
	if err := cfg.ApplyEnv(environ); err != nil {
		return nil, err
	}
	// an environment target is relative to the working directory, not the config file
	if cfg.Target != fromFile && !filepath.IsAbs(cfg.Target) {
		abs, err := filepath.Abs(cfg.Target)
		if err != nil {
			return nil, errors.Errorf("resolving target: %w", err)
		}
		cfg.Target = abs
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Str("config", cfg.String()).Msg("configuration ready")
	return cfg, nil
}
