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
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/thumbfix/pkg/log"
)

func main() {
	logger := setupLogging(false)
	ctx := logger.WithContext(context.Background())

	userLogger := log.NewUserLogger(ctx, nil)

	rootCmd := newRootCmd(os.Stdout, nil)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		userLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}

// setupLogging returns the diagnostic logger, human readable on stderr
func setupLogging(debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
