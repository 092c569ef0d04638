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
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger prints command level outcomes for the person running the tool
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
	out io.Writer
}

// 🎯 NewUserLogger creates a new user logger writing to out. A nil out uses pterm's default writer.
func NewUserLogger(ctx context.Context, out io.Writer) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
		out: out,
	}
}

func (u *UserLogger) printer(p pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	pp := p.WithPrefix(pterm.Prefix{Text: prefix, Style: p.Prefix.Style})
	if u.out != nil {
		pp = pp.WithWriter(u.out)
	}
	return pp
}

// 🔍 LogValidation logs a command outcome
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	switch {
	case valid:
		u.printer(pterm.Success, "✅").Println(description)
		u.log.Info().Msg(description)
	case err != nil:
		u.printer(pterm.Error, "❌").Println(description)
		u.printer(pterm.Error, "ERROR").Println(err)
		u.log.Error().Err(err).Msg(description)
	default:
		u.printer(pterm.Warning, "⚠️").Println(description)
		u.log.Warn().Msg(description)
	}
}
