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

// Package target reads and overwrites the single file being migrated.
package target

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/viant/afs"
	afsfile "github.com/viant/afs/file"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidEncoding is returned when the target is not valid UTF-8
var ErrInvalidEncoding = errors.Base("target is not valid UTF-8")

// 📄 File is the in-memory copy of the target
type File struct {
	Path    string      // Path as given by the caller
	URL     string      // Storage URL the file was read from
	Mode    os.FileMode // Permissions restored on write
	Content string      // Full UTF-8 text
}

// 💾 Store reads and writes whole files through an afs storage service
type Store struct {
	fs afs.Service
}

// 🏭 New creates a store backed by the default afs service
func New() *Store {
	return &Store{fs: afs.New()}
}

// 🔗 URL converts a local path to a file:// URL, leaving URLs untouched
func URL(path string) (string, error) {
	if strings.Contains(path, "://") {
		return path, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Errorf("resolving %s: %w", path, err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// 📖 Read loads the whole target as UTF-8 text
func (s *Store) Read(ctx context.Context, path string) (*File, error) {
	u, err := URL(path)
	if err != nil {
		return nil, err
	}

	obj, err := s.fs.Object(ctx, u)
	if err != nil {
		return nil, errors.Errorf("opening %s: %w", path, err)
	}
	if obj.IsDir() {
		return nil, errors.Errorf("opening %s: is a directory", path)
	}

	data, err := s.fs.Download(ctx, obj)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, errors.Errorf("reading %s: %w", path, ErrInvalidEncoding)
	}

	mode := obj.Mode().Perm()
	if mode == 0 {
		mode = afsfile.DefaultFileOsMode
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Int("bytes", len(data)).
		Stringer("mode", mode).
		Msg("read target")

	return &File{
		Path:    path,
		URL:     u,
		Mode:    mode,
		Content: string(data),
	}, nil
}

// ✍️ Write overwrites the target in place with content, keeping its mode
func (s *Store) Write(ctx context.Context, file *File, content string) error {
	if file == nil {
		return errors.Errorf("writing: no target file")
	}

	u := file.URL
	if u == "" {
		var err error
		if u, err = URL(file.Path); err != nil {
			return err
		}
	}

	mode := file.Mode
	if mode == 0 {
		mode = afsfile.DefaultFileOsMode
	}

	if err := s.fs.Upload(ctx, u, mode, bytes.NewReader([]byte(content))); err != nil {
		return errors.Errorf("writing %s: %w", file.Path, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", file.Path).
		Int("bytes", len(content)).
		Msg("wrote target")

	return nil
}
