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

package target

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ReadWriteRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		content string
	}{
		{
			name:    "ascii",
			initial: "<View />\n",
			content: "<View>\n  <Text />\n</View>\n",
		},
		{
			name:    "utf8_and_crlf",
			initial: "const a = 'obra'\r\n",
			content: "const título = 'Ação × 2'\r\n// 📷\r\n",
		},
		{
			name:    "shorter_than_before",
			initial: strings.Repeat("x", 4096),
			content: "short",
		},
		{
			name:    "no_trailing_newline",
			initial: "a\n",
			content: "a",
		},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nova-obra.tsx")
			require.NoError(t, os.WriteFile(path, []byte(tt.initial), 0644))

			store := New()
			file, err := store.Read(ctx, path)
			require.NoError(t, err)
			assert.Equal(t, tt.initial, file.Content)
			assert.Equal(t, path, file.Path)

			require.NoError(t, store.Write(ctx, file, tt.content))

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, []byte(tt.content), raw, "file bytes should equal the written text")

			again, err := store.Read(ctx, path)
			require.NoError(t, err)
			assert.Equal(t, tt.content, again.Content)
		})
	}
}

func TestStore_WriteKeepsMode(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "screen.tsx")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0600))

	store := New()
	file, err := store.Read(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), file.Mode)

	require.NoError(t, store.Write(ctx, file, "new"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestStore_ReadErrors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("missing_file", func(t *testing.T) {
		_, err := New().Read(ctx, filepath.Join(dir, "missing.tsx"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing.tsx")
	})

	t.Run("invalid_utf8", func(t *testing.T) {
		path := filepath.Join(dir, "latin1.tsx")
		require.NoError(t, os.WriteFile(path, []byte{'o', 'b', 'r', 0xe1, '\n'}, 0644))

		_, err := New().Read(ctx, path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})
}

func TestStore_WriteNilFile(t *testing.T) {
	err := New().Write(context.Background(), nil, "x")
	require.Error(t, err)
}

func TestURL(t *testing.T) {
	u, err := URL("file:///tmp/a.tsx")
	require.NoError(t, err)
	assert.Equal(t, "file:///tmp/a.tsx", u)

	u, err = URL("mobile/app/nova-obra.tsx")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "file://"))
	assert.True(t, strings.HasSuffix(u, "/mobile/app/nova-obra.tsx"))
}
