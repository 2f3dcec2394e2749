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

package operation_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/matterject/pkg/operation"
)

// 🧪 TestAtomicWrite tests replacement and temp file hygiene
func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.md")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0644))

	require.NoError(t, operation.AtomicWrite(path, []byte("new\n")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
	assert.Equal(t, "note.md", entries[0].Name())
}

// 🧪 TestAtomicWriteCreates tests writing a path that does not exist yet
func TestAtomicWriteCreates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fresh.md")

	require.NoError(t, operation.AtomicWrite(path, []byte("content\n")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content\n", string(content))
}

// 🧪 TestAtomicWriteMissingDir tests the failure path
func TestAtomicWriteMissingDir(t *testing.T) {
	err := operation.AtomicWrite(filepath.Join(t.TempDir(), "no", "such", "dir", "x.md"), []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating temp file")
}
