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

package frontmatter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/matterject/pkg/frontmatter"
)

// 🧪 TestNormalizePayload tests wrapped/bare payload acceptance
func TestNormalizePayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
		wantErr bool
	}{
		{
			name:    "wrapped_round_trip",
			payload: "---\ntitle: x\n---\n",
			want:    "title: x\n",
		},
		{
			name:    "wrapped_with_dots_closer",
			payload: "---\ntitle: x\n...\n",
			want:    "title: x\n",
		},
		{
			name:    "bare_passes_through",
			payload: "title: x\nuuid: {uuidv7}\n",
			want:    "title: x\nuuid: {uuidv7}\n",
		},
		{
			name:    "bom_stripped_before_wrapping_check",
			payload: "\ufeff---\ntitle: x\n---\n",
			want:    "title: x\n",
		},
		{
			name:    "wrapped_missing_closer",
			payload: "---\ntitle: x\n",
			wantErr: true,
		},
		{
			name:    "empty",
			payload: "",
			want:    "",
		},
		{
			name:    "trailing_text_after_closer_is_dropped",
			payload: "---\ntitle: x\n---\nextra\n",
			want:    "title: x\n",
		},
		{
			name:    "crlf_wrapped",
			payload: "---\r\ntitle: x\r\n---\r\n",
			want:    "title: x\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := frontmatter.NormalizePayload(tt.payload)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "no closing marker")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
