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

package frontmatter

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📥 NormalizePayload accepts either bare key/value lines or a full wrapped
// front matter block (copy-pasted delimiters included) and returns the inner
// payload text. A wrapped payload with no closing marker is a hard error:
// callers must abort the run before touching any file.
func NormalizePayload(payloadText string) (string, error) {
	payload := StripBOM(payloadText)
	lines := splitLines(payload)
	if len(lines) == 0 {
		return payload, nil
	}

	if trimTerminator(lines[0]) != openMarker {
		return payload, nil
	}

	for i := 1; i < len(lines); i++ {
		if closeMarkers[trimTerminator(lines[i])] {
			return strings.Join(lines[1:i], ""), nil
		}
	}

	return "", errors.New("payload starts with '---' but has no closing marker ('---' or '...')")
}
