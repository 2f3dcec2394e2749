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

package report

import (
	"encoding/json"
	"io"

	"gitlab.com/tozd/go/errors"
)

// 📤 JSONLWriter emits one JSON object per line for each outcome
type JSONLWriter struct {
	enc *json.Encoder
}

// NewJSONLWriter creates a JSONL emitter on w
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONLWriter{enc: enc}
}

// Emit writes one outcome as a single JSON line
func (j *JSONLWriter) Emit(outcome Outcome) error {
	if err := j.enc.Encode(outcome); err != nil {
		return errors.Errorf("encoding outcome for %s: %w", outcome.Path, err)
	}
	return nil
}
