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

// Package report defines per-file outcome records and the machine (JSONL)
// and human (summary) views over them.
package report

// 📊 Status is the terminal state of one processed path
type Status string

const (
	StatusChanged   Status = "changed"   // content differs; written (or would be, in dry-run)
	StatusUnchanged Status = "unchanged" // byte-identical output, nothing to do
	StatusError     Status = "error"     // per-document failure, file untouched
	StatusSkipped   Status = "skipped"   // excluded directory, never scanned
)

// ReasonExcludedDir marks the skipped record emitted for a pruned directory
const ReasonExcludedDir = "excluded_dir"

// 📄 Outcome is the immutable record produced for each processed path.
// Field names mirror the JSONL wire format consumed by downstream tooling.
type Outcome struct {
	Path           string `json:"path"`
	Status         Status `json:"status"`
	HadFrontMatter bool   `json:"had_frontmatter"`
	PreservedUUID  bool   `json:"preserved_uuid"`
	GeneratedUUID  bool   `json:"generated_uuid"`
	Reason         string `json:"reason"`
	FileDate       string `json:"file_date,omitempty"`
	IsDir          bool   `json:"is_dir,omitempty"`

	// Edits is a diff-delta count for changed files, surfaced only in the
	// verbose human summary, never on the wire.
	Edits int `json:"-"`
}

// SkippedDir builds the outcome record for a pruned directory
func SkippedDir(path string) Outcome {
	return Outcome{
		Path:   path,
		Status: StatusSkipped,
		Reason: ReasonExcludedDir,
		IsDir:  true,
	}
}
