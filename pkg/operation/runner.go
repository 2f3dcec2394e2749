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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/matterject/pkg/discover"
	"github.com/walteh/matterject/pkg/report"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Runner processes a discovery result strictly sequentially, streaming
// outcomes to an optional JSONL writer as they are produced
type Runner struct {
	processor *Processor
	jsonl     *report.JSONLWriter // nil disables the stream
}

// NewRunner creates a Runner
func NewRunner(processor *Processor, jsonl *report.JSONLWriter) *Runner {
	return &Runner{processor: processor, jsonl: jsonl}
}

// Run emits pruned-directory records ahead of per-file records, mirroring
// traversal order: skipped directories are part of the stream but never part
// of the "scanned" file population. The returned slices keep that split.
func (r *Runner) Run(ctx context.Context, discovered discover.Result) ([]report.Outcome, []report.Outcome, error) {
	logger := zerolog.Ctx(ctx)

	prunedDirs := make([]report.Outcome, 0, len(discovered.PrunedDirs))
	for _, dir := range discovered.PrunedDirs {
		outcome := report.SkippedDir(dir)
		prunedDirs = append(prunedDirs, outcome)
		if r.jsonl != nil {
			if err := r.jsonl.Emit(outcome); err != nil {
				return nil, nil, errors.Errorf("emitting skipped dir record: %w", err)
			}
		}
	}

	files := make([]report.Outcome, 0, len(discovered.Files))
	for _, path := range discovered.Files {
		outcome := r.processor.ProcessFile(ctx, path)
		files = append(files, outcome)

		logger.Debug().
			Str("path", outcome.Path).
			Str("status", string(outcome.Status)).
			Str("reason", outcome.Reason).
			Msg("processed file")

		if r.jsonl != nil {
			if err := r.jsonl.Emit(outcome); err != nil {
				return nil, nil, errors.Errorf("emitting file record: %w", err)
			}
		}
	}

	return files, prunedDirs, nil
}
