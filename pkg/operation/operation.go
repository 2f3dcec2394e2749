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

// Package operation runs the per-document front matter replacement pipeline:
// read, specialize the payload for the file, transform, compare, write.
package operation

import (
	"context"
	"os"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/walteh/matterject/pkg/filedate"
	"github.com/walteh/matterject/pkg/frontmatter"
	"github.com/walteh/matterject/pkg/report"
)

// 🔧 Options configures a Processor
type Options struct {
	// Payload is the normalized payload text shared by the whole run. Files
	// never mutate it: date substitution works on per-document copies.
	Payload string

	// Apply writes changes in place; otherwise the run is a dry-run
	Apply bool

	// PreserveUUID carries an existing document identifier over the payload
	PreserveUUID bool

	// FallbackYearMonth backs date derivation for paths without a year-month
	FallbackYearMonth *filedate.YearMonth

	// Rewriter performs the document transform; nil gets a default
	Rewriter *frontmatter.Rewriter
}

// ⚙️ Processor transforms one document at a time. No state is shared between
// documents: each file's outcome is a pure function of its bytes plus the
// run's payload.
type Processor struct {
	payload   string
	needsDate bool
	fallback  *filedate.YearMonth
	apply     bool
	preserve  bool
	rewriter  *frontmatter.Rewriter
}

// NewProcessor creates a Processor for one run
func NewProcessor(opts Options) *Processor {
	rw := opts.Rewriter
	if rw == nil {
		rw = frontmatter.NewRewriter(nil)
	}
	return &Processor{
		payload:   opts.Payload,
		needsDate: filedate.NeedsDate(opts.Payload),
		fallback:  opts.FallbackYearMonth,
		apply:     opts.Apply,
		preserve:  opts.PreserveUUID,
		rewriter:  rw,
	}
}

// 📄 ProcessFile runs the pipeline for a single path. Failures never
// propagate: every error is captured in the outcome so one bad document
// cannot affect the rest of the batch.
func (p *Processor) ProcessFile(ctx context.Context, path string) report.Outcome {
	logger := zerolog.Ctx(ctx)

	outcome := report.Outcome{
		Path:   path,
		Status: report.StatusError,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		outcome.Reason = "read_failed: " + err.Error()
		return outcome
	}

	if !utf8.Valid(raw) {
		outcome.Reason = "decode_failed: file is not valid UTF-8"
		return outcome
	}
	text := string(raw)

	perFilePayload := p.payload
	if p.needsDate {
		date, err := filedate.Derive(path, p.fallback)
		if err != nil {
			outcome.Reason = "date_parse_failed: " + err.Error()
			return outcome
		}
		perFilePayload = filedate.Substitute(p.payload, date)
		outcome.FileDate = date.Format("2006-01-02")
	}

	newText, res, err := p.rewriter.Transform(text, perFilePayload, p.preserve)
	if err != nil {
		outcome.Reason = "transform_failed: " + err.Error()
		return outcome
	}

	outcome.HadFrontMatter = res.HadFrontMatter
	outcome.PreservedUUID = res.PreservedUUID
	outcome.GeneratedUUID = res.GeneratedUUID

	if res.Malformed {
		outcome.Reason = res.Reason
		return outcome
	}

	if text == newText {
		outcome.Status = report.StatusUnchanged
		return outcome
	}
	outcome.Edits = editCount(text, newText)

	if !p.apply {
		outcome.Status = report.StatusChanged
		outcome.Reason = "dry_run"
		return outcome
	}

	if err := AtomicWrite(path, []byte(newText)); err != nil {
		outcome.Reason = "write_failed: " + err.Error()
		return outcome
	}

	logger.Debug().Str("path", path).Msg("wrote replacement front matter")
	outcome.Status = report.StatusChanged
	return outcome
}

// editCount measures how different the rewritten document is, for verbose
// reporting
func editCount(before string, after string) int {
	dmp := diffmatchpatch.New()
	count := 0
	for _, d := range dmp.DiffMain(before, after, false) {
		if d.Type != diffmatchpatch.DiffEqual {
			count++
		}
	}
	return count
}
