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
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

// 📈 SummaryWriter renders the end-of-run human summary
type SummaryWriter struct {
	w       io.Writer
	apply   bool
	verbose bool
}

// NewSummaryWriter creates a summary writer. With verbose set, per-path
// detail lines are rendered ahead of the tallies.
func NewSummaryWriter(w io.Writer, apply bool, verbose bool) *SummaryWriter {
	return &SummaryWriter{w: w, apply: apply, verbose: verbose}
}

// Write renders the summary for one run
func (s *SummaryWriter) Write(files []Outcome, prunedDirs []Outcome) {
	if s.verbose {
		for _, out := range files {
			s.detailLine(out)
		}
		for _, out := range prunedDirs {
			s.detailLine(out)
		}
	}

	var changed, unchanged, errored int
	for _, out := range files {
		switch out.Status {
		case StatusChanged:
			changed++
		case StatusUnchanged:
			unchanged++
		case StatusError:
			errored++
		}
	}

	mode := "dry-run"
	if s.apply {
		mode = "apply"
	}

	fmt.Fprintf(s.w, "mode: %s\n", mode)
	fmt.Fprintf(s.w, "scanned: %d\n", len(files))
	fmt.Fprintf(s.w, "changed: %s\n", color.New(color.FgGreen).Sprint(changed))
	fmt.Fprintf(s.w, "unchanged: %s\n", color.New(color.FgCyan).Sprint(unchanged))
	fmt.Fprintf(s.w, "skipped: %s\n", color.New(color.FgYellow).Sprint(len(prunedDirs)))
	fmt.Fprintf(s.w, "errors: %s\n", color.New(color.FgRed).Sprint(errored))
}

// detailLine renders one per-path line with a status-appropriate printer
func (s *SummaryWriter) detailLine(out Outcome) {
	msg := fmt.Sprintf("%s: %s", out.Status, out.Path)
	if out.Reason != "" {
		msg += fmt.Sprintf(" (%s)", out.Reason)
	}
	if out.Status == StatusChanged && out.Edits > 0 {
		msg += fmt.Sprintf(" [%d edits]", out.Edits)
	}

	var printer *pterm.PrefixPrinter
	switch out.Status {
	case StatusChanged:
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: "✨"})
	case StatusUnchanged:
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: "👍"})
	case StatusError:
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"})
	default:
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: "⏭"})
	}
	printer.WithWriter(s.w).Println(msg)
}
