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

package filedate_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/matterject/pkg/filedate"
)

// 🧪 TestNeedsDate tests token presence detection
func TestNeedsDate(t *testing.T) {
	assert.True(t, filedate.NeedsDate("journal_entry_date: \"{file_date}\"\n"))
	assert.True(t, filedate.NeedsDate("x: {file_date:%d.%m.%Y}\n"))
	assert.False(t, filedate.NeedsDate("title: x\n"))
	assert.False(t, filedate.NeedsDate("x: {File_Date}\n"), "matching is case-sensitive")
}

// 🧪 TestParseYearMonth tests the fallback flag format
func TestParseYearMonth(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    filedate.YearMonth
		wantErr bool
	}{
		{name: "dash", value: "2025-12", want: filedate.YearMonth{Year: 2025, Month: 12}},
		{name: "underscore", value: "2025_03", want: filedate.YearMonth{Year: 2025, Month: 3}},
		{name: "surrounding_space", value: " 2025-12 ", want: filedate.YearMonth{Year: 2025, Month: 12}},
		{name: "month_out_of_range", value: "2025-13", wantErr: true},
		{name: "month_zero", value: "2025-00", wantErr: true},
		{name: "not_anchored", value: "x2025-12", wantErr: true},
		{name: "short_year", value: "25-12", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := filedate.ParseYearMonth(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// 🧪 TestFromPath tests last-match-wins year-month extraction
func TestFromPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want filedate.YearMonth
		ok   bool
	}{
		{
			name: "single_segment",
			path: filepath.Join("vault", "2025-12", "03_monday.md"),
			want: filedate.YearMonth{Year: 2025, Month: 12},
			ok:   true,
		},
		{
			name: "last_occurrence_wins",
			path: filepath.Join("2024-01", "archive", "2025-06", "x.md"),
			want: filedate.YearMonth{Year: 2025, Month: 6},
			ok:   true,
		},
		{
			name: "filename_run_counts_too",
			path: filepath.Join("2024-01", "report_2025_07.md"),
			want: filedate.YearMonth{Year: 2025, Month: 7},
			ok:   true,
		},
		{
			name: "none",
			path: filepath.Join("vault", "notes", "x.md"),
			ok:   false,
		},
		{
			// Literal behavior: an invalid last match fails the lookup even
			// though an earlier valid one exists.
			name: "invalid_last_match_fails",
			path: filepath.Join("2024-01", "dump_9999-99"),
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := filedate.FromPath(tt.path)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// 🧪 TestDerive tests full date derivation from a path
func TestDerive(t *testing.T) {
	fallback := &filedate.YearMonth{Year: 2020, Month: 1}

	tests := []struct {
		name     string
		path     string
		fallback *filedate.YearMonth
		want     string
		wantErr  string
	}{
		{
			name: "day_underscore",
			path: filepath.Join("vault", "2025-12", "03_monday.md"),
			want: "2025-12-03",
		},
		{
			name: "day_word_boundary",
			path: filepath.Join("vault", "2025-12", "7 notes.md"),
			want: "2025-12-07",
		},
		{
			name: "two_digit_day",
			path: filepath.Join("vault", "2025-12", "31.md"),
			want: "2025-12-31",
		},
		{
			name:     "fallback_year_month",
			path:     filepath.Join("vault", "15_entry.md"),
			fallback: fallback,
			want:     "2020-01-15",
		},
		{
			name:    "missing_day_prefix",
			path:    filepath.Join("vault", "2025-12", "monday.md"),
			wantErr: "missing day prefix",
		},
		{
			name:    "day_glued_to_word_is_no_prefix",
			path:    filepath.Join("vault", "2025-12", "3monday.md"),
			wantErr: "missing day prefix",
		},
		{
			name:    "no_year_month_anywhere",
			path:    filepath.Join("vault", "15_entry.md"),
			wantErr: "year-month not found in path",
		},
		{
			name:    "invalid_calendar_date",
			path:    filepath.Join("vault", "2025-04", "31_entry.md"),
			wantErr: "invalid date",
		},
		{
			name:    "day_zero",
			path:    filepath.Join("vault", "2025-04", "0_entry.md"),
			wantErr: "invalid date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := filedate.Derive(tt.path, tt.fallback)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
		})
	}
}

// 🧪 TestSubstitute tests global token substitution
func TestSubstitute(t *testing.T) {
	date := time.Date(2025, 12, 3, 0, 0, 0, 0, time.UTC)

	t.Run("bare_token_is_iso", func(t *testing.T) {
		out := filedate.Substitute("journal_entry_date: \"{file_date}\"\n", date)
		assert.Equal(t, "journal_entry_date: \"2025-12-03\"\n", out)
	})

	t.Run("strftime_format", func(t *testing.T) {
		out := filedate.Substitute("display: {file_date:%d.%m.%Y}\n", date)
		assert.Equal(t, "display: 03.12.2025\n", out)
	})

	t.Run("every_occurrence_independently", func(t *testing.T) {
		out := filedate.Substitute("a: {file_date}\nb: {file_date:%Y}\nc: {file_date}\n", date)
		assert.Equal(t, "a: 2025-12-03\nb: 2025\nc: 2025-12-03\n", out)
	})

	t.Run("case_sensitive", func(t *testing.T) {
		out := filedate.Substitute("a: {File_Date}\n", date)
		assert.Equal(t, "a: {File_Date}\n", out)
	})

	t.Run("no_tokens_untouched", func(t *testing.T) {
		out := filedate.Substitute("title: x\n", date)
		assert.Equal(t, "title: x\n", out)
	})
}
