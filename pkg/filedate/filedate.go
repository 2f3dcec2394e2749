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

// Package filedate derives a calendar date from a document's location and
// substitutes {file_date} tokens in payload text.
//
// The day comes from a numeric prefix on the file's base name; the year and
// month come from the last YYYY-MM (or YYYY_MM) occurrence anywhere in the
// full path, falling back to a caller-supplied pair.
package filedate

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
	"gitlab.com/tozd/go/errors"
)

var (
	tokenRe     = regexp.MustCompile(`\{file_date(?::(?P<fmt>[^}]+))?\}`)
	dayPrefixRe = regexp.MustCompile(`^(?P<day>\d{1,2})(?:\b|_)`)
	yearMonthRe = regexp.MustCompile(`(?P<year>\d{4})[-_](?P<month>\d{2})`)
	flagRe      = regexp.MustCompile(`^(?P<year>\d{4})[-_](?P<month>\d{2})$`)
)

// 📅 YearMonth is a fallback year/month pair for paths that carry none
type YearMonth struct {
	Year  int
	Month int
}

// NeedsDate reports whether payload text contains a file date token. The
// check is on the literal prefix so that a malformed token (unclosed brace)
// still routes files through date derivation, matching substitution's
// case-sensitive literal matching.
func NeedsDate(payloadText string) bool {
	return strings.Contains(payloadText, "{file_date")
}

// ParseYearMonth parses a YYYY-MM (or YYYY_MM) flag value.
func ParseYearMonth(value string) (YearMonth, error) {
	m := flagRe.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return YearMonth{}, errors.New("invalid year-month; expected YYYY-MM")
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return YearMonth{}, errors.New("invalid month")
	}
	return YearMonth{Year: year, Month: month}, nil
}

// FromPath extracts the last year-month occurrence anywhere in the path
// string. Last-match-wins is literal: if the final match carries an invalid
// month the lookup fails outright rather than trying earlier matches.
func FromPath(path string) (YearMonth, bool) {
	matches := yearMonthRe.FindAllStringSubmatch(path, -1)
	if len(matches) == 0 {
		return YearMonth{}, false
	}

	m := matches[len(matches)-1]
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return YearMonth{}, false
	}
	return YearMonth{Year: year, Month: month}, true
}

// Derive computes the document's calendar date from its path. The base name
// (extension stripped) must start with a one- or two-digit day followed by a
// word boundary or underscore; absence is a hard failure for that document.
func Derive(path string, fallback *YearMonth) (time.Time, error) {
	stem := filepath.Base(path)
	stem = strings.TrimSuffix(stem, filepath.Ext(stem))

	dayMatch := dayPrefixRe.FindStringSubmatch(stem)
	if dayMatch == nil {
		return time.Time{}, errors.New("missing day prefix")
	}
	day, _ := strconv.Atoi(dayMatch[1])

	ym, ok := FromPath(path)
	if !ok {
		if fallback == nil {
			return time.Time{}, errors.New("year-month not found in path")
		}
		ym = *fallback
	}

	return makeDate(ym.Year, ym.Month, day)
}

// Substitute rewrites every file date token in payloadText. The bare form
// yields ISO YYYY-MM-DD; a form with a format specifier is rendered with
// strftime semantics. Each occurrence is formatted independently.
func Substitute(payloadText string, date time.Time) string {
	return tokenRe.ReplaceAllStringFunc(payloadText, func(token string) string {
		m := tokenRe.FindStringSubmatch(token)
		if m[1] == "" {
			return date.Format("2006-01-02")
		}
		return strftime.Format(m[1], date)
	})
}

// makeDate builds a date and rejects impossible calendar combinations, which
// time.Date would otherwise silently normalize (e.g. April 31 → May 1).
func makeDate(year, month, day int) (time.Time, error) {
	if year < 1 {
		return time.Time{}, errors.New("invalid date")
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, errors.New("invalid date")
	}
	return t, nil
}
