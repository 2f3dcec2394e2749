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

// Package frontmatter parses and rewrites the delimited metadata block at the
// start of markdown documents.
//
// Everything here is line-oriented text manipulation, deliberately not a YAML
// round-trip: payload ordering and formatting must survive byte-for-byte.
package frontmatter

import "strings"

const (
	openMarker = "---"
	bom        = "\ufeff"
)

// closeMarkers are the lines that terminate a front matter block
var closeMarkers = map[string]bool{
	"---": true,
	"...": true,
}

// 📄 Block is the result of splitting a document at its front matter
type Block struct {
	Present   bool   // document starts with a front matter delimiter
	Text      string // raw text between the delimiters, terminators kept
	Body      string // everything after the closing delimiter
	Malformed bool   // opening delimiter with no closer before EOF
}

// DetectNewline returns CRLF when present anywhere in text, otherwise LF.
func DetectNewline(text string) string {
	if strings.Contains(text, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// StripBOM removes a single leading byte-order mark.
func StripBOM(text string) string {
	return strings.TrimPrefix(text, bom)
}

// Parse splits a BOM-stripped document at its front matter block. Front matter
// is recognized only at document start: a delimiter line appearing later is
// body text. An unterminated block is reported as Malformed with Body holding
// the whole document, so callers can leave the file untouched.
func Parse(text string) Block {
	lines := splitLines(text)
	if len(lines) == 0 {
		return Block{Body: text}
	}

	if trimTerminator(lines[0]) != openMarker {
		return Block{Body: text}
	}

	for i := 1; i < len(lines); i++ {
		if closeMarkers[trimTerminator(lines[i])] {
			return Block{
				Present: true,
				Text:    strings.Join(lines[1:i], ""),
				Body:    strings.Join(lines[i+1:], ""),
			}
		}
	}

	return Block{Present: true, Body: text, Malformed: true}
}

// splitLines splits text into lines, keeping the line terminators. Handles
// LF, CRLF and bare CR.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i+1])
			start = i + 1
		case '\r':
			end := i + 1
			if i+1 < len(text) && text[i+1] == '\n' {
				end = i + 2
				i++
			}
			lines = append(lines, text[start:end])
			start = end
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// trimTerminator strips the trailing newline characters from one line
func trimTerminator(line string) string {
	return strings.TrimRight(line, "\r\n")
}

// coerceNewlines rewrites every line ending in text to the given newline
func coerceNewlines(text string, newline string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.ReplaceAll(text, "\n", newline)
}
